package arch

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/TOM-once/OpenFPGA/pkg/validation"
)

// yaml* types mirror the on-disk architecture document. They exist
// only for decoding; the rest of the package works on the converted
// Architecture.

type yamlPort struct {
	Name      string `yaml:"name" validate:"required"`
	Width     int    `yaml:"width" validate:"required,min=1"`
	Direction string `yaml:"direction" validate:"required,oneof=input output clock"`
}

type yamlInterconnect struct {
	Name         string   `yaml:"name" validate:"required"`
	Type         string   `yaml:"type" validate:"required,oneof=direct complete mux"`
	Inputs       []string `yaml:"inputs" validate:"required,min=1"`
	Output       string   `yaml:"output" validate:"required"`
	CircuitModel string   `yaml:"circuit_model"`
	ModeBits     string   `yaml:"mode_bits"`
}

type yamlChild struct {
	Num    int        `yaml:"num" validate:"omitempty,min=1"`
	PbType yamlPbType `yaml:"pb_type"`
}

type yamlMode struct {
	Name          string             `yaml:"name" validate:"required"`
	Children      []yamlChild        `yaml:"children"`
	Interconnects []yamlInterconnect `yaml:"interconnects"`
}

type yamlPbType struct {
	Name           string     `yaml:"name" validate:"required"`
	Ports          []yamlPort `yaml:"ports"`
	Modes          []yamlMode `yaml:"modes"`
	Model          string     `yaml:"model"`
	Class          string     `yaml:"class" validate:"omitempty,oneof=lut flipflop memory"`
	PhysicalMode   string     `yaml:"physical_mode"`
	PhysicalPbType string     `yaml:"physical_pb_type"`
	CircuitModel   string     `yaml:"circuit_model"`
	ModeBits       string     `yaml:"mode_bits"`
}

type yamlCircuitModel struct {
	Name      string `yaml:"name" validate:"required"`
	Type      string `yaml:"type" validate:"required,oneof=mux lut ff wire chan_wire iopad hard_logic"`
	Topology  string `yaml:"topology" validate:"omitempty,oneof=tree one_level multi_level"`
	NumLevels int    `yaml:"num_levels" validate:"omitempty,min=1"`
}

type yamlDirect struct {
	Name     string `yaml:"name" validate:"required"`
	FromTile string `yaml:"from_tile" validate:"required"`
	FromPort string `yaml:"from_port" validate:"required"`
	ToTile   string `yaml:"to_tile" validate:"required"`
	ToPort   string `yaml:"to_port" validate:"required"`
	XOffset  int    `yaml:"x_offset"`
	YOffset  int    `yaml:"y_offset"`
	Required bool   `yaml:"required"`
}

type yamlSimulation struct {
	OperatingClockFrequency float64 `yaml:"operating_clock_frequency" validate:"min=0"`
	ClockFrequencySlack     float64 `yaml:"clock_frequency_slack"`
	NumClockCycles          int     `yaml:"num_clock_cycles" validate:"min=0"`
}

type yamlArchitecture struct {
	PbTypes              []yamlPbType       `yaml:"pb_types" validate:"required,min=1"`
	CircuitModels        []yamlCircuitModel `yaml:"circuit_models"`
	SegmentCircuitModels []string           `yaml:"segment_circuit_models"`
	SwitchCircuitModels  []string           `yaml:"switch_circuit_models"`
	Directs              []yamlDirect       `yaml:"directs"`
	Simulation           yamlSimulation     `yaml:"simulation"`
}

var archValidate = validator.New()

// LoadArchitecture reads and validates an architecture document.
func LoadArchitecture(path string) (*Architecture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read architecture file: %w", err)
	}
	return ParseArchitecture(data)
}

// ParseArchitecture decodes a YAML architecture document, validates
// it, and converts it to the in-memory form.
func ParseArchitecture(data []byte) (*Architecture, error) {
	var doc yamlArchitecture
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode architecture: %w", err)
	}
	if err := archValidate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid architecture: %w", err)
	}
	if err := checkArchitectureDoc(&doc); err != nil {
		return nil, err
	}

	a := &Architecture{
		CircuitLib:           NewCircuitLibrary(),
		SegmentCircuitModels: doc.SegmentCircuitModels,
		SwitchCircuitModels:  doc.SwitchCircuitModels,
		SimSetting: SimulationSetting{
			OperatingClockFrequencyHz: doc.Simulation.OperatingClockFrequency,
			ClockFrequencySlack:       doc.Simulation.ClockFrequencySlack,
			NumClockCycles:            doc.Simulation.NumClockCycles,
		},
	}
	for _, m := range doc.CircuitModels {
		a.CircuitLib.AddModel(CircuitModel{
			Name:      m.Name,
			Type:      circuitModelType(m.Type),
			Topology:  muxTopology(m.Topology),
			NumLevels: m.NumLevels,
		})
	}
	for i := range doc.PbTypes {
		a.PbTypes = append(a.PbTypes, convertPbType(&doc.PbTypes[i]))
	}
	for _, d := range doc.Directs {
		a.Directs = append(a.Directs, DirectRule(d))
	}
	return a, nil
}

// checkArchitectureDoc applies the semantic checks struct tags cannot
// express, collecting every violation before reporting.
func checkArchitectureDoc(doc *yamlArchitecture) error {
	cv := validation.NewConfigValidator("architecture")
	cv.Fraction("simulation.clock_frequency_slack", doc.Simulation.ClockFrequencySlack)
	for i, m := range doc.CircuitModels {
		if m.Type == "mux" && m.Topology == "multi_level" && m.NumLevels == 0 {
			cv.Fail(fmt.Sprintf("circuit_models[%d].num_levels", i),
				"multi_level mux models need an explicit level count")
		}
	}
	return cv.Err()
}

func convertPbType(y *yamlPbType) *PbType {
	p := &PbType{
		Name:               y.Name,
		Model:              y.Model,
		Class:              pbClass(y.Class),
		PhysicalModeName:   y.PhysicalMode,
		PhysicalPbTypeName: y.PhysicalPbType,
		CircuitModel:       y.CircuitModel,
		ModeBits:           y.ModeBits,
	}
	for _, port := range y.Ports {
		p.Ports = append(p.Ports, Port{
			Name:      port.Name,
			Width:     port.Width,
			Direction: portDirection(port.Direction),
		})
	}
	for i := range y.Modes {
		ym := &y.Modes[i]
		mode := &Mode{Name: ym.Name}
		for j := range ym.Children {
			child := &ym.Children[j]
			num := child.Num
			if num == 0 {
				num = 1
			}
			mode.Children = append(mode.Children, convertPbType(&child.PbType))
			mode.NumChildren = append(mode.NumChildren, num)
		}
		for _, ic := range ym.Interconnects {
			mode.Interconnects = append(mode.Interconnects, Interconnect{
				Name:         ic.Name,
				Type:         interconnectType(ic.Type),
				Inputs:       ic.Inputs,
				Output:       ic.Output,
				CircuitModel: ic.CircuitModel,
				ModeBits:     ic.ModeBits,
			})
		}
		p.Modes = append(p.Modes, mode)
	}
	return p
}

func portDirection(s string) PortDirection {
	switch s {
	case "output":
		return PortOutput
	case "clock":
		return PortClock
	default:
		return PortInput
	}
}

func interconnectType(s string) InterconnectType {
	switch s {
	case "complete":
		return InterconnectComplete
	case "mux":
		return InterconnectMux
	default:
		return InterconnectDirect
	}
}

func circuitModelType(s string) CircuitModelType {
	switch s {
	case "mux":
		return ModelMux
	case "lut":
		return ModelLut
	case "ff":
		return ModelFlipflop
	case "wire":
		return ModelWire
	case "chan_wire":
		return ModelChanWire
	case "iopad":
		return ModelIOPad
	default:
		return ModelHardLogic
	}
}

func muxTopology(s string) MuxTopology {
	switch s {
	case "one_level":
		return MuxOneLevel
	case "multi_level":
		return MuxMultiLevel
	default:
		return MuxTree
	}
}

func pbClass(s string) PbClass {
	switch s {
	case "lut":
		return ClassLut
	case "flipflop":
		return ClassFlipflop
	case "memory":
		return ClassMemory
	default:
		return ClassNone
	}
}
