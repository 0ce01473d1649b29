package arch

import (
	"errors"
	"fmt"
)

// ErrModelNotFound reports a dangling circuit model reference.
var ErrModelNotFound = errors.New("circuit model not found")

// CircuitModelID identifies a model in the circuit library.
type CircuitModelID int

// InvalidCircuitModelID marks an unbound circuit model reference.
const InvalidCircuitModelID CircuitModelID = -1

// CircuitModelType classifies what hardware a circuit model describes.
type CircuitModelType int

const (
	ModelMux CircuitModelType = iota
	ModelLut
	ModelFlipflop
	ModelWire
	ModelChanWire
	ModelIOPad
	ModelHardLogic
)

// String returns the string representation of a circuit model type
func (t CircuitModelType) String() string {
	switch t {
	case ModelMux:
		return "mux"
	case ModelLut:
		return "lut"
	case ModelFlipflop:
		return "ff"
	case ModelWire:
		return "wire"
	case ModelChanWire:
		return "chan_wire"
	case ModelIOPad:
		return "iopad"
	case ModelHardLogic:
		return "hard_logic"
	default:
		return "unknown"
	}
}

// MuxTopology selects the internal structure of a multiplexer model.
type MuxTopology int

const (
	// MuxTree is a balanced binary tree of 2:1 stages
	MuxTree MuxTopology = iota
	// MuxOneLevel is a flat one-hot structure
	MuxOneLevel
	// MuxMultiLevel is a fixed number of intermediate levels
	MuxMultiLevel
)

// String returns the string representation of a mux topology
func (t MuxTopology) String() string {
	switch t {
	case MuxTree:
		return "tree"
	case MuxOneLevel:
		return "one_level"
	case MuxMultiLevel:
		return "multi_level"
	default:
		return "unknown"
	}
}

// CircuitModel describes one transistor-level building block the
// downstream netlist generators instantiate.
type CircuitModel struct {
	ID   CircuitModelID
	Name string
	Type CircuitModelType
	// Topology and NumLevels apply to mux models only
	Topology  MuxTopology
	NumLevels int
}

// CircuitLibrary is the catalog of circuit models the architecture
// declares. Lookup by name resolves the references the annotators bind.
type CircuitLibrary struct {
	models []CircuitModel
	byName map[string]CircuitModelID
}

// NewCircuitLibrary creates an empty circuit library.
func NewCircuitLibrary() *CircuitLibrary {
	return &CircuitLibrary{byName: make(map[string]CircuitModelID)}
}

// AddModel appends a model and returns its ID.
func (l *CircuitLibrary) AddModel(model CircuitModel) CircuitModelID {
	id := CircuitModelID(len(l.models))
	model.ID = id
	l.models = append(l.models, model)
	l.byName[model.Name] = id
	return id
}

// NumModels returns the number of models in the library.
func (l *CircuitLibrary) NumModels() int {
	return len(l.models)
}

// Model returns the model with the given ID.
func (l *CircuitLibrary) Model(id CircuitModelID) CircuitModel {
	return l.models[id]
}

// ModelByName resolves a model name to its ID.
func (l *CircuitLibrary) ModelByName(name string) (CircuitModelID, error) {
	id, ok := l.byName[name]
	if !ok {
		return InvalidCircuitModelID, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return id, nil
}
