package repack

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PinConstraint pins one atom net to one physical pb pin. The pin is
// addressed by pb-graph node path, port name and bit, e.g.
// {Net: "net_a", Pb: "clb[0].fle[1].frac_lut4[0]", Port: "in", Bit: 2}.
type PinConstraint struct {
	Net  string `yaml:"net" validate:"required"`
	Pb   string `yaml:"pb" validate:"required"`
	Port string `yaml:"port" validate:"required"`
	Bit  int    `yaml:"bit" validate:"min=0"`
}

// PinKey returns the physical pin address the constraint claims.
func (c PinConstraint) PinKey() string {
	return fmt.Sprintf("%s.%s[%d]", c.Pb, c.Port, c.Bit)
}

// DesignConstraints is the ordered set of user rules applied during
// repack. Empty constraints leave the default packing unconstrained.
type DesignConstraints struct {
	Rules []PinConstraint
}

// Empty reports whether no rules are present.
func (dc *DesignConstraints) Empty() bool {
	return dc == nil || len(dc.Rules) == 0
}

// Validate rejects rule sets in which two rules claim the same
// physical pin for different nets. Repeating the same net-to-pin
// rule is tolerated.
func (dc *DesignConstraints) Validate() error {
	claimed := make(map[string]string)
	for _, rule := range dc.Rules {
		key := rule.PinKey()
		if prev, ok := claimed[key]; ok && prev != rule.Net {
			return fmt.Errorf("%w: pin %s claimed by nets %q and %q",
				ErrConstraintConflict, key, prev, rule.Net)
		}
		claimed[key] = rule.Net
	}
	return nil
}

type yamlConstraints struct {
	Constraints []PinConstraint `yaml:"constraints" validate:"dive"`
}

var dcValidate = validator.New()

// LoadDesignConstraints reads a constraint document from disk.
func LoadDesignConstraints(path string) (*DesignConstraints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design constraints: %w", err)
	}
	return ParseDesignConstraints(data)
}

// ParseDesignConstraints decodes and validates a YAML constraint
// document.
func ParseDesignConstraints(data []byte) (*DesignConstraints, error) {
	var doc yamlConstraints
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode design constraints: %w", err)
	}
	if err := dcValidate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid design constraints: %w", err)
	}
	dc := &DesignConstraints{Rules: doc.Constraints}
	if err := dc.Validate(); err != nil {
		return nil, err
	}
	return dc, nil
}
