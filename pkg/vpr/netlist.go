package vpr

import (
	"errors"
	"fmt"
)

// Netlist sentinel errors
var (
	ErrNetNotFound   = errors.New("net not found")
	ErrBlockNotFound = errors.New("block not found")
	ErrBadTruthTable = errors.New("malformed truth table")
)

// AtomBlockID identifies a primitive block in the atom netlist.
type AtomBlockID int

// AtomNetID identifies a net in the atom netlist.
type AtomNetID int

// InvalidAtomNetID marks an unconnected pin.
const InvalidAtomNetID AtomNetID = -1

// TruthTable is a single-output cover in cube form, as extracted
// from the synthesized netlist. Each line holds one character per
// input ('0', '1' or '-') followed by the output value. All lines
// of a well-formed table share the same output polarity: the table
// lists either the on-set or the off-set of the function.
type TruthTable struct {
	NumInputs int
	Lines     []string
}

// Validate checks that every line has NumInputs cube characters and
// one output bit, and that all lines agree on output polarity.
func (tt *TruthTable) Validate() error {
	polarity := byte(0)
	for i, line := range tt.Lines {
		if len(line) != tt.NumInputs+1 {
			return fmt.Errorf("%w: line %d has %d characters, want %d",
				ErrBadTruthTable, i, len(line), tt.NumInputs+1)
		}
		for j := 0; j < tt.NumInputs; j++ {
			if c := line[j]; c != '0' && c != '1' && c != '-' {
				return fmt.Errorf("%w: line %d has invalid cube character %q",
					ErrBadTruthTable, i, c)
			}
		}
		out := line[tt.NumInputs]
		if out != '0' && out != '1' {
			return fmt.Errorf("%w: line %d has invalid output %q",
				ErrBadTruthTable, i, out)
		}
		if polarity == 0 {
			polarity = out
		} else if out != polarity {
			return fmt.Errorf("%w: line %d mixes on-set and off-set", ErrBadTruthTable, i)
		}
	}
	return nil
}

// OnSet reports whether the table lists minterms of the function
// (true) or of its complement (false). Empty tables are constant-0
// covers and report true.
func (tt *TruthTable) OnSet() bool {
	if len(tt.Lines) == 0 {
		return true
	}
	return tt.Lines[0][tt.NumInputs] == '1'
}

// Evaluate computes the function value for one input assignment.
// A line matches when every specified bit agrees with the input.
func (tt *TruthTable) Evaluate(inputs []bool) bool {
	for _, line := range tt.Lines {
		matched := true
		for j := 0; j < tt.NumInputs; j++ {
			switch line[j] {
			case '0':
				if inputs[j] {
					matched = false
				}
			case '1':
				if !inputs[j] {
					matched = false
				}
			}
			if !matched {
				break
			}
		}
		if matched {
			return tt.OnSet()
		}
	}
	return !tt.OnSet()
}

// AtomBlock is one primitive from the synthesized netlist: a LUT,
// a flip-flop, an IO pad or a hard-block primitive.
type AtomBlock struct {
	ID   AtomBlockID
	Name string
	// Model names the primitive kind, matching a circuit model in
	// the architecture (e.g. "lut4", "dff", "io")
	Model string
	// InputNets holds the net feeding each logical input pin;
	// unconnected pins hold InvalidAtomNetID
	InputNets []AtomNetID
	// OutputNets holds the net driven by each output pin
	OutputNets []AtomNetID
	// TruthTable is set for combinational lookup elements only
	TruthTable *TruthTable
}

// AtomNet is a named signal in the atom netlist.
type AtomNet struct {
	ID   AtomNetID
	Name string
}

// AtomNetlist is the primitive-level view of the design.
type AtomNetlist struct {
	blocks     []AtomBlock
	nets       []AtomNet
	netsByName map[string]AtomNetID
}

// NewAtomNetlist creates an empty atom netlist.
func NewAtomNetlist() *AtomNetlist {
	return &AtomNetlist{netsByName: make(map[string]AtomNetID)}
}

// AddNet appends a net and returns its ID.
func (n *AtomNetlist) AddNet(name string) AtomNetID {
	id := AtomNetID(len(n.nets))
	n.nets = append(n.nets, AtomNet{ID: id, Name: name})
	n.netsByName[name] = id
	return id
}

// AddBlock appends a block and returns its ID.
func (n *AtomNetlist) AddBlock(block AtomBlock) AtomBlockID {
	id := AtomBlockID(len(n.blocks))
	block.ID = id
	n.blocks = append(n.blocks, block)
	return id
}

// NumBlocks returns the number of primitive blocks.
func (n *AtomNetlist) NumBlocks() int {
	return len(n.blocks)
}

// NumNets returns the number of nets.
func (n *AtomNetlist) NumNets() int {
	return len(n.nets)
}

// Block returns the block with the given ID.
func (n *AtomNetlist) Block(id AtomBlockID) AtomBlock {
	return n.blocks[id]
}

// Blocks returns all block IDs in ascending order.
func (n *AtomNetlist) Blocks() []AtomBlockID {
	ids := make([]AtomBlockID, len(n.blocks))
	for i := range n.blocks {
		ids[i] = AtomBlockID(i)
	}
	return ids
}

// Net returns the net with the given ID.
func (n *AtomNetlist) Net(id AtomNetID) AtomNet {
	return n.nets[id]
}

// NetByName resolves a net name to its ID.
func (n *AtomNetlist) NetByName(name string) (AtomNetID, error) {
	id, ok := n.netsByName[name]
	if !ok {
		return InvalidAtomNetID, fmt.Errorf("%w: %q", ErrNetNotFound, name)
	}
	return id, nil
}
