package arch

import (
	"fmt"
)

// PbGraphPin is one bit of a port on an instantiated pb-graph node.
type PbGraphPin struct {
	Node *PbGraphNode
	Port *Port
	Bit  int
}

// Path returns the full hierarchical pin path, e.g.
// "clb[0].fle[2].lut4[0].in[3]".
func (p *PbGraphPin) Path() string {
	return fmt.Sprintf("%s.%s[%d]", p.Node.Path(), p.Port.Name, p.Bit)
}

// PbGraphNode is one instance of a pb-type in the flattened block
// hierarchy. Children are kept per mode so that operating and
// physical views of the same node coexist.
type PbGraphNode struct {
	Type   *PbType
	Parent *PbGraphNode
	// Index is the instance index among siblings of the same pb-type
	Index int
	// ModeChildren maps each mode name to the child nodes it instantiates
	ModeChildren map[string][]*PbGraphNode
	InputPins    []PbGraphPin
	OutputPins   []PbGraphPin
	ClockPins    []PbGraphPin
}

// Path returns the hierarchical node path, e.g. "clb[0].fle[2].lut4[0]".
func (n *PbGraphNode) Path() string {
	if n.Parent == nil {
		return fmt.Sprintf("%s[%d]", n.Type.Name, n.Index)
	}
	return fmt.Sprintf("%s.%s[%d]", n.Parent.Path(), n.Type.Name, n.Index)
}

// IsPrimitive reports whether the node instantiates a leaf pb-type.
func (n *PbGraphNode) IsPrimitive() bool {
	return n.Type.IsPrimitive()
}

// Pin looks up one pin by port name and bit.
func (n *PbGraphNode) Pin(port string, bit int) (*PbGraphPin, error) {
	for _, pins := range [][]PbGraphPin{n.InputPins, n.OutputPins, n.ClockPins} {
		for i := range pins {
			if pins[i].Port.Name == port && pins[i].Bit == bit {
				return &pins[i], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s has no pin %s[%d]", ErrPortNotFound, n.Path(), port, bit)
}

// PbGraph is the fully instantiated pb-type hierarchy for one root
// pb-type, with nodes addressable by hierarchical path.
type PbGraph struct {
	Root        *PbGraphNode
	nodesByPath map[string]*PbGraphNode
}

// BuildPbGraph instantiates the hierarchy under the given root pb-type.
// Instance enumeration follows mode and child declaration order, so a
// given architecture always yields the same graph.
func BuildPbGraph(root *PbType) *PbGraph {
	g := &PbGraph{nodesByPath: make(map[string]*PbGraphNode)}
	g.Root = g.instantiate(root, nil, 0)
	return g
}

func (g *PbGraph) instantiate(t *PbType, parent *PbGraphNode, index int) *PbGraphNode {
	node := &PbGraphNode{
		Type:         t,
		Parent:       parent,
		Index:        index,
		ModeChildren: make(map[string][]*PbGraphNode),
	}
	for i := range t.Ports {
		port := &t.Ports[i]
		for bit := 0; bit < port.Width; bit++ {
			pin := PbGraphPin{Node: node, Port: port, Bit: bit}
			switch port.Direction {
			case PortInput:
				node.InputPins = append(node.InputPins, pin)
			case PortOutput:
				node.OutputPins = append(node.OutputPins, pin)
			case PortClock:
				node.ClockPins = append(node.ClockPins, pin)
			}
		}
	}
	for _, mode := range t.Modes {
		for ci, child := range mode.Children {
			count := 1
			if ci < len(mode.NumChildren) {
				count = mode.NumChildren[ci]
			}
			for k := 0; k < count; k++ {
				childNode := g.instantiate(child, node, k)
				node.ModeChildren[mode.Name] = append(node.ModeChildren[mode.Name], childNode)
			}
		}
	}
	g.nodesByPath[node.Path()] = node
	return node
}

// NodeByPath resolves a hierarchical path to its pb-graph node.
func (g *PbGraph) NodeByPath(path string) (*PbGraphNode, error) {
	node, ok := g.nodesByPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: no pb-graph node at %q", ErrPbTypeNotFound, path)
	}
	return node, nil
}

// Walk visits every node of the graph in instantiation order.
func (g *PbGraph) Walk(fn func(*PbGraphNode)) {
	walkNode(g.Root, fn)
}

func walkNode(n *PbGraphNode, fn func(*PbGraphNode)) {
	fn(n)
	for _, mode := range n.Type.Modes {
		for _, child := range n.ModeChildren[mode.Name] {
			walkNode(child, fn)
		}
	}
}
