package vpr

// NetTrace is the realized path of one routed net: the ordered list
// of routing resource nodes the net occupies, from source to sinks.
type NetTrace struct {
	Net   AtomNetID
	Nodes []RRNodeID
}

// Routing is the routing solution: one trace per routed net. Nets
// absorbed inside clusters have no trace.
type Routing struct {
	traces []NetTrace
}

// NewRouting creates an empty routing solution.
func NewRouting() *Routing {
	return &Routing{}
}

// AddTrace appends one routed net path.
func (r *Routing) AddTrace(trace NetTrace) {
	r.traces = append(r.traces, trace)
}

// Traces returns all net traces in route order.
func (r *Routing) Traces() []NetTrace {
	return r.traces
}
