package ecstore

// Edge is a directed, cached link between two archetypes labelled by the
// single component whose addition (add edge) or removal (remove edge)
// distinguishes them. Edge also carries the doubly-linked list pointers
// used to unlink it from the archetype it terminates at during Cleanup.
type Edge struct {
	from, to   *Archetype
	component  ComponentId
	transition *TransitionInfo

	prev, next *Edge // siblings in to.edgeRefs
}

// From returns the edge's source archetype.
func (e *Edge) From() *Archetype { return e.from }

// To returns the edge's destination archetype.
func (e *Edge) To() *Archetype { return e.to }

// Component returns the component id that distinguishes from and to.
func (e *Edge) Component() ComponentId { return e.component }

// Transition returns the edge's cached transition metadata.
func (e *Edge) Transition() *TransitionInfo { return e.transition }

// addEdge links from -> to as the add-edge for component c, recording the
// inverse remove-edge on to as well so a later remove of c from to finds
// its way back to from in O(1). The edge is inserted at the head of to's
// incoming edge list.
func addEdge(from, to *Archetype, c ComponentId, transition *TransitionInfo) *Edge {
	e := &Edge{from: from, to: to, component: c, transition: transition}
	e.next = to.edgeRefs
	if to.edgeRefs != nil {
		to.edgeRefs.prev = e
	}
	to.edgeRefs = e
	from.addEdges[c] = e
	to.removeEdges[c] = e
	return e
}

// unlinkEdge splices e out of the doubly-linked list it belongs to and
// removes it from both endpoint maps. Used only by Cleanup.
func unlinkEdge(e *Edge) {
	if e.prev != nil {
		e.prev.next = e.next
	} else if e.to.edgeRefs == e {
		e.to.edgeRefs = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev, e.next = nil, nil
	delete(e.from.addEdges, e.component)
	delete(e.to.removeEdges, e.component)
}
