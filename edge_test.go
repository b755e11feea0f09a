package ecstore

import "testing"

func TestAddEdgeSharedBetweenBothDirections(t *testing.T) {
	from := newArchetype(Bitmask{})
	to := newArchetype(Bitmask{}.With(1))
	info := computeTransitionInfo(from, to)

	edge := addEdge(from, to, 1, info)

	if from.addEdges[1] != edge {
		t.Error("from.addEdges[c] should point at the created edge")
	}
	if to.removeEdges[1] != edge {
		t.Error("to.removeEdges[c] should point at the same edge object, not a copy")
	}
	if from.addEdges[1] != to.removeEdges[1] {
		t.Error("the add-edge and remove-edge entries must be the identical Edge value")
	}
}

func TestUnlinkEdgeRemovesFromBothMapsAndList(t *testing.T) {
	from := newArchetype(Bitmask{})
	to := newArchetype(Bitmask{}.With(1))
	edge := addEdge(from, to, 1, computeTransitionInfo(from, to))

	if to.edgeRefs != edge {
		t.Fatal("addEdge should insert at the head of to.edgeRefs")
	}

	unlinkEdge(edge)

	if _, ok := from.addEdges[1]; ok {
		t.Error("unlinkEdge should remove the entry from from.addEdges")
	}
	if _, ok := to.removeEdges[1]; ok {
		t.Error("unlinkEdge should remove the entry from to.removeEdges")
	}
	if to.edgeRefs != nil {
		t.Error("unlinking the only edge should empty to.edgeRefs")
	}
}

func TestUnlinkEdgeHeadOfList(t *testing.T) {
	to := newArchetype(Bitmask{}.With(1).With(2))
	fromA := newArchetype(Bitmask{}.With(2))
	fromB := newArchetype(Bitmask{}.With(1))

	edgeA := addEdge(fromA, to, 1, computeTransitionInfo(fromA, to))
	edgeB := addEdge(fromB, to, 2, computeTransitionInfo(fromB, to))

	// edgeB was linked last, so it sits at the head; unlink it and confirm
	// edgeA is still reachable.
	unlinkEdge(edgeB)
	if to.edgeRefs != edgeA {
		t.Errorf("after unlinking the head, edgeRefs should point at edgeA")
	}
	if edgeA.next != nil || edgeA.prev != nil {
		t.Error("the remaining sole edge should have no siblings")
	}
}
