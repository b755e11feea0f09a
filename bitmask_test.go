package ecstore

import "testing"

func TestMaskIndexAndBitPosition(t *testing.T) {
	tests := []struct {
		name     string
		c        ComponentId
		wantMask int
		wantBit  int
	}{
		{"first bit of first word", 1, 1, 0},
		{"last bit of first word", 32, 1, 31},
		{"first bit of second word", 33, 2, 0},
		{"last bit of second word", 64, 2, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskIndex(tt.c); got != tt.wantMask {
				t.Errorf("MaskIndex(%d) = %d, want %d", tt.c, got, tt.wantMask)
			}
			if got := BitPosition(tt.c); got != tt.wantBit {
				t.Errorf("BitPosition(%d) = %d, want %d", tt.c, got, tt.wantBit)
			}
		})
	}
}

func TestValidComponentID(t *testing.T) {
	if ValidComponentID(0) {
		t.Error("0 should not be a valid component id")
	}
	if !ValidComponentID(1) {
		t.Error("1 should be a valid component id")
	}
	if !ValidComponentID(MaxComponentID) {
		t.Errorf("%d should be a valid component id", MaxComponentID)
	}
	if ValidComponentID(MaxComponentID + 1) {
		t.Errorf("%d should not be a valid component id", MaxComponentID+1)
	}
}

func TestBitmaskMarkUnmarkHas(t *testing.T) {
	var m Bitmask
	m.Mark(1)
	m.Mark(33)

	if !m.Has(1) || !m.Has(33) {
		t.Fatal("expected both marked bits to be set")
	}
	if m.Has(2) {
		t.Error("bit 2 should not be set")
	}

	m.Unmark(1)
	if m.Has(1) {
		t.Error("bit 1 should be cleared after Unmark")
	}
	if !m.Has(33) {
		t.Error("unmarking bit 1 should not disturb bit 33")
	}
}

func TestBitmaskContains(t *testing.T) {
	var a Bitmask
	a.Mark(1)
	a.Mark(2)
	a.Mark(33)

	var sub Bitmask
	sub.Mark(1)
	sub.Mark(33)

	if !a.ContainsAll(sub) {
		t.Error("a should contain all bits of sub")
	}
	if !sub.ContainsAll(Bitmask{}) {
		t.Error("every mask contains the empty mask")
	}
	if a.ContainsAll(Bitmask{}.With(3)) {
		t.Error("a does not contain bit 3")
	}

	var disjoint Bitmask
	disjoint.Mark(3)
	if a.ContainsAny(disjoint) {
		t.Error("a and disjoint share no bits")
	}
	if !a.ContainsAny(sub) {
		t.Error("a and sub share bits")
	}
	if !a.ContainsNone(disjoint) {
		t.Error("a should contain none of disjoint's bits")
	}
}

func TestBitmaskWithWithoutOr(t *testing.T) {
	var base Bitmask
	base.Mark(1)

	withTwo := base.With(2)
	if !withTwo.Has(1) || !withTwo.Has(2) {
		t.Fatal("With should add a bit while keeping existing ones")
	}
	if base.Has(2) {
		t.Error("With must not mutate the receiver")
	}

	withoutOne := withTwo.Without(1)
	if withoutOne.Has(1) || !withoutOne.Has(2) {
		t.Fatal("Without should clear only the named bit")
	}

	union := base.Or(Bitmask{}.With(33))
	if !union.Has(1) || !union.Has(33) {
		t.Error("Or should set bits from both operands")
	}
}

func TestBitmaskIsEmpty(t *testing.T) {
	var m Bitmask
	if !m.IsEmpty() {
		t.Error("zero-value Bitmask should be empty")
	}
	m.Mark(64)
	if m.IsEmpty() {
		t.Error("Bitmask with a marked bit should not be empty")
	}
}

func TestArchetypeKeyEquality(t *testing.T) {
	a := Bitmask{}.With(1).With(2)
	b := Bitmask{}.With(2).With(1)
	if ArchetypeKeyOf(a) != ArchetypeKeyOf(b) {
		t.Error("archetype key must not depend on the order components were marked")
	}

	c := Bitmask{}.With(1)
	if ArchetypeKeyOf(a) == ArchetypeKeyOf(c) {
		t.Error("distinct bitmasks must produce distinct archetype keys")
	}
}

func TestTransitionKeySymmetricUnderSwap(t *testing.T) {
	src := Bitmask{}.With(1)
	dst := Bitmask{}.With(1).With(2)

	forward := ComputeTransitionKey(src, dst)
	backward := ComputeTransitionKey(dst, src)
	if forward != backward {
		t.Error("XOR-based transition key should be identical regardless of direction")
	}
}

func TestQueryKeyDistinguishesDisjointFilters(t *testing.T) {
	a := ComputeQueryKey(Bitmask{}.With(1), Bitmask{})
	b := ComputeQueryKey(Bitmask{}.With(2), Bitmask{})
	if a == b {
		t.Error("queries over disjoint single components should not collide here")
	}
}
