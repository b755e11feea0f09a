package ecstore

import "testing"

func setupTwoEntities(t *testing.T) *ECS {
	t.Helper()
	e := New()

	a, _ := e.Entity()
	e.Set(a, 1, "pos-a")
	e.Set(a, 2, 1.5)

	b, _ := e.Entity()
	e.Set(b, 1, "pos-b")
	e.Set(b, 2, 2.5)

	return e
}

func TestCursorNextVisitsEveryMatchedRow(t *testing.T) {
	e := setupTwoEntities(t)
	view, err := e.Query(1, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	c := view.NewCursor()
	seen := 0
	for c.Next() {
		seen++
		if c.Entity() == 0 {
			t.Error("Entity() returned the zero-value handle for a matched row")
		}
	}
	if seen != 2 {
		t.Errorf("Cursor visited %d rows, want 2", seen)
	}
	if c.Next() {
		t.Error("Next() should return false once all rows are exhausted")
	}
}

func TestCursorGet2MatchesValues(t *testing.T) {
	e := setupTwoEntities(t)
	view, _ := e.Query(1, 2)

	c := view.NewCursor()
	for c.Next() {
		p, v := c.Get2()
		values := c.Values()
		if p != values[0] || v != values[1] {
			t.Errorf("Get2() = (%v, %v), Values() = %v; must agree", p, v, values)
		}
	}
}

func TestViewIteratesSameRowsAsCursor(t *testing.T) {
	e := setupTwoEntities(t)
	view, _ := e.Query(1, 2)

	var fromView []EntityId
	for id := range view.View() {
		fromView = append(fromView, id)
	}

	view2, _ := e.Query(1, 2)
	var fromCursor []EntityId
	c := view2.NewCursor()
	for c.Next() {
		fromCursor = append(fromCursor, c.Entity())
	}

	if len(fromView) != len(fromCursor) {
		t.Fatalf("View() visited %d entities, NewCursor() visited %d", len(fromView), len(fromCursor))
	}
	for i := range fromView {
		if fromView[i] != fromCursor[i] {
			t.Errorf("row %d: View() gave %v, NewCursor() gave %v", i, fromView[i], fromCursor[i])
		}
	}
}

func TestCursorSkipsEmptyArchetype(t *testing.T) {
	e := setupTwoEntities(t)
	h, _ := e.Entity()
	e.Set(h, 1, "pos-only")
	e.Despawn(h) // leaves its {1}-only archetype empty but not yet cleaned up

	view, _ := e.Query(1)
	c := view.NewCursor()
	seen := 0
	for c.Next() {
		seen++
	}
	if seen != 2 {
		t.Errorf("Cursor visited %d rows, want 2 (the emptied archetype should contribute none)", seen)
	}
}
