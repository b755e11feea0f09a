package ecstore

// TransitionInfo is the derived, cached metadata for one edge: the shared
// column set, the components added/removed by the transition, and how
// often the edge has been exercised. It is fully derivable from the two
// archetypes' bitmasks; it is cached on the Edge so the hot path never
// recomputes it.
type TransitionInfo struct {
	Source, Destination *Archetype
	Shared              []ComponentId
	Added               []ComponentId
	Removed             []ComponentId
	Frequency           uint64
}

// computeTransitionInfo derives shared/added/removed lists from two
// archetypes' (already ascending) component lists. Shared iteration order
// is the natural bit order spec'd for the transition engine: low mask
// index, low bit position first — which for a fixed BitsPerMask is simply
// ascending ComponentId order, the order components lists are built in.
func computeTransitionInfo(source, destination *Archetype) *TransitionInfo {
	info := &TransitionInfo{Source: source, Destination: destination}
	var srcComponents []ComponentId
	if source != nil {
		srcComponents = source.components
	}
	i, j := 0, 0
	dstComponents := destination.components
	for i < len(srcComponents) && j < len(dstComponents) {
		switch {
		case srcComponents[i] == dstComponents[j]:
			info.Shared = append(info.Shared, srcComponents[i])
			i++
			j++
		case srcComponents[i] < dstComponents[j]:
			info.Removed = append(info.Removed, srcComponents[i])
			i++
		default:
			info.Added = append(info.Added, dstComponents[j])
			j++
		}
	}
	info.Removed = append(info.Removed, srcComponents[i:]...)
	info.Added = append(info.Added, dstComponents[j:]...)
	return info
}

// TransitionEngine moves entities between archetypes, copying shared
// columns and writing newly added component data. This is the hot path
// described in spec.md §4.5.
type TransitionEngine struct {
	bus *signalBus
}

func newTransitionEngine(bus *signalBus) *TransitionEngine {
	return &TransitionEngine{bus: bus}
}

// Move performs an atomic structural move of entity from source (which may
// be nil, for an entity with no prior archetype) to destination, copying
// transition.Shared columns and writing newValues for transition.Added
// columns; source's transition.Removed columns are backfilled like the
// shared ones. It updates entityIndex and fires OnTransition.
func (te *TransitionEngine) Move(entity EntityId, source, destination *Archetype, transition *TransitionInfo, newValues map[ComponentId]any, entityIndex map[EntityId]*Archetype) error {
	toRow := len(destination.entities)
	for _, c := range transition.Shared {
		destination.ensureColumn(c, toRow+1)
	}
	for _, c := range transition.Added {
		destination.ensureColumn(c, toRow+1)
	}

	var fromRow, lastRow int
	needsBackfill := false
	if source != nil {
		row, ok := source.entityRow[entity]
		if !ok {
			return newError(TransitionError, "entity missing from its own source archetype")
		}
		fromRow = row
		lastRow = len(source.entities) - 1
		needsBackfill = fromRow < lastRow

		for _, c := range transition.Shared {
			srcCol := source.columns[c]
			dstCol := destination.columns[c]
			dstCol[toRow] = srcCol[fromRow]
			if needsBackfill {
				srcCol[fromRow] = srcCol[lastRow]
			}
			srcCol[lastRow] = nil
		}
		for _, c := range transition.Removed {
			srcCol := source.columns[c]
			if needsBackfill {
				srcCol[fromRow] = srcCol[lastRow]
			}
			srcCol[lastRow] = nil
		}

		if needsBackfill {
			movedEntity := source.entities[lastRow]
			source.entities[fromRow] = movedEntity
			source.entityRow[movedEntity] = fromRow
		}
		source.entities = source.entities[:lastRow]
		delete(source.entityRow, entity)
		source.dirty |= DirtyRemoval
		if len(source.entities) == 0 {
			source.pendingCleanup = true
		}
	}

	for _, c := range transition.Added {
		destination.columns[c][toRow] = newValues[c]
	}

	destination.entities = append(destination.entities, entity)
	destination.entityRow[entity] = toRow
	destination.dirty |= DirtyAddition
	destination.pendingCleanup = false
	entityIndex[entity] = destination

	transition.Frequency++
	te.bus.publish(Event{Topic: OnTransition, Entity: entity, From: source, To: destination})
	return nil
}
