package feed

import "github.com/google/uuid"

// Merge reconciles the currently rendered list with a fresh query
// result. Records the moderator has already seen keep their relative
// order (values updated in place), genuinely new records go to the
// top in incoming order, and records missing from incoming drop out.
// Re-sorting the whole list on every update would make rows jump
// under the moderator's cursor.
func Merge(current, incoming []Summary) []Summary {
	latest := make(map[uuid.UUID]Summary, len(incoming))
	for _, s := range incoming {
		latest[s.ID] = s
	}

	known := make(map[uuid.UUID]bool, len(current))
	for _, s := range current {
		known[s.ID] = true
	}

	merged := make([]Summary, 0, len(incoming))
	for _, s := range incoming {
		if !known[s.ID] {
			merged = append(merged, s)
		}
	}
	for _, s := range current {
		if updated, ok := latest[s.ID]; ok {
			merged = append(merged, updated)
		}
	}
	return merged
}
