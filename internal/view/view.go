// Package view derives the set of matrices the board shows from pinned
// toggles and the single optional focus matrix, and tracks the order the
// user turned them on in so cross-matrix grouping reflects intent.
package view

import (
	"quadrant-cli/internal/model"
)

// Selection is ephemeral UI state, not a persisted entity. The TUI mirrors
// it to the workspace tui_state.json best-effort between runs.
type Selection struct {
	// ActivePinnedIDs holds pinned matrix ids toggled on, in activation order.
	ActivePinnedIDs []string
	// FocusMatrixID is the single selected unpinned matrix, or MatrixNone.
	FocusMatrixID string
	// ViewOrderIDs remembers the sequence matrices were turned on in.
	ViewOrderIDs []string
	// LastSelectedMatrixID seeds the new-task draft's matrix while the
	// draft text is still empty. Never overwrites a draft in progress.
	LastSelectedMatrixID string
}

func NewSelection() *Selection {
	return &Selection{
		ActivePinnedIDs:      []string{"work"},
		ViewOrderIDs:         []string{"work"},
		LastSelectedMatrixID: "work",
		FocusMatrixID:        model.MatrixNone,
	}
}

func (s *Selection) isActive(id string) bool {
	if s.FocusMatrixID != model.MatrixNone && id == s.FocusMatrixID {
		return true
	}
	return contains(s.ActivePinnedIDs, id)
}

// SelectedMatrixIDs composes the ordered, de-duplicated view-set:
// ViewOrderIDs filtered to ids that still exist and are active, then any
// active id missing from that sequence appended in activation order.
func (s *Selection) SelectedMatrixIDs(matrices []model.Matrix) []string {
	exists := make(map[string]bool, len(matrices))
	for i := range matrices {
		exists[matrices[i].ID] = true
	}

	var out []string
	seen := map[string]bool{}
	for _, id := range s.ViewOrderIDs {
		if seen[id] || !exists[id] || !s.isActive(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	// Covers a matrix activated before view-order tracking existed, or
	// re-added after deletion.
	for _, id := range s.ActivePinnedIDs {
		if seen[id] || !exists[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if f := s.FocusMatrixID; f != model.MatrixNone && exists[f] && !seen[f] {
		out = append(out, f)
	}
	return out
}

// ShowBadges reports whether cross-matrix badges should render on task rows.
func (s *Selection) ShowBadges(matrices []model.Matrix) bool {
	return len(s.SelectedMatrixIDs(matrices)) > 1
}

// TogglePinned flips a pinned matrix on or off. Toggling on appends to the
// view order and records the matrix as last-selected; toggling off removes
// it, preserving the relative order of the remainder.
func (s *Selection) TogglePinned(id string) {
	if contains(s.ActivePinnedIDs, id) {
		s.ActivePinnedIDs = remove(s.ActivePinnedIDs, id)
		s.ViewOrderIDs = remove(s.ViewOrderIDs, id)
		return
	}
	s.ActivePinnedIDs = append(s.ActivePinnedIDs, id)
	s.ViewOrderIDs = append(remove(s.ViewOrderIDs, id), id)
	s.LastSelectedMatrixID = id
}

// SetFocus selects an unpinned matrix. Replacing an existing focus keeps its
// visual slot in the view order; setting from none appends.
func (s *Selection) SetFocus(id string) {
	if id == model.MatrixNone {
		s.ClearFocus()
		return
	}
	prev := s.FocusMatrixID
	if prev != model.MatrixNone {
		replaced := false
		for i, v := range s.ViewOrderIDs {
			if v == prev {
				s.ViewOrderIDs[i] = id
				replaced = true
				break
			}
		}
		if !replaced {
			s.ViewOrderIDs = append(s.ViewOrderIDs, id)
		}
	} else {
		s.ViewOrderIDs = append(s.ViewOrderIDs, id)
	}
	s.ViewOrderIDs = dedupe(s.ViewOrderIDs)
	s.FocusMatrixID = id
	s.LastSelectedMatrixID = id
}

func (s *Selection) ClearFocus() {
	if s.FocusMatrixID == model.MatrixNone {
		return
	}
	s.ViewOrderIDs = remove(s.ViewOrderIDs, s.FocusMatrixID)
	s.FocusMatrixID = model.MatrixNone
}

// Heal resets references to matrices that no longer exist (after merges or
// deletes). Drift is self-healing, never an error.
func (s *Selection) Heal(matrices []model.Matrix) {
	exists := make(map[string]bool, len(matrices))
	for i := range matrices {
		exists[matrices[i].ID] = true
	}
	if s.FocusMatrixID != model.MatrixNone && !exists[s.FocusMatrixID] {
		s.FocusMatrixID = model.MatrixNone
	}
	kept := s.ActivePinnedIDs[:0]
	for _, id := range s.ActivePinnedIDs {
		if exists[id] {
			kept = append(kept, id)
		}
	}
	s.ActivePinnedIDs = kept
	if s.LastSelectedMatrixID != "" && !exists[s.LastSelectedMatrixID] {
		s.LastSelectedMatrixID = s.fallbackSelected()
	}
}

// fallbackSelected picks the first active pinned matrix, or the default.
func (s *Selection) fallbackSelected() string {
	if len(s.ActivePinnedIDs) > 0 {
		return s.ActivePinnedIDs[0]
	}
	return "work"
}

// RemoveMatrix drops a (merged or deleted) matrix id from all selection
// tracking and re-points last-selected when it pointed at the removed id.
func (s *Selection) RemoveMatrix(id string) {
	s.ActivePinnedIDs = remove(s.ActivePinnedIDs, id)
	s.ViewOrderIDs = remove(s.ViewOrderIDs, id)
	if s.FocusMatrixID == id {
		s.FocusMatrixID = model.MatrixNone
	}
	if s.LastSelectedMatrixID == id {
		s.LastSelectedMatrixID = s.fallbackSelected()
	}
}

func contains(xs []string, id string) bool {
	for _, v := range xs {
		if v == id {
			return true
		}
	}
	return false
}

func remove(xs []string, id string) []string {
	out := xs[:0]
	for _, v := range xs {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := xs[:0]
	for _, v := range xs {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
