package mutate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"quadrant-cli/internal/model"
	"quadrant-cli/internal/store"
	"quadrant-cli/internal/view"
)

type MatrixResult struct {
	Matrix  *model.Matrix
	Changed bool
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a matrix id from a display name: lowercase, runs of
// non-alphanumerics collapsed to a single hyphen, outer hyphens trimmed.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// AddMatrix creates an unpinned matrix and makes it the focus. A name that
// slugs to nothing is a silent no-op. Id collisions resolve with -2, -3, …
func AddMatrix(db *store.DB, sel *view.Selection, name string) (MatrixResult, error) {
	name = strings.TrimSpace(name)
	base := Slugify(name)
	if db == nil || base == "" {
		return MatrixResult{}, nil
	}
	id := base
	for n := 2; ; n++ {
		if _, ok := db.FindMatrix(id); !ok {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	db.Matrices = append(db.Matrices, model.Matrix{ID: id, Name: name, Pinned: false})
	m := &db.Matrices[len(db.Matrices)-1]
	if sel != nil {
		sel.SetFocus(id)
	}
	return MatrixResult{Matrix: m, Changed: true}, nil
}

// MergeMatrixInto reassigns every task of src to dst and dissolves src.
// Destination scopes are renormalized to absorb the incoming tasks cleanly
// rather than append-only. No-op for the none sentinel or src == dst.
func MergeMatrixInto(db *store.DB, sel *view.Selection, src, dst string) (MatrixResult, error) {
	if db == nil || src == model.MatrixNone || src == dst {
		return MatrixResult{}, nil
	}
	if _, ok := db.FindMatrix(src); !ok {
		return MatrixResult{}, NotFoundError{Kind: "matrix", ID: src}
	}
	d, ok := db.FindMatrix(dst)
	if !ok {
		return MatrixResult{}, NotFoundError{Kind: "matrix", ID: dst}
	}
	for i := range db.Tasks {
		if db.Tasks[i].MatrixID == src {
			db.Tasks[i].MatrixID = dst
		}
	}
	store.RenormalizeMatrix(db.Tasks, dst)
	db.RemoveMatrix(src)
	if sel != nil {
		sel.ClearFocus()
		sel.RemoveMatrix(src)
		sel.LastSelectedMatrixID = dst
	}
	return MatrixResult{Matrix: d, Changed: true}, nil
}

// DeleteMatrixArchiveTasks removes a matrix; its non-Deleted tasks are
// archived rather than destroyed. No-op for the none sentinel.
func DeleteMatrixArchiveTasks(db *store.DB, sel *view.Selection, id string) (MatrixResult, error) {
	if db == nil || id == model.MatrixNone {
		return MatrixResult{}, nil
	}
	if _, ok := db.FindMatrix(id); !ok {
		return MatrixResult{}, NotFoundError{Kind: "matrix", ID: id}
	}
	now := time.Now().UTC()
	for i := range db.Tasks {
		t := &db.Tasks[i]
		if t.MatrixID != id || t.Status == model.StatusDeleted {
			continue
		}
		if t.Status != model.StatusArchived {
			t.Status = model.StatusArchived
			at := now
			t.ArchivedAt = &at
		}
	}
	db.RemoveMatrix(id)
	if sel != nil {
		sel.RemoveMatrix(id)
	}
	return MatrixResult{Changed: true}, nil
}
