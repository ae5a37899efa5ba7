package model

import "time"

type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
	UrgencyNone   Urgency = "None"
)

// Urgencies lists the four quadrants in display order.
var Urgencies = []Urgency{UrgencyHigh, UrgencyMedium, UrgencyLow, UrgencyNone}

type Status string

const (
	StatusNotDone   Status = "Not Done"
	StatusCompleted Status = "Completed"
	StatusArchived  Status = "Archived"
	StatusDeleted   Status = "Deleted"
)

// MatrixNone is the "no focus matrix selected" sentinel.
const MatrixNone = ""

type Task struct {
	ID       int64   `json:"id"`
	Text     string  `json:"text"`
	MatrixID string  `json:"matrixId"`
	Urgency  Urgency `json:"urgency"`
	Status   Status  `json:"status"`

	// Order positions the task within its (matrixId, urgency) scope.
	// Dense (0..n-1) among live tasks of a scope after every structural
	// mutation; not globally unique.
	Order int `json:"order"`

	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`

	// Legacy field (migrated to MatrixID on load/import).
	LegacyTag string `json:"tag,omitempty"`
}

// Live reports whether the task participates in quadrant ordering.
func (t Task) Live() bool {
	return t.Status == StatusNotDone || t.Status == StatusCompleted
}

// CreatedTime returns CreatedAt, falling back to the creation-time-derived id.
func (t Task) CreatedTime() time.Time {
	if t.CreatedAt != nil {
		return *t.CreatedAt
	}
	return time.UnixMilli(t.ID).UTC()
}

type Matrix struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Pinned bool   `json:"pinned"`
}

func ParseUrgency(s string) (Urgency, bool) {
	switch Urgency(s) {
	case UrgencyHigh, UrgencyMedium, UrgencyLow, UrgencyNone:
		return Urgency(s), true
	}
	return "", false
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNotDone, StatusCompleted, StatusArchived, StatusDeleted:
		return Status(s), true
	}
	return "", false
}
