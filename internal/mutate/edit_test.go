package mutate

import (
	"testing"

	"quadrant-cli/internal/model"
)

func TestEditCommitWritesTrimmedDraft(t *testing.T) {
	db := newTestDB(t)
	ids := addN(t, db, "work", model.UrgencyHigh, "original")

	var sess EditSession
	if err := sess.Start(db, ids[0]); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sess.Draft != "original" {
		t.Fatalf("draft seeded with %q", sess.Draft)
	}
	sess.Change("  updated  ")
	res, err := sess.Commit(db)
	if err != nil || !res.Changed {
		t.Fatalf("Commit: %v changed=%v", err, res.Changed)
	}
	if res.Task.Text != "updated" {
		t.Fatalf("text = %q", res.Task.Text)
	}
	if sess.Active() {
		t.Fatalf("session still active after commit")
	}
}

func TestEditEmptyDraftCancels(t *testing.T) {
	db := newTestDB(t)
	ids := addN(t, db, "work", model.UrgencyHigh, "keep me")

	var sess EditSession
	if err := sess.Start(db, ids[0]); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sess.Change("   ")
	res, err := sess.Commit(db)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Changed {
		t.Fatalf("empty draft committed")
	}
	tk, _ := db.FindTask(ids[0])
	if tk.Text != "keep me" {
		t.Fatalf("text = %q, want original", tk.Text)
	}
}

func TestEditUnchangedTextReportsNoChange(t *testing.T) {
	db := newTestDB(t)
	ids := addN(t, db, "work", model.UrgencyHigh, "same")
	res, err := EditTaskText(db, ids[0], "same")
	if err != nil {
		t.Fatalf("EditTaskText: %v", err)
	}
	if res.Changed {
		t.Fatalf("identical text reported as change")
	}
}

func TestEditCancelDiscardsDraft(t *testing.T) {
	db := newTestDB(t)
	ids := addN(t, db, "work", model.UrgencyHigh, "original")

	var sess EditSession
	if err := sess.Start(db, ids[0]); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sess.Change("scratch")
	sess.Cancel()
	if sess.Active() {
		t.Fatalf("session active after cancel")
	}
	tk, _ := db.FindTask(ids[0])
	if tk.Text != "original" {
		t.Fatalf("cancel mutated the task: %q", tk.Text)
	}
}
