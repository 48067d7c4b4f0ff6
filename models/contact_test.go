package models

import "testing"

func TestMarkReadTransitionsOnce(t *testing.T) {
	m := ContactMessage{Status: ContactNew}
	if !m.MarkRead() {
		t.Fatal("first fetch should transition new -> read")
	}
	if m.Status != ContactRead {
		t.Fatalf("expected read status, got %q", m.Status)
	}
	if m.MarkRead() {
		t.Fatal("second fetch should not transition again")
	}
}

func TestMarkReadLeavesTriagedStatusesAlone(t *testing.T) {
	for _, s := range []string{ContactReplied, ContactArchived} {
		m := ContactMessage{Status: s}
		if m.MarkRead() {
			t.Fatalf("status %q should not transition", s)
		}
		if m.Status != s {
			t.Fatalf("status %q changed to %q", s, m.Status)
		}
	}
}

func TestValidContactStatus(t *testing.T) {
	for _, s := range []string{ContactNew, ContactRead, ContactReplied, ContactArchived} {
		if !ValidContactStatus(s) {
			t.Fatalf("status %q rejected", s)
		}
	}
	if ValidContactStatus("spam") {
		t.Fatal("unknown status accepted")
	}
}
