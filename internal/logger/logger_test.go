package logger

import "testing"

func TestAddErrorAccumulatesAndCounts(t *testing.T) {
	var log Log
	if log.HasErrors() {
		t.Fatalf("empty log reports errors")
	}

	log.AddError(10, "undefined variable %q", "x")
	log.AddError(3, "cannot modify field of immutable variable 'p'")

	if !log.HasErrors() {
		t.Fatalf("expected HasErrors after AddError")
	}
	if got := log.ErrorCount(); got != 2 {
		t.Fatalf("ErrorCount() = %d, want 2", got)
	}

	msgs := log.Msgs()
	if len(msgs) != 2 {
		t.Fatalf("Msgs() len = %d, want 2", len(msgs))
	}
	// Msgs() is ordered by line number, so the line-3 error comes first
	// even though it was added second.
	if msgs[0].Loc.Line != 3 || msgs[1].Loc.Line != 10 {
		t.Fatalf("Msgs() not sorted by line: %+v", msgs)
	}
}

func TestMsgStringMatchesWireFormat(t *testing.T) {
	m := Msg{Kind: Error, Loc: Loc{Line: 7}, Text: "boom"}
	if got, want := m.String(), "Semantic error at line 7: boom"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestAddErrorWithNote(t *testing.T) {
	var log Log
	log.AddErrorWithNote(5, "duplicate field 'x'", "first declared here")

	msgs := log.Msgs()
	if len(msgs) != 2 {
		t.Fatalf("expected error+note, got %d messages", len(msgs))
	}
	if msgs[0].Kind != Error || msgs[1].Kind != Note {
		t.Fatalf("expected [Error, Note], got [%v, %v]", msgs[0].Kind, msgs[1].Kind)
	}
	// ErrorCount must not count the note.
	if log.ErrorCount() != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", log.ErrorCount())
	}
}
