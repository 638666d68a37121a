package parser

import "testing"

func TestLatchOverwritesNonFatal(t *testing.T) {
	var l latch
	if l.get() != NoMatch {
		t.Fatalf("initial value = %v, want NoMatch", l.get())
	}
	if got := l.set(Matched); got != Matched {
		t.Errorf("set(Matched) = %v", got)
	}
	if got := l.set(NoMatch); got != NoMatch {
		t.Errorf("set(NoMatch) = %v", got)
	}
	if l.fatal() {
		t.Error("fatal() = true before any Fatal")
	}
}

func TestLatchFatalIsSticky(t *testing.T) {
	var l latch
	if got := l.set(Fatal); got != Fatal {
		t.Fatalf("set(Fatal) = %v", got)
	}

	for _, v := range []Outcome{Matched, NoMatch, Fatal, Matched} {
		if got := l.set(v); got != Fatal {
			t.Errorf("set(%v) after Fatal = %v, want Fatal", v, got)
		}
		if l.get() != Fatal || !l.fatal() {
			t.Errorf("get() after set(%v) = %v, want Fatal", v, l.get())
		}
	}
}

func TestLatchesAreIndependent(t *testing.T) {
	var a, b latch
	a.set(Fatal)
	if got := b.set(Matched); got != Matched {
		t.Errorf("second latch set(Matched) = %v, want Matched", got)
	}
}
