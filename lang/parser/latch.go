package parser

// Outcome is the tri-state result of one parsing step.
type Outcome int

const (
	Fatal   Outcome = -1
	NoMatch Outcome = 0
	Matched Outcome = 1
)

var outcomeNames = map[Outcome]string{
	Fatal:   "Fatal",
	NoMatch: "NoMatch",
	Matched: "Matched",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "Unknown"
}

// latch holds the running outcome of one parse. Fatal is sticky: once set,
// later writes are ignored and report Fatal.
type latch struct {
	value Outcome
}

func (l *latch) set(v Outcome) Outcome {
	if l.value == Fatal {
		return Fatal
	}
	l.value = v
	return v
}

func (l *latch) get() Outcome {
	return l.value
}

func (l *latch) fatal() bool {
	return l.value == Fatal
}
