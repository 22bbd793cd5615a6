package lexer

import (
	"slices"

	"github.com/puzpuzpuz/xsync/v2"
)

// Tally counts classification results. Record is safe to call from many
// goroutines at once, which is how ClassifyAll workers use it. A nil *Tally
// ignores everything recorded into it.
type Tally struct {
	kinds    *xsync.MapOf[string, *xsync.Counter]
	outcomes [OutcomeError + 1]*xsync.Counter
}

func NewTally() *Tally {
	t := &Tally{kinds: xsync.NewMapOf[*xsync.Counter]()}
	for i := range t.outcomes {
		t.outcomes[i] = xsync.NewCounter()
	}
	return t
}

// Record adds r to the tally.
func (t *Tally) Record(r Result) {
	if t == nil {
		return
	}
	counter, _ := t.kinds.LoadOrCompute(r.Kind, xsync.NewCounter)
	counter.Inc()
	if r.Outcome >= OutcomeKeyword && r.Outcome <= OutcomeError {
		t.outcomes[r.Outcome].Inc()
	}
}

// Stats is a point-in-time copy of a Tally.
type Stats struct {
	Total       int            `json:"total" yaml:"total"`
	Keywords    int            `json:"keywords" yaml:"keywords"`
	Identifiers int            `json:"identifiers" yaml:"identifiers"`
	Errors      int            `json:"errors" yaml:"errors"`
	ByKind      map[string]int `json:"by_kind" yaml:"by_kind"`
}

// Stats snapshots the tally.
func (t *Tally) Stats() Stats {
	s := Stats{ByKind: map[string]int{}}
	if t == nil {
		return s
	}
	t.kinds.Range(func(kind string, c *xsync.Counter) bool {
		s.ByKind[kind] = int(c.Value())
		return true
	})
	s.Keywords = int(t.outcomes[OutcomeKeyword].Value())
	s.Identifiers = int(t.outcomes[OutcomeIdentifier].Value())
	s.Errors = int(t.outcomes[OutcomeError].Value())
	s.Total = s.Keywords + s.Identifiers + s.Errors
	return s
}

// Kinds returns the kinds in s.ByKind, sorted.
func (s Stats) Kinds() []string {
	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// TallyResults is a convenience for computing Stats over an existing slice.
func TallyResults(results []Result) Stats {
	t := NewTally()
	for _, r := range results {
		t.Record(r)
	}
	return t.Stats()
}
