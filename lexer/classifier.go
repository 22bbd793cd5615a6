package lexer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// KindIdentifier is assigned to tokens that are not keywords but match
	// the identifier pattern.
	KindIdentifier = "IDENTIFICADOR"

	// KindLexicalError is assigned to everything else.
	KindLexicalError = "ERROR_LEXICO"
)

// Outcome records which step of the classification rule matched.
type Outcome int

const (
	OutcomeKeyword Outcome = iota + 1
	OutcomeIdentifier
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeKeyword:
		return "keyword"
	case OutcomeIdentifier:
		return "identifier"
	case OutcomeError:
		return "error"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalText lets reports encode outcomes by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the classification of a single token. Lexeme is always the token
// exactly as it was given.
type Result struct {
	Outcome Outcome
	Kind    string
	Lexeme  string
}

// chunkSize is how many tokens a single ClassifyAll worker handles, and how
// often the sequential path checks for cancellation.
const chunkSize = 512

// Classifier assigns kinds to tokens using a KeywordTable. It holds no
// mutable state; Classify may be called concurrently.
type Classifier struct {
	table *KeywordTable

	// Concurrency is the number of goroutines ClassifyAll may use. Values
	// below 2 classify on the calling goroutine.
	Concurrency int
}

func NewClassifier(table *KeywordTable) *Classifier {
	return &Classifier{table: table, Concurrency: 1}
}

// Table returns the keyword table the classifier consults.
func (c *Classifier) Table() *KeywordTable {
	return c.table
}

// Classify applies, in order: keyword lookup, the identifier pattern, and the
// lexical error fallback. It never fails.
func (c *Classifier) Classify(token string) Result {
	if kind, ok := c.table.Lookup(token); ok {
		return Result{Outcome: OutcomeKeyword, Kind: kind, Lexeme: token}
	}

	if IsIdentifier(token) {
		return Result{Outcome: OutcomeIdentifier, Kind: KindIdentifier, Lexeme: token}
	}

	return Result{Outcome: OutcomeError, Kind: KindLexicalError, Lexeme: token}
}

// ClassifyAll classifies every token and returns the results in input order.
// If tally is not nil each result is also recorded in it. The only error
// returned is ctx's, in which case no results are returned.
func (c *Classifier) ClassifyAll(ctx context.Context, tokens []string, tally *Tally) ([]Result, error) {
	results := make([]Result, len(tokens))

	classifyRange := func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = c.Classify(tokens[i])
			tally.Record(results[i])
		}
	}

	if c.Concurrency < 2 || len(tokens) <= chunkSize {
		for start := 0; start < len(tokens); start += chunkSize {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			classifyRange(start, min(start+chunkSize, len(tokens)))
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	for start := 0; start < len(tokens); start += chunkSize {
		end := min(start+chunkSize, len(tokens))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each worker owns results[start:end], so no locking is needed.
			classifyRange(start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
