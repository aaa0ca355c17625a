// Package odds computes Texas Hold'em equity: given each seat's two hole
// cards and a partial (or complete) community board, it enumerates — or
// deterministically stratum-samples with progressive refinement — the
// remaining board completions, evaluates every resulting showdown, and
// reports each seat's win/tie counts and percentages.
package odds

import (
	"context"
	"runtime"

	"github.com/lox/holdem-odds/internal/card"
)

// Options configures a ComputeOdds query. The zero value is valid and
// picks the defaults documented per field.
type Options struct {
	// Division is the stratum count for the zero-board case (default 32
	// when the table is empty, 1 — a single exact pass — otherwise). Must
	// be a positive integer; powers of two divide most evenly.
	Division int

	// WorkerCount is the number of parallel evaluation workers (default
	// max(1, runtime.NumCPU()-1), per spec.md §4.5).
	WorkerCount int

	// ProgressSink, if set, is called with a completion fraction in [0,1]
	// and a short status string as the query progresses. Calls are
	// coalesced; ProgressSink must not block.
	ProgressSink func(fraction float64, status string)
}

// Result is the outcome of a ComputeOdds query: four seat-indexed arrays
// plus the total boards evaluated and whether every scheduled stratum was
// consumed (false only after cancellation).
type Result struct {
	WinPct        []float64
	TiePct        []float64
	Wins          []int64
	Ties          []int64
	BoardsCounted int64
	Completed     bool
}

// ComputeOdds validates seats and table, then computes (or progressively
// refines) each seat's win/tie equity over every legal completion of the
// community board. Validation runs entirely before any enumeration begins:
// a validation error means no work was done and no partial Result exists.
//
// Cancelling ctx after validation passes does not produce an error; it
// produces a Result with Completed=false reflecting whatever strata were
// consumed before cancellation, per spec.md §7.
func ComputeOdds(ctx context.Context, seats [][]card.Card, table []card.Card, opts Options) (Result, error) {
	if err := validate(seats, table); err != nil {
		return Result{}, err
	}

	holeCards := make([][2]card.Card, len(seats))
	used := card.NewSet(nil)
	for i, seat := range seats {
		holeCards[i] = [2]card.Card{seat[0], seat[1]}
		used = used.Add(seat[0]).Add(seat[1])
	}
	for _, c := range table {
		used = used.Add(c)
	}
	unused := card.Unused(used)

	k := 5 - len(table)

	division := opts.Division
	if division < 1 {
		if k == 5 {
			division = 32
		} else {
			division = 1
		}
	}

	workerCount := opts.WorkerCount
	if workerCount < 1 {
		workerCount = max(1, runtime.NumCPU()-1)
	}

	tally, err := refine(ctx, holeCards, unused, k, division, workerCount, opts.ProgressSink)
	if err != nil {
		return Result{}, err
	}

	return toResult(tally), nil
}

func toResult(t Tally) Result {
	r := Result{
		Wins:          t.Wins,
		Ties:          t.Ties,
		BoardsCounted: t.BoardsCounted,
		Completed:     t.Completed,
		WinPct:        make([]float64, len(t.Wins)),
		TiePct:        make([]float64, len(t.Ties)),
	}
	if t.BoardsCounted == 0 {
		return r
	}
	for i := range t.Wins {
		r.WinPct[i] = 100 * float64(t.Wins[i]) / float64(t.BoardsCounted)
		r.TiePct[i] = 100 * float64(t.Ties[i]) / float64(t.BoardsCounted)
	}
	return r
}

// validate checks the input shape per spec.md §4.6/§7: no duplicate cards
// anywhere, every seat has exactly two cards, the table length is one of
// {0,3,4,5}, and there are at least two seats. Each failure is a distinct,
// programmatically distinguishable error kind, grounded on the teacher's
// cmd/poker-odds/main.go validateNoDuplicates/parseHands checks.
func validate(seats [][]card.Card, table []card.Card) error {
	if len(seats) < 2 {
		return &InsufficientSeatsError{Count: len(seats)}
	}
	switch len(table) {
	case 0, 3, 4, 5:
	default:
		return &IllegalTableSizeError{Size: len(table)}
	}

	seen := make(map[card.Card]bool)
	for i, seat := range seats {
		if len(seat) != 2 {
			return &WrongHoleCountError{SeatIndex: i, Count: len(seat)}
		}
		for _, c := range seat {
			if seen[c] {
				return &DuplicateCardError{Card: c}
			}
			seen[c] = true
		}
	}
	for _, c := range table {
		if seen[c] {
			return &DuplicateCardError{Card: c}
		}
		seen[c] = true
	}
	return nil
}
