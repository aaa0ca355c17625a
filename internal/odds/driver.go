package odds

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-odds/internal/card"
	"github.com/lox/holdem-odds/internal/evaluator"
)

// clock drives progress-report coalescing. Tests substitute a
// quartz.Mock so throttling behavior is deterministic instead of racing
// real wall-clock time, mirroring the teacher's test_infrastructure.go
// mockClock pattern.
var clock quartz.Clock = quartz.NewReal()

// progressInterval caps progress reporting at roughly 10Hz per spec.md
// §4.5, so a chunk size tuned for throughput doesn't starve the caller
// with a callback per chunk on a huge enumeration.
const progressInterval = 100 * time.Millisecond

// Tally is the accumulated win/tie outcome of evaluating a set of boards
// against a fixed set of seats.
type Tally struct {
	Wins          []int64
	Ties          []int64
	BoardsCounted int64
	Completed     bool
}

func newTally(seatCount int) Tally {
	return Tally{Wins: make([]int64, seatCount), Ties: make([]int64, seatCount)}
}

func (t *Tally) add(other Tally) {
	for i := range t.Wins {
		t.Wins[i] += other.Wins[i]
		t.Ties[i] += other.Ties[i]
	}
	t.BoardsCounted += other.BoardsCounted
}

// chunksPerWorker targets roughly 10 chunks per worker so a worker that
// finishes early can pick up more load, per spec.md §4.5.
const chunksPerWorker = 10

// runBoards partitions boards into chunks and fans them out across
// workerCount goroutines, grounded on the teacher's
// EstimateEquityParallel/runEquityWorker split in internal/evaluator/equity.go:
// each worker owns a private Tally (no shared mutable state) and results are
// summed only after every worker has finished. Cancellation is checked at
// chunk boundaries; a cancelled run returns whatever chunks completed with
// Completed=false rather than an error, per spec.md §7.
func runBoards(ctx context.Context, seats [][2]card.Card, boards []card.Set, workerCount int, onChunkDone func(done, total int)) (Tally, error) {
	total := newTally(len(seats))
	if len(boards) == 0 {
		total.Completed = true
		return total, nil
	}

	if workerCount < 1 {
		workerCount = 1
	}

	chunkCount := workerCount * chunksPerWorker
	if chunkCount > len(boards) {
		chunkCount = len(boards)
	}
	if chunkCount < 1 {
		chunkCount = 1
	}
	chunkSize := (len(boards) + chunkCount - 1) / chunkCount

	chunkStarts := make([]int, 0, chunkCount)
	for start := 0; start < len(boards); start += chunkSize {
		chunkStarts = append(chunkStarts, start)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)
	results := make(chan Tally, len(chunkStarts))

	for _, start := range chunkStarts {
		start := start
		end := start + chunkSize
		if end > len(boards) {
			end = len(boards)
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results <- evaluateChunk(seats, boards[start:end])
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	done := 0
	lastReport := clock.Now()
	for tally := range results {
		total.add(tally)
		done++
		if onChunkDone != nil {
			now := clock.Now()
			if done == len(chunkStarts) || now.Sub(lastReport) >= progressInterval {
				lastReport = now
				onChunkDone(done, len(chunkStarts))
			}
		}
	}

	if ctx.Err() != nil {
		total.Completed = false
		return total, nil
	}

	total.Completed = true
	return total, nil
}

// evaluateChunk evaluates every board in a chunk against every seat and
// folds the outcomes into a private Tally, per the worker contract in
// spec.md §4.5: assemble each seat's seven-card hand, rank it, find the
// tied-best set, and credit wins or ties accordingly.
func evaluateChunk(seats [][2]card.Card, boards []card.Set) Tally {
	t := newTally(len(seats))
	ranks := make([]evaluator.HandRank, len(seats))

	for _, board := range boards {
		for i, seat := range seats {
			hand := board.Add(seat[0]).Add(seat[1])
			ranks[i] = evaluator.Evaluate7(hand)
		}
		best := ranks[0]
		for _, r := range ranks[1:] {
			if r > best {
				best = r
			}
		}

		tiedCount := 0
		for _, r := range ranks {
			if r == best {
				tiedCount++
			}
		}

		if tiedCount == 1 {
			for i, r := range ranks {
				if r == best {
					t.Wins[i]++
					break
				}
			}
		} else {
			for i, r := range ranks {
				if r == best {
					t.Ties[i]++
				}
			}
		}
		t.BoardsCounted++
	}

	return t
}
