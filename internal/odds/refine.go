package odds

import (
	"context"
	"fmt"

	"github.com/lox/holdem-odds/internal/board"
	"github.com/lox/holdem-odds/internal/card"
)

// schedule splits {0, ..., division-1} into doubling-size batches: {0},
// {1}, {2,3}, {4,5,6,7}, ... per spec.md §4.7, stopping once every stratum
// has been assigned to exactly one batch. Grounded on the original
// calculator's gui.py run_calculation, whose current_amount starts at 1 and
// holds for the first two passes before doubling on every pass after that.
func schedule(division int) [][]int {
	var batches [][]int
	next := 0
	batchSize := 1
	for passIdx := 0; next < division; passIdx++ {
		end := next + batchSize
		if end > division {
			end = division
		}
		batch := make([]int, 0, end-next)
		for i := next; i < end; i++ {
			batch = append(batch, i)
		}
		batches = append(batches, batch)
		next = end
		if passIdx >= 1 {
			batchSize *= 2
		}
	}
	return batches
}

// runningEstimate tracks the weighted-mean running percentage described in
// spec.md §4.7: each pass contributes its own per-seat percentage, weighted
// by how many strata that pass covered relative to the cumulative strata
// consumed so far. This is an estimate for progress reporting only — the
// authoritative result is the exactly-summed cumulative Tally, since raw
// win/tie counts are simply added pass over pass (spec.md §4.7, "Raw counts
// are simply summed"). Deliberately NOT the source's
// (old*(a-1)+new*a)/(2a-1) recurrence; see DESIGN.md.
type runningEstimate struct {
	pct           []float64
	strataCounted int
}

func newRunningEstimate(seatCount int) *runningEstimate {
	return &runningEstimate{pct: make([]float64, seatCount)}
}

func (r *runningEstimate) update(passPct []float64, strataInPass int) {
	if r.strataCounted == 0 {
		copy(r.pct, passPct)
		r.strataCounted = strataInPass
		return
	}
	wPrev := float64(r.strataCounted)
	wNew := float64(strataInPass)
	for i := range r.pct {
		r.pct[i] = (r.pct[i]*wPrev + passPct[i]*wNew) / (wPrev + wNew)
	}
	r.strataCounted += strataInPass
}

func passPercentages(t Tally) []float64 {
	pct := make([]float64, len(t.Wins))
	if t.BoardsCounted == 0 {
		return pct
	}
	for i := range pct {
		pct[i] = 100 * float64(t.Wins[i]) / float64(t.BoardsCounted)
	}
	return pct
}

// refine runs board evaluation in doubling-stride passes over a stratified
// partition of unused's k-card completions, accumulating an exact Tally
// across passes while feeding a weighted-mean running win percentage to
// progressSink's status string after each pass for interim reporting. division=1 degenerates to a single
// full pass, which is exactly how a complete board (T=5) or a small
// remaining-card pool (T>0) is handled — no special-casing needed.
func refine(ctx context.Context, seats [][2]card.Card, unused []card.Card, k, division, workerCount int, progressSink func(float64, string)) (Tally, error) {
	if division < 1 {
		division = 1
	}

	batches := schedule(division)
	cumulative := newTally(len(seats))
	estimate := newRunningEstimate(len(seats))

	totalBoards := board.Count(len(unused), k)
	var boardsDone int64

	for passIdx, batch := range batches {
		if ctx.Err() != nil {
			cumulative.Completed = false
			return cumulative, nil
		}

		strata := make(map[int]struct{}, len(batch))
		for _, s := range batch {
			strata[s] = struct{}{}
		}

		var boards []card.Set
		if division == 1 {
			boards = board.Enumerate(unused, k)
		} else {
			boards = board.Stratum(unused, k, division, strata)
		}

		passTally, err := runBoards(ctx, seats, boards, workerCount, func(done, total int) {
			if progressSink == nil {
				return
			}
			doneBoards := boardsDone + int64(done)*int64(len(boards))/int64(max1(total))
			progressSink(clamp01(float64(doneBoards)/float64(max1(int(totalBoards)))), statusForPass(passIdx, len(batches)))
		})
		if err != nil {
			return cumulative, err
		}

		cumulative.add(passTally)
		boardsDone += passTally.BoardsCounted

		if !passTally.Completed {
			cumulative.Completed = false
			return cumulative, nil
		}

		estimate.update(passPercentages(passTally), len(batch))
		if progressSink != nil {
			status := fmt.Sprintf("%s, running win%% %.1f", statusForPass(passIdx, len(batches)), estimate.pct)
			progressSink(clamp01(float64(boardsDone)/float64(max1(int(totalBoards)))), status)
		}
	}

	cumulative.Completed = true
	return cumulative, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func statusForPass(passIdx, totalPasses int) string {
	if passIdx == totalPasses-1 {
		return "finalizing"
	}
	return "refining"
}
