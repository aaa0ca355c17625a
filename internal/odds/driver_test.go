package odds

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/card"
)

func TestRunBoardsSumsAcrossWorkers(t *testing.T) {
	seats := [][2]card.Card{
		{card.NewCard(card.Ace, card.Clubs), card.NewCard(card.Ace, card.Diamonds)},
		{card.NewCard(card.King, card.Clubs), card.NewCard(card.King, card.Diamonds)},
	}
	used := card.NewSet([]card.Card{seats[0][0], seats[0][1], seats[1][0], seats[1][1]})
	unused := card.Unused(used)[:10]
	boards := allFiveCardBoards(unused)

	single, err := runBoards(context.Background(), seats, boards, 1, nil)
	require.NoError(t, err)
	parallel, err := runBoards(context.Background(), seats, boards, 4, nil)
	require.NoError(t, err)

	require.True(t, single.Completed)
	require.True(t, parallel.Completed)
	require.Equal(t, single.Wins, parallel.Wins)
	require.Equal(t, single.Ties, parallel.Ties)
	require.Equal(t, single.BoardsCounted, parallel.BoardsCounted)
	require.EqualValues(t, 252, single.BoardsCounted) // C(10,5)
}

func TestRunBoardsCancellationReturnsPartialNotError(t *testing.T) {
	seats := [][2]card.Card{
		{card.NewCard(card.Ace, card.Clubs), card.NewCard(card.Ace, card.Diamonds)},
		{card.NewCard(card.King, card.Clubs), card.NewCard(card.King, card.Diamonds)},
	}
	used := card.NewSet([]card.Card{seats[0][0], seats[0][1], seats[1][0], seats[1][1]})
	unused := card.Unused(used)[:10]
	boards := allFiveCardBoards(unused)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tally, err := runBoards(ctx, seats, boards, 2, nil)
	require.NoError(t, err)
	require.False(t, tally.Completed)
}

func TestRunBoardsEmptyIsCompletedTrivially(t *testing.T) {
	seats := [][2]card.Card{
		{card.NewCard(card.Ace, card.Clubs), card.NewCard(card.Ace, card.Diamonds)},
		{card.NewCard(card.King, card.Clubs), card.NewCard(card.King, card.Diamonds)},
	}
	tally, err := runBoards(context.Background(), seats, nil, 1, nil)
	require.NoError(t, err)
	require.True(t, tally.Completed)
	require.Zero(t, tally.BoardsCounted)
}

// TestRunBoardsThrottlesProgressReports substitutes a mock clock that never
// advances on its own, so every chunk finishes "at the same instant" from
// the reporter's point of view: onChunkDone should fire only once, for the
// final chunk, rather than once per chunk.
func TestRunBoardsThrottlesProgressReports(t *testing.T) {
	mock := quartz.NewMock(t)
	previous := clock
	clock = mock
	defer func() { clock = previous }()

	seats := [][2]card.Card{
		{card.NewCard(card.Ace, card.Clubs), card.NewCard(card.Ace, card.Diamonds)},
		{card.NewCard(card.King, card.Clubs), card.NewCard(card.King, card.Diamonds)},
	}
	used := card.NewSet([]card.Card{seats[0][0], seats[0][1], seats[1][0], seats[1][1]})
	unused := card.Unused(used)[:10]
	boards := allFiveCardBoards(unused)

	reportCount := 0
	var lastDone, lastTotal int
	_, err := runBoards(context.Background(), seats, boards, 1, func(done, total int) {
		reportCount++
		lastDone, lastTotal = done, total
	})
	require.NoError(t, err)

	require.Equal(t, 1, reportCount)
	require.Equal(t, lastTotal, lastDone)
}

// allFiveCardBoards is a small local combination generator so driver tests
// don't depend on internal/board, keeping the two packages' tests isolated.
func allFiveCardBoards(unused []card.Card) []card.Set {
	var out []card.Set
	n := len(unused)
	var choose func(start int, picked []card.Card)
	choose = func(start int, picked []card.Card) {
		if len(picked) == 5 {
			out = append(out, card.NewSet(append([]card.Card{}, picked...)))
			return
		}
		for i := start; i < n; i++ {
			choose(i+1, append(picked, unused[i]))
		}
	}
	choose(0, nil)
	return out
}
