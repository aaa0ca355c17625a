package odds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-odds/internal/card"
)

func hand(s string) []card.Card {
	return card.MustParseCards(s)
}

func TestComputeOddsValidatesSeatCount(t *testing.T) {
	_, err := ComputeOdds(context.Background(), [][]card.Card{hand("AsAd")}, nil, Options{})
	require.Error(t, err)
	var seatErr *InsufficientSeatsError
	require.ErrorAs(t, err, &seatErr)
	require.Equal(t, 1, seatErr.Count)
}

func TestComputeOddsValidatesHoleCount(t *testing.T) {
	seats := [][]card.Card{hand("AsAd"), hand("KcKdQc")}
	_, err := ComputeOdds(context.Background(), seats, nil, Options{})
	require.Error(t, err)
	var holeErr *WrongHoleCountError
	require.ErrorAs(t, err, &holeErr)
	require.Equal(t, 1, holeErr.SeatIndex)
	require.Equal(t, 3, holeErr.Count)
}

func TestComputeOddsValidatesTableSize(t *testing.T) {
	seats := [][]card.Card{hand("AsAd"), hand("KcKd")}
	_, err := ComputeOdds(context.Background(), seats, hand("2c3d"), Options{})
	require.Error(t, err)
	var tableErr *IllegalTableSizeError
	require.ErrorAs(t, err, &tableErr)
	require.Equal(t, 2, tableErr.Size)
}

func TestComputeOddsValidatesNoDuplicates(t *testing.T) {
	seats := [][]card.Card{hand("AsAd"), hand("AsKd")}
	_, err := ComputeOdds(context.Background(), seats, nil, Options{})
	require.Error(t, err)
	var dupErr *DuplicateCardError
	require.ErrorAs(t, err, &dupErr)
}

func TestComputeOddsValidationFailsBeforeAnyWork(t *testing.T) {
	// A cancelled context must not mask a validation error: validation
	// happens before ctx is ever consulted.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seats := [][]card.Card{hand("AsAd")}
	_, err := ComputeOdds(ctx, seats, nil, Options{})
	require.Error(t, err)
	var seatErr *InsufficientSeatsError
	require.ErrorAs(t, err, &seatErr)
}

// Scenario 5: completed board, seat 1's four of a kind beats seat 0's two pair.
func TestComputeOddsCompletedBoard(t *testing.T) {
	seats := [][]card.Card{hand("AsKs"), hand("2c2d")}
	table := hand("2h2s7dAhKh")

	result, err := ComputeOdds(context.Background(), seats, table, Options{})
	require.NoError(t, err)
	require.True(t, result.Completed)
	require.EqualValues(t, 1, result.BoardsCounted)
	require.Equal(t, []int64{0, 1}, result.Wins)
	require.Equal(t, []int64{0, 0}, result.Ties)
}

// Scenario 3: QQ vs 88 on a three-card flop, exact enumeration over C(45,2)=990 boards.
func TestComputeOddsFlopExactEnumeration(t *testing.T) {
	seats := [][]card.Card{hand("QsQd"), hand("8h8c")}
	table := hand("2d7sKc")

	result, err := ComputeOdds(context.Background(), seats, table, Options{})
	require.NoError(t, err)
	require.True(t, result.Completed)
	require.EqualValues(t, 990, result.BoardsCounted)

	qqEquity := result.WinPct[0] + result.TiePct[0]/2
	require.InDelta(t, 90.9, qqEquity, 2.0)
}

// Scenario 6: royal flush recognized regardless of kicker cards.
func TestComputeOddsRoyalFlushSeatWinsCompletedBoard(t *testing.T) {
	seats := [][]card.Card{hand("AsKs"), hand("2c3d")}
	table := hand("QsJsTs9h8h")

	result, err := ComputeOdds(context.Background(), seats, table, Options{})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 0}, result.Wins)
}

func TestComputeOddsExactZeroBoardDivisionOneMatchesStratified(t *testing.T) {
	seats := [][]card.Card{hand("AcAd"), hand("KcKd")}

	exact, err := ComputeOdds(context.Background(), seats, nil, Options{Division: 1, WorkerCount: 2})
	require.NoError(t, err)
	require.True(t, exact.Completed)
	require.EqualValues(t, 1712304, exact.BoardsCounted)

	stratified, err := ComputeOdds(context.Background(), seats, nil, Options{Division: 16, WorkerCount: 2})
	require.NoError(t, err)
	require.True(t, stratified.Completed)

	require.Equal(t, exact.Wins, stratified.Wins)
	require.Equal(t, exact.Ties, stratified.Ties)
	require.Equal(t, exact.BoardsCounted, stratified.BoardsCounted)
}
