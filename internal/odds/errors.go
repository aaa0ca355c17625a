package odds

import (
	"fmt"

	"github.com/lox/holdem-odds/internal/card"
)

// DuplicateCardError reports a card appearing more than once across the
// seats and table of a single query.
type DuplicateCardError struct {
	Card card.Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("odds: duplicate card %s", e.Card)
}

// WrongHoleCountError reports a seat whose hole-card count isn't exactly two.
type WrongHoleCountError struct {
	SeatIndex int
	Count     int
}

func (e *WrongHoleCountError) Error() string {
	return fmt.Sprintf("odds: seat %d has %d hole cards, want 2", e.SeatIndex, e.Count)
}

// IllegalTableSizeError reports a table whose length isn't one of {0,3,4,5}.
type IllegalTableSizeError struct {
	Size int
}

func (e *IllegalTableSizeError) Error() string {
	return fmt.Sprintf("odds: table has %d cards, want 0, 3, 4, or 5", e.Size)
}

// InsufficientSeatsError reports fewer than two seats.
type InsufficientSeatsError struct {
	Count int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("odds: %d seats, want at least 2", e.Count)
}
