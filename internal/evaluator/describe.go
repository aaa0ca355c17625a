package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-odds/internal/card"
)

// Describe renders a HandRank as a full showdown description, e.g.
// "Two Pair, Ks and 4s, kicker Q". It mirrors the original
// calculator's HandValue.__str__, which reports the type, the primary and
// secondary ranks within that type, and any remaining high cards — useful
// for CLI output and test fixtures that want more than a bare category name.
func Describe(hr HandRank) string {
	ranks := hr.ranks()
	switch hr.Category() {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", card.Rank(ranks[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %ss", card.Rank(ranks[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %ss full of %ss", card.Rank(ranks[0]), card.Rank(ranks[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", card.Rank(ranks[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", card.Rank(ranks[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %ss", card.Rank(ranks[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %ss and %ss, kicker %s", card.Rank(ranks[0]), card.Rank(ranks[1]), card.Rank(ranks[2]))
	case Pair:
		return fmt.Sprintf("Pair of %ss, kickers %s", card.Rank(ranks[0]), kickerList(ranks[1:4]))
	default:
		return fmt.Sprintf("High Card %s, kickers %s", card.Rank(ranks[0]), kickerList(ranks[1:]))
	}
}

func kickerList(ranks []uint8) string {
	names := make([]string, len(ranks))
	for i, r := range ranks {
		names[i] = card.Rank(r).String()
	}
	return strings.Join(names, ", ")
}

// ranks unpacks the up-to-five 4-bit rank fields back out of hr, most
// significant first.
func (hr HandRank) ranks() [5]uint8 {
	var out [5]uint8
	shift := uint(24)
	for i := range out {
		out[i] = uint8((hr >> shift) & 0xF)
		shift -= rankFieldBits
	}
	return out
}
