package evaluator

import (
	"math/bits"

	"github.com/lox/holdem-odds/internal/card"
)

// Evaluate7 returns the strongest 5-card HandRank obtainable from the seven
// cards in s. s must contain exactly seven cards; callers assemble it from
// two hole cards plus a five-card board.
func Evaluate7(s card.Set) HandRank {
	if best := bestFlush(s); best != 0 {
		return best
	}

	counts, rankMask := countRanks(s)

	if quad := findNOfAKind(counts, 4); quad >= 0 {
		kicker := highestExcluding(rankMask, quad)
		return pack(FourOfAKind, uint8(quad), kicker)
	}

	trips := findNOfAKind(counts, 3)
	if trips >= 0 {
		if pairOrTrips := findAtLeastExcept(counts, 2, trips); pairOrTrips >= 0 {
			return pack(FullHouse, uint8(trips), uint8(pairOrTrips))
		}
	}

	if high := straightHigh(rankMask); high >= 0 {
		return pack(Straight, uint8(high))
	}

	if trips >= 0 {
		kickers := topKickersExcluding(rankMask, 2, trips)
		return pack(ThreeOfAKind, uint8(trips), kickers[0], kickers[1])
	}

	pair1 := findNOfAKind(counts, 2)
	if pair1 >= 0 {
		pair2 := findNOfAKindExcept(counts, 2, pair1)
		if pair2 >= 0 {
			kicker := topKickersExcluding(rankMask, 1, pair1, pair2)[0]
			return pack(TwoPair, uint8(pair1), uint8(pair2), kicker)
		}
		kickers := topKickersExcluding(rankMask, 3, pair1)
		return pack(Pair, uint8(pair1), kickers[0], kickers[1], kickers[2])
	}

	kickers := topKickersExcluding(rankMask, 5)
	return pack(HighCard, kickers[0], kickers[1], kickers[2], kickers[3], kickers[4])
}

// bestFlush returns the strongest straight-flush/royal-flush/flush ranking
// available across all four suits, or 0 if s contains no flush.
func bestFlush(s card.Set) HandRank {
	var best HandRank
	for _, suit := range []card.Suit{card.Clubs, card.Diamonds, card.Hearts, card.Spades} {
		mask := s.SuitMask(suit)
		if bits.OnesCount16(mask) < 5 {
			continue
		}
		if high := straightHigh(mask); high >= 0 {
			category := StraightFlush
			if high == int(card.Ace) {
				category = RoyalFlush
			}
			rank := pack(category, uint8(high))
			if rank > best {
				best = rank
			}
			continue
		}
		top := topRanks(mask, 5)
		rank := pack(Flush, top[0], top[1], top[2], top[3], top[4])
		if rank > best {
			best = rank
		}
	}
	return best
}

// countRanks tabulates per-rank card counts and the rank presence mask for
// the whole seven-card set (suit-blind, used for pairing and straights).
func countRanks(s card.Set) ([13]uint8, uint16) {
	var counts [13]uint8
	var mask uint16
	for _, c := range s.Cards() {
		counts[c.Rank()]++
		mask |= 1 << uint(c.Rank())
	}
	return counts, mask
}

func findNOfAKind(counts [13]uint8, n uint8) int {
	for rank := 12; rank >= 0; rank-- {
		if counts[rank] == n {
			return rank
		}
	}
	return -1
}

func findNOfAKindExcept(counts [13]uint8, n uint8, except int) int {
	for rank := 12; rank >= 0; rank-- {
		if rank != except && counts[rank] == n {
			return rank
		}
	}
	return -1
}

func findAtLeastExcept(counts [13]uint8, n uint8, except int) int {
	for rank := 12; rank >= 0; rank-- {
		if rank != except && counts[rank] >= n {
			return rank
		}
	}
	return -1
}

// wheelMask covers ace, two, three, four, five — the only straight where
// the ace plays low instead of high.
const wheelMask = 1<<12 | 1<<0 | 1<<1 | 1<<2 | 1<<3

// straightHigh returns the rank of the top card of the best straight
// present in mask, or -1 if none. The ace-low wheel reports Five (rank
// index 3) as its high card, matching the hand's actual showdown strength.
func straightHigh(mask uint16) int {
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := bits.Len16(seq) - 1
		return low + 4
	}
	if mask&wheelMask == wheelMask {
		return int(card.Five)
	}
	return -1
}

// topRanks returns the n highest rank values set in mask, descending.
func topRanks(mask uint16, n int) []uint8 {
	out := make([]uint8, 0, n)
	for rank := 12; rank >= 0 && len(out) < n; rank-- {
		if mask&(1<<uint(rank)) != 0 {
			out = append(out, uint8(rank))
		}
	}
	for len(out) < n {
		out = append(out, 0)
	}
	return out
}

// highestExcluding returns the highest rank in mask other than exclude.
func highestExcluding(mask uint16, exclude int) uint8 {
	return topKickersExcluding(mask, 1, exclude)[0]
}

// topKickersExcluding returns the n highest ranks in mask other than the
// given excluded ranks, descending, zero-padded if mask runs out.
func topKickersExcluding(mask uint16, n int, exclude ...int) []uint8 {
	for _, e := range exclude {
		mask &^= 1 << uint(e)
	}
	return topRanks(mask, n)
}
