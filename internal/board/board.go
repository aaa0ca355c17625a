// Package board enumerates community-card completions from a pool of
// unused cards, either exhaustively or restricted to one stratum of a
// fixed-size partition.
//
// Stratified enumeration is grounded on the original calculator's
// get_sampled_table_cards_by_division (modules/all_cards.py): walk the
// unused cards' combinations in canonical lexicographic order, keep the
// i-th combination only if i mod division falls in the requested set of
// remainders. Unlike that function's sibling get_sampled_table_cards,
// which drew combinations at random, this package never samples — the
// stratum membership test is a deterministic function of a combination's
// position, so progressive refinement (see internal/odds) can visit
// strata in a fixed order and never repeat or skip a combination.
package board

import "github.com/lox/holdem-odds/internal/card"

// Count returns C(n, k), the number of k-card combinations drawable from n
// unused cards.
func Count(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 0; i < k; i++ {
		result = result * int64(n-i) / int64(i+1)
	}
	return result
}

// Enumerate returns every k-card completion drawable from unused, as
// card.Set values, in canonical lexicographic order over unused's index
// positions. k == 0 returns a single empty completion (the board is
// already complete).
func Enumerate(unused []card.Card, k int) []card.Set {
	if k == 0 {
		return []card.Set{0}
	}
	n := len(unused)
	if k > n {
		return nil
	}

	total := Count(n, k)
	out := make([]card.Set, 0, total)

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		var s card.Set
		for _, idx := range indices {
			s = s.Add(unused[idx])
		}
		out = append(out, s)

		// Classic lexicographic "next combination": find the rightmost
		// index not already pinned against the end of the pool, bump it,
		// and reset everything after it to consecutive values.
		i := k - 1
		for i >= 0 && indices[i] == i+n-k {
			i--
		}
		if i < 0 {
			break
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}

	return out
}

// Stratum returns the subset of Enumerate(unused, k) whose position in
// that same canonical order falls, modulo division, into strata. It is
// used to draw one pass of progressive refinement without materializing
// completions outside the requested strata.
func Stratum(unused []card.Card, k, division int, strata map[int]struct{}) []card.Set {
	if k == 0 {
		if _, ok := strata[0]; ok {
			return []card.Set{0}
		}
		return nil
	}
	n := len(unused)
	if k > n || division <= 0 {
		return nil
	}

	out := make([]card.Set, 0)

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for i := 0; ; i++ {
		if _, ok := strata[i%division]; ok {
			var s card.Set
			for _, idx := range indices {
				s = s.Add(unused[idx])
			}
			out = append(out, s)
		}

		j := k - 1
		for j >= 0 && indices[j] == j+n-k {
			j--
		}
		if j < 0 {
			break
		}
		indices[j]++
		for m := j + 1; m < k; m++ {
			indices[m] = indices[m-1] + 1
		}
	}

	return out
}
