package score

import "sort"

// Block is one contiguous run of tokens that appears in both sequences:
// a[A:A+Size] == b[B:B+Size].
type Block struct {
	A    int
	B    int
	Size int
}

// MatchingBlocks decomposes two token sequences into their greedy
// longest-common-block alignment: the longest block common to both sequences
// is found first, then the regions to its left and to its right are aligned
// recursively. Ties are broken by the earliest position in a, then in b.
//
// The returned blocks are sorted by position and adjacent blocks are merged,
// so summing Size gives the total number of aligned tokens.
func MatchingBlocks(a, b []string) []Block {
	b2j := make(map[string][]int, len(b))
	for j, tok := range b {
		b2j[tok] = append(b2j[tok], j)
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}

	var matched []Block
	for len(queue) > 0 {
		sp := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b2j, sp.alo, sp.ahi, sp.blo, sp.bhi)
		if m.Size == 0 {
			continue
		}
		matched = append(matched, m)
		if sp.alo < m.A && sp.blo < m.B {
			queue = append(queue, span{sp.alo, m.A, sp.blo, m.B})
		}
		if m.A+m.Size < sp.ahi && m.B+m.Size < sp.bhi {
			queue = append(queue, span{m.A + m.Size, sp.ahi, m.B + m.Size, sp.bhi})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].A != matched[j].A {
			return matched[i].A < matched[j].A
		}
		return matched[i].B < matched[j].B
	})

	// Merge blocks that ended up adjacent in both sequences.
	merged := make([]Block, 0, len(matched))
	for _, bl := range matched {
		if n := len(merged); n > 0 &&
			merged[n-1].A+merged[n-1].Size == bl.A &&
			merged[n-1].B+merged[n-1].Size == bl.B {
			merged[n-1].Size += bl.Size
			continue
		}
		merged = append(merged, bl)
	}
	return merged
}

// longestMatch finds the longest block common to a[alo:ahi] and b[blo:bhi].
// b2j indexes every token of the full b sequence to its (ascending) positions.
//
// j2len maps a position j in b to the length of the common run ending at
// (i, j); carrying it across iterations of i gives the classic quadratic
// longest-common-substring scan without materialising the full matrix.
func longestMatch(a []string, b2j map[string][]int, alo, ahi, blo, bhi int) Block {
	besti, bestj, bestsize := alo, blo, 0
	j2len := map[int]int{}

	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return Block{A: besti, B: bestj, Size: bestsize}
}
