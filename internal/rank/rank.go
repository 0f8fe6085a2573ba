// Package rank deduplicates, orders and truncates pair candidates.
package rank

import (
	"cmp"
	"math"
	"slices"

	"cogentcore.org/core/math32"
	"github.com/hupe1980/meshdist/model"
)

// Precision is the number of decimal digits kept in pair keys.
const Precision = 6

var scale = math.Pow10(Precision)

// Key is the order-independent identity of an unordered pair, built from
// coordinates rounded to Precision decimal digits.
type Key [6]int64

func round(x float32) int64 {
	return int64(math.Round(float64(x) * scale))
}

// Compare orders positions lexicographically by X, then Y, then Z.
func Compare(a, b math32.Vector3) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// KeyOf returns the normalized key of p: the lower endpoint comes first.
func KeyOf(p model.PairCandidate) Key {
	a, b := p.A, p.B
	if Compare(a, b) > 0 {
		a, b = b, a
	}
	return Key{round(a.X), round(a.Y), round(a.Z), round(b.X), round(b.Y), round(b.Z)}
}

// Dedupe collapses candidates sharing a key, keeping the shortest distance.
// The surviving entry keeps the position of the key's first occurrence.
// The result is never nil.
func Dedupe(cands []model.PairCandidate) []model.PairCandidate {
	if len(cands) == 0 {
		return []model.PairCandidate{}
	}
	index := make(map[Key]int, len(cands))
	out := make([]model.PairCandidate, 0, len(cands))
	for _, c := range cands {
		k := KeyOf(c)
		if i, ok := index[k]; ok {
			if c.Distance < out[i].Distance {
				out[i] = c
			}
			continue
		}
		index[k] = len(out)
		out = append(out, c)
	}
	return out
}

// Rank dedupes candidates, sorts them by ascending distance (stable, so
// ties keep discovery order) and keeps at most maxPairs entries.
// maxPairs < 1 returns an empty result.
func Rank(cands []model.PairCandidate, maxPairs int) model.PairResult {
	if maxPairs < 1 {
		return model.PairResult{}
	}
	uniq := Dedupe(cands)
	slices.SortStableFunc(uniq, func(a, b model.PairCandidate) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if len(uniq) > maxPairs {
		uniq = uniq[:maxPairs]
	}
	return model.PairResult(uniq)
}
