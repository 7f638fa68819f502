// Package weighting derives task weights within a DP from pairwise
// knock-out comparisons.
package weighting

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoItems    = errors.New("nothing to compare")
	ErrIncomplete = errors.New("comparisons incomplete")
)

// Pair is one comparison between items A and B, by index.
type Pair struct {
	A, B int
}

// KO runs a knock-out round over n items. Every unordered pair is compared
// once, in order (0,1), (0,2) ... (n-2,n-1). Each item starts on a score of
// 1 and gains 1 per comparison it wins.
type KO struct {
	pairs  []Pair
	scores []int
	next   int
}

func NewKO(n int) (*KO, error) {
	if n < 1 {
		return nil, ErrNoItems
	}
	ko := &KO{scores: make([]int, n)}
	for i := range ko.scores {
		ko.scores[i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			ko.pairs = append(ko.pairs, Pair{A: a, B: b})
		}
	}
	return ko, nil
}

// Next returns the pending comparison, ok=false once all are done.
func (k *KO) Next() (Pair, bool) {
	if k.Done() {
		return Pair{}, false
	}
	return k.pairs[k.next], true
}

// Choose records winner for the pending comparison and advances.
func (k *KO) Choose(winner int) error {
	p, ok := k.Next()
	if !ok {
		return fmt.Errorf("choosing %d: all %d comparisons done", winner, len(k.pairs))
	}
	if winner != p.A && winner != p.B {
		return fmt.Errorf("choosing %d: comparison is between %d and %d", winner, p.A, p.B)
	}
	k.scores[winner]++
	k.next++
	return nil
}

func (k *KO) Done() bool { return k.next >= len(k.pairs) }

// Progress reports comparisons made and the total.
func (k *KO) Progress() (done, total int) { return k.next, len(k.pairs) }

func (k *KO) Scores() []int {
	out := make([]int, len(k.scores))
	copy(out, k.scores)
	return out
}

// Weights converts scores to percentages of the total, rounded to two
// decimals. A single item needs no comparisons and gets 100.
func (k *KO) Weights() ([]float64, error) {
	if !k.Done() {
		return nil, fmt.Errorf("%w: %d of %d", ErrIncomplete, k.next, len(k.pairs))
	}
	total := 0
	for _, s := range k.scores {
		total += s
	}
	out := make([]float64, len(k.scores))
	for i, s := range k.scores {
		out[i] = round2(float64(s) / float64(total) * 100)
	}
	return out, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
