package formula

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
	"slices"
	"strings"

	"github.com/hankgalt/design-space/pkg/utils"
)

// Candidates returns a lazy sequence of every numMembers-combination of
// elements, each concatenated without a separator. Combinations keep input
// order and are produced in lexicographic index order:
//
//	Candidates([]string{"Ba", "Ti", "O"}, 2) // "BaTi", "BaO", "TiO"
func Candidates(elements []string, numMembers int) (iter.Seq[string], error) {
	elems, err := validateElements(elements, numMembers)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		var b strings.Builder
		eachCombination(len(elems), numMembers, func(idx []int) bool {
			b.Reset()
			for _, i := range idx {
				b.WriteString(elems[i])
			}
			return yield(b.String())
		})
	}, nil
}

// Combinations materializes Candidates.
func Combinations(elements []string, numMembers int) ([]string, error) {
	seq, err := Candidates(elements, numMembers)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Binomial returns C(n, k), saturating at math.MaxUint64.
func Binomial(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	res := uint64(1)
	for i := 1; i <= k; i++ {
		// res*(n-k+i) is divisible by i; split i across both factors first.
		d := uint64(i)
		g := utils.GCD(res, d)
		hi, lo := bits.Mul64(res/g, uint64(n-k+i)/(d/g))
		if hi != 0 {
			return math.MaxUint64
		}
		res = lo
	}
	return res
}

// validateElements trims symbols and checks the element set and arity.
func validateElements(elements []string, numMembers int) ([]string, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: empty element set", ErrInvalidInput)
	}

	elems := make([]string, len(elements))
	for i, e := range elements {
		e = strings.TrimSpace(e)
		if e == "" {
			return nil, fmt.Errorf("%w: blank element at index %d", ErrInvalidInput, i)
		}
		elems[i] = e
	}

	if numMembers < 1 || numMembers > len(elems) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidArity, numMembers, len(elems))
	}
	return elems, nil
}

// eachCombination calls fn with every k-subset of [0, n) in lexicographic
// order until fn returns false. idx is reused between calls.
func eachCombination(n, k int, fn func(idx []int) bool) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
