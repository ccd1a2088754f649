// Package sampler picks a fixed-size random subset of candidates without
// replacement.
package sampler

import (
	"fmt"
	"math/rand/v2"

	apperrors "github.com/globetraiteurs/plats/pkg/errors"
)

// Policy controls how many items are drawn and how many candidates are required.
type Policy struct {
	// Size is the maximum number of items returned.
	Size int
	// Min is the minimum number of candidates needed. Below it Sample fails
	// with ErrCodeInsufficientResults.
	Min int
}

// Lenient returns up to size items and only fails on an empty candidate set.
func Lenient(size int) Policy {
	return Policy{Size: size, Min: 1}
}

// Strict requires at least size candidates.
func Strict(size int) Policy {
	return Policy{Size: size, Min: size}
}

// Validate checks the policy bounds.
func (p Policy) Validate() error {
	if p.Size < 1 {
		return fmt.Errorf("invalid sample size %d", p.Size)
	}
	if p.Min < 0 || p.Min > p.Size {
		return fmt.Errorf("invalid minimum %d for sample size %d", p.Min, p.Size)
	}
	return nil
}

// Sample returns min(len(items), p.Size) items chosen uniformly at random
// without replacement. The input slice is not modified.
func Sample[T any](p Policy, items []T) ([]T, error) {
	return SampleWith(rand.IntN, p, items)
}

// SampleWith is Sample with an explicit source; intn(n) must return a uniform
// value in [0, n).
func SampleWith[T any](intn func(int) int, p Policy, items []T) ([]T, error) {
	if err := p.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "invalid sampling policy", err)
	}
	if len(items) < p.Min {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInsufficientResults,
			fmt.Sprintf("need at least %d candidates, found %d", p.Min, len(items)),
			map[string]any{"required": p.Min, "found": len(items)})
	}

	k := min(p.Size, len(items))
	pool := make([]T, len(items))
	copy(pool, items)

	// Partial Fisher-Yates: the first k slots end up a uniform k-subset in random order.
	for i := 0; i < k; i++ {
		j := i + intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k], nil
}
