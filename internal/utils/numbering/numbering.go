// Package numbering produces human readable document numbers.
package numbering

import (
	"fmt"
	"strings"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils"
)

// Policy selects how numbers are built.
type Policy string

const (
	// PolicyCounter renders PREFIX-NNN from a persistent per-kind counter.
	PolicyCounter Policy = "counter"
	// PolicyRandom renders PREFIX-YYYYMMDD-NNN with a random suffix. Collisions are
	// possible and surface from storage as conflicts.
	PolicyRandom Policy = "random"
)

const randomSuffixSpace = 1000

// ParsePolicy maps a configuration value to a Policy. Empty selects PolicyCounter.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyCounter:
		return PolicyCounter, nil
	case PolicyRandom:
		return PolicyRandom, nil
	}
	return "", fmt.Errorf("%w: unknown numbering policy %q", apperrors.ErrValidation, raw)
}

// Generator builds document numbers. Now and Rand may be replaced in tests.
type Generator struct {
	Policy Policy
	Now    func() time.Time
	Rand   func(n int) (int, error)
}

// NewGenerator returns a Generator for policy backed by the wall clock and crypto/rand.
func NewGenerator(policy Policy) *Generator {
	return &Generator{
		Policy: policy,
		Now:    time.Now,
		Rand:   utils.SecureRandomInt,
	}
}

// UsesCounter reports whether Generate consumes the persistent sequence.
func (g *Generator) UsesCounter() bool {
	return g.Policy != PolicyRandom
}

// Generate renders a number for prefix. counter is ignored by the random policy.
func (g *Generator) Generate(prefix string, counter int64) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: number prefix must not be empty", apperrors.ErrValidation)
	}

	switch g.Policy {
	case PolicyRandom:
		suffix, err := g.Rand(randomSuffixSpace)
		if err != nil {
			return "", fmt.Errorf("failed to draw number suffix: %w", err)
		}
		return fmt.Sprintf("%s-%s-%03d", prefix, g.Now().Format("20060102"), suffix), nil
	case PolicyCounter, "":
		if counter < 1 {
			return "", fmt.Errorf("%w: sequence counter must be positive, got %d", apperrors.ErrValidation, counter)
		}
		return fmt.Sprintf("%s-%03d", prefix, counter), nil
	}
	return "", fmt.Errorf("%w: unknown numbering policy %q", apperrors.ErrValidation, g.Policy)
}
