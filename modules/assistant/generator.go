package assistant

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"github.com/samber/lo"
)

// Generator produces the analysis, optimization and explanation reports.
// All randomness comes from one seeded source, so a fixed seed and clock
// give reproducible reports.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed int64) (*Generator, error) {
	newID, err := nanoid.Standard(12)
	if err != nil {
		return nil, fmt.Errorf("failed to create report id generator: %w", err)
	}
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
		newID: newID,
	}, nil
}

// header renders the "<kind> ID: ... | Generated: ..." line.
func (g *Generator) header(kind string) string {
	return fmt.Sprintf("%s ID: %s | Generated: %s\n\n", kind, g.newID(), g.now().UTC().Format(time.RFC3339))
}

// pick returns one element of pool. Callers hold g.mu.
func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// between returns a number in [low, high]. Callers hold g.mu.
func (g *Generator) between(low, high int) int {
	return low + g.rng.Intn(high-low+1)
}

// sample returns up to n distinct elements of pool in random order.
// Callers hold g.mu.
func sample[T any](g *Generator, pool []T, n int) []T {
	n = min(n, len(pool))
	return lo.Map(g.rng.Perm(len(pool))[:n], func(i int, _ int) T {
		return pool[i]
	})
}

// applicable returns the rules whose condition holds for code.
func applicable(rules []codeRule, code string) []string {
	matching := lo.Filter(rules, func(r codeRule, _ int) bool {
		return r.applies(code)
	})
	return lo.Map(matching, func(r codeRule, _ int) string {
		return r.text
	})
}

// always is a rule condition that holds for any code.
func always(string) bool { return true }

// contains returns a rule condition matching code containing every needle.
func contains(needles ...string) func(string) bool {
	return func(code string) bool {
		for _, n := range needles {
			if !strings.Contains(code, n) {
				return false
			}
		}
		return true
	}
}

// lacks returns a rule condition matching code containing none of needles.
func lacks(needles ...string) func(string) bool {
	return func(code string) bool {
		for _, n := range needles {
			if strings.Contains(code, n) {
				return false
			}
		}
		return true
	}
}

// both combines rule conditions.
func both(a, b func(string) bool) func(string) bool {
	return func(code string) bool { return a(code) && b(code) }
}

// either returns a condition matching code containing any of needles.
func either(needles ...string) func(string) bool {
	return func(code string) bool {
		return lo.SomeBy(needles, func(n string) bool { return strings.Contains(code, n) })
	}
}

// when picks a or b.
func when(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
