// Package pickOrder generates the randomized turn order for a draft. The
// random source is injected so draft-order generation stays deterministic
// under test; the order is drawn once at draft start and frozen.
package pickOrder

import "math/rand"

// Generate returns a uniformly random permutation of teamIDs using an
// in-place Fisher-Yates shuffle over a copy. The input is not modified.
func Generate(teamIDs []string, r *rand.Rand) []string {
	order := make([]string, len(teamIDs))
	copy(order, teamIDs)
	for i := len(order) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
