// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// logPostM returns the unnormalized log posterior density of m given
// the current θ and the data:
//
//	log N(m; PriorMean, √PriorVar) + Σ_i log Beta(θ_i; exp(m)q_i, exp(m)(1-q_i))
//
// The Binomial likelihood factor does not involve m once θ is held
// fixed, so it cancels in the Metropolis ratio and is not evaluated.
//
// A value of m whose exp(m) overflows (or underflows the Beta shapes
// to zero) is a degenerate density, reported rather than clipped.
func (s *Sampler) logPostM(m float64) (float64, error) {
	em := math.Exp(m)
	lp := distuv.Normal{Mu: s.cfg.PriorMean, Sigma: math.Sqrt(s.cfg.PriorVar)}.LogProb(m)
	for i, q := range s.data.Q {
		alpha := em * q
		beta := em * (1 - q)
		if !(alpha > 0) || !(beta > 0) || math.IsInf(alpha, 1) || math.IsInf(beta, 1) {
			return 0, &DegeneracyError{Iter: s.iter, Unit: -1, Alpha: alpha, Beta: beta}
		}
		lp += distuv.Beta{Alpha: alpha, Beta: beta}.LogProb(s.theta[i])
	}
	return lp, nil
}
