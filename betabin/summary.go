// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// A Chain is the recorded output of one sampling run. Draws has one
// row per iteration; each row is the post-step (θ_1..θ_K, m). Rows
// are appended in iteration order and never mutated.
type Chain struct {
	// K is the number of units; rows have K+1 columns.
	K int

	Draws [][]float64

	// Accepted counts accepted Metropolis proposals for m over
	// the run.
	Accepted int

	// BurnIn is the burn-in the run was configured with, recorded
	// for callers that summarize later.
	BurnIn int
}

// AcceptRatio returns Accepted over the number of draws.
func (c *Chain) AcceptRatio() float64 {
	return float64(c.Accepted) / float64(len(c.Draws))
}

// A Summary describes one parameter's posterior over the burned-in
// suffix of a chain.
type Summary struct {
	// Mean is the posterior mean.
	Mean float64

	// Lo and Hi are the 2.5th and 97.5th percentiles: the
	// equal-tailed 95% credible interval.
	Lo, Hi float64
}

// Summarize discards the first burnIn draws and returns a Summary per
// parameter, θ_1..θ_K followed by m. It is a pure function of the
// chain and burnIn: repeated calls yield identical results.
func (c *Chain) Summarize(burnIn int) ([]Summary, error) {
	if burnIn < 0 {
		return nil, &InvalidInputError{"burn_in", fmt.Sprintf("%d, want >= 0", burnIn)}
	}
	if burnIn >= len(c.Draws) {
		return nil, &InsufficientSamplesError{Draws: len(c.Draws), BurnIn: burnIn}
	}
	suffix := c.Draws[burnIn:]
	out := make([]Summary, c.K+1)
	col := make([]float64, len(suffix))
	for j := range out {
		for i, row := range suffix {
			col[i] = row[j]
		}
		sort.Float64s(col)
		out[j] = Summary{
			Mean: stat.Mean(col, nil),
			Lo:   quantile(col, 0.025),
			Hi:   quantile(col, 0.975),
		}
	}
	return out, nil
}

// quantile returns the qth quantile of the sorted slice xs, linearly
// interpolating between order statistics.
func quantile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	N := float64(len(xs))
	//n := q * (N + 1) // R6
	n := 1/3.0 + q*(N+1/3.0) // R8
	kf, frac := math.Modf(n)
	k := int(kf)
	if k <= 0 {
		return xs[0]
	} else if k >= len(xs) {
		return xs[len(xs)-1]
	}
	return xs[k-1] + frac*(xs[k]-xs[k-1])
}
