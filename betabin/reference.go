// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/samplemv"
)

// A ReferenceFitter fits the same hierarchical model through an
// external, general-purpose MCMC engine. It exists to cross-validate
// the custom chain; implementations share no sampling code with it.
//
// Fit returns draws rows of (θ_1..θ_K, m), the same layout as
// Chain.Draws.
type ReferenceFitter interface {
	Fit(data Data, draws int) ([][]float64, error)
}

// GonumMH fits the joint (θ, m) posterior with gonum's
// Metropolis-Hastings engine and a diagonal normal random-walk
// proposal. The engine is a black box here: it only ever sees the
// model's joint log density.
//
// Because the engine random-walks all K+1 coordinates jointly instead
// of exploiting the Beta conjugacy, it mixes far more slowly than
// Sampler; use generous draw counts and thinning when comparing.
type GonumMH struct {
	// ThetaSD and MSD are the proposal standard deviations for
	// each θ_i and for m.
	ThetaSD float64
	MSD     float64

	// PriorMean and PriorVar parameterize the Normal prior on m,
	// as in Config.
	PriorMean float64
	PriorVar  float64

	// BurnIn and Rate are passed through to the engine: leading
	// samples dropped, and thinning interval.
	BurnIn int
	Rate   int

	Seed uint64
}

var _ ReferenceFitter = GonumMH{}

// Fit implements ReferenceFitter.
func (g GonumMH) Fit(data Data, draws int) ([][]float64, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if draws <= 0 {
		return nil, &InvalidInputError{"draws", "want > 0"}
	}
	if !(g.ThetaSD > 0) || !(g.MSD > 0) {
		return nil, &InvalidInputError{"proposal_sd", "want > 0"}
	}
	if !(g.PriorVar > 0) {
		return nil, &InvalidInputError{"prior_var", "want > 0"}
	}

	k := data.Units()
	dim := k + 1
	sigma := mat.NewSymDense(dim, nil)
	for i := 0; i < k; i++ {
		sigma.SetSym(i, i, g.ThetaSD*g.ThetaSD)
	}
	sigma.SetSym(k, k, g.MSD*g.MSD)

	src := pcgSource{rand.NewPCG(g.Seed, 0)}
	proposal, ok := samplemv.NewProposalNormal(sigma, src)
	if !ok {
		return nil, &InvalidInputError{"proposal_sd", "proposal covariance not positive definite"}
	}

	initial := make([]float64, dim)
	for i := 0; i < k; i++ {
		initial[i] = 0.5
	}
	initial[k] = 1

	mh := samplemv.MetropolisHastingser{
		Initial:  initial,
		Target:   jointDensity{data: data, priorMean: g.PriorMean, priorVar: g.PriorVar},
		Proposal: proposal,
		Src:      src,
		BurnIn:   g.BurnIn,
		Rate:     g.Rate,
	}
	batch := mat.NewDense(draws, dim, nil)
	mh.Sample(batch)

	out := make([][]float64, draws)
	for i := range out {
		row := make([]float64, dim)
		copy(row, batch.RawRowView(i))
		out[i] = row
	}
	return out, nil
}

// jointDensity is the unnormalized joint log posterior over (θ, m).
// Unlike logPostM it keeps the Binomial likelihood terms, since θ
// varies here too. Points outside the support get -Inf, which the
// engine rejects.
type jointDensity struct {
	data      Data
	priorMean float64
	priorVar  float64
}

func (d jointDensity) LogProb(x []float64) float64 {
	k := d.data.Units()
	m := x[k]
	em := math.Exp(m)
	lp := distuv.Normal{Mu: d.priorMean, Sigma: math.Sqrt(d.priorVar)}.LogProb(m)
	for i := 0; i < k; i++ {
		theta := x[i]
		if !(theta > 0 && theta < 1) {
			return math.Inf(-1)
		}
		alpha := em * d.data.Q[i]
		beta := em * (1 - d.data.Q[i])
		if !(alpha > 0) || !(beta > 0) || math.IsInf(alpha, 1) || math.IsInf(beta, 1) {
			return math.Inf(-1)
		}
		lp += distuv.Beta{Alpha: alpha, Beta: beta}.LogProb(theta)
		lp += distuv.Binomial{N: float64(d.data.N[i]), P: theta}.LogProb(float64(d.data.Y[i]))
	}
	return lp
}
