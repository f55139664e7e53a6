// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import (
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// pcgSource adapts *rand.PCG to the golang.org/x/exp/rand Source
// interface that gonum's Src fields require, whose Seed takes a single
// value where PCG's takes a seed and a stream. gonum only ever reads
// Uint64 from injected sources; Seed exists to satisfy the interface.
type pcgSource struct{ *rand.PCG }

func (s pcgSource) Seed(seed uint64) { s.PCG.Seed(seed, 0) }

// Config holds the tuning parameters for one sampling run.
//
// ProposalSD is a free parameter: choose it so the empirical accept
// ratio lands near 0.4. The sampler does not auto-tune it.
type Config struct {
	// Iters is the number of chain iterations S.
	Iters int

	// BurnIn is the number of leading draws Fit discards before
	// summarizing. 0 <= BurnIn < Iters.
	BurnIn int

	// ProposalSD is the standard deviation of the symmetric
	// normal random-walk proposal for m.
	ProposalSD float64

	// PriorMean and PriorVar parameterize the Normal prior on m.
	PriorMean float64
	PriorVar  float64

	// InitTheta is the starting value for every θ_i, in (0, 1).
	InitTheta float64

	// InitM is the starting value for m.
	InitM float64

	// Seed determines the random number streams. Two runs with
	// identical inputs and an identical Seed produce identical
	// chains.
	Seed uint64

	// Parallel draws the K unit conditionals of each iteration
	// concurrently. Each unit has its own random sub-stream, so
	// this changes scheduling only: the chain is identical to a
	// sequential run.
	Parallel bool
}

// DefaultConfig is a reasonable starting configuration. ProposalSD is
// tuned for datasets on the order of the clutch free-throw data; see
// the Config.ProposalSD comment for retuning.
var DefaultConfig = Config{
	Iters:      5000,
	BurnIn:     1000,
	ProposalSD: 1.2,
	PriorMean:  0,
	PriorVar:   10,
	InitTheta:  0.5,
	InitM:      1,
	Seed:       1,
}

func (c Config) validate() error {
	if c.Iters <= 0 {
		return &InvalidInputError{"iters", fmt.Sprintf("%d, want > 0", c.Iters)}
	}
	if c.BurnIn < 0 || c.BurnIn >= c.Iters {
		return &InvalidInputError{"burn_in", fmt.Sprintf("%d outside [0, %d)", c.BurnIn, c.Iters)}
	}
	if !(c.ProposalSD > 0) {
		return &InvalidInputError{"proposal_sd", fmt.Sprintf("%v, want > 0", c.ProposalSD)}
	}
	if !(c.PriorVar > 0) {
		return &InvalidInputError{"prior_var", fmt.Sprintf("%v, want > 0", c.PriorVar)}
	}
	if !(c.InitTheta > 0 && c.InitTheta < 1) {
		return &InvalidInputError{"init_theta", fmt.Sprintf("%v outside (0, 1)", c.InitTheta)}
	}
	if math.IsNaN(c.InitM) || math.IsInf(c.InitM, 0) {
		return &InvalidInputError{"init_m", fmt.Sprintf("%v, want finite", c.InitM)}
	}
	return nil
}

// A Sampler is the state of one Metropolis-within-Gibbs chain. It is
// not safe for concurrent use; a run is an exclusive operation on one
// Sampler.
type Sampler struct {
	data Data
	cfg  Config

	theta []float64
	m     float64

	iter     int
	accepted int

	// msrc drives the m proposal and the accept draw. usrc[i]
	// drives unit i's conditional draws. The streams are fixed at
	// construction so the θ sweep is order-independent.
	msrc  *rand.PCG
	mrand *rand.Rand
	usrc  []*rand.PCG
}

// NewSampler validates data and cfg and returns a chain positioned at
// the initial state (no iterations run).
func NewSampler(data Data, cfg Config) (*Sampler, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	k := data.Units()
	s := &Sampler{
		data:  data,
		cfg:   cfg,
		theta: make([]float64, k),
		m:     cfg.InitM,
		msrc:  rand.NewPCG(cfg.Seed, 0),
		usrc:  make([]*rand.PCG, k),
	}
	s.mrand = rand.New(s.msrc)
	for i := range s.theta {
		s.theta[i] = cfg.InitTheta
		s.usrc[i] = rand.NewPCG(cfg.Seed, uint64(i)+1)
	}
	return s, nil
}

// Step advances the chain one iteration: an exact conditional redraw
// of every θ_i given the current m, then one Metropolis accept/reject
// update of m given the just-drawn θ.
func (s *Sampler) Step() error {
	s.iter++
	if err := s.sweepTheta(); err != nil {
		return err
	}
	return s.updateM()
}

func (s *Sampler) sweepTheta() error {
	if s.cfg.Parallel {
		var g errgroup.Group
		for i := range s.theta {
			g.Go(func() error { return s.drawTheta(i) })
		}
		return g.Wait()
	}
	for i := range s.theta {
		if err := s.drawTheta(i); err != nil {
			return err
		}
	}
	return nil
}

// drawTheta redraws θ_i from its full conditional. The Binomial
// likelihood and the Beta(exp(m)q_i, exp(m)(1-q_i)) prior are
// conjugate, so the conditional is exactly
// Beta(exp(m)q_i + y_i, exp(m)(1-q_i) + n_i - y_i).
func (s *Sampler) drawTheta(i int) error {
	em := math.Exp(s.m)
	alpha := em*s.data.Q[i] + float64(s.data.Y[i])
	beta := em*(1-s.data.Q[i]) + float64(s.data.N[i]-s.data.Y[i])
	if !(alpha > 0) || !(beta > 0) || math.IsInf(alpha, 1) || math.IsInf(beta, 1) {
		return &DegeneracyError{Iter: s.iter, Unit: i, Alpha: alpha, Beta: beta}
	}
	s.theta[i] = distuv.Beta{Alpha: alpha, Beta: beta, Src: pcgSource{s.usrc[i]}}.Rand()
	return nil
}

// updateM proposes m' ~ Normal(m, ProposalSD) and accepts with
// probability min(1, exp(logPostM(m') - logPostM(m))). The proposal
// is symmetric, so there is no Hastings correction. Both densities
// are evaluated against the θ drawn this iteration.
func (s *Sampler) updateM() error {
	cand := distuv.Normal{Mu: s.m, Sigma: s.cfg.ProposalSD, Src: pcgSource{s.msrc}}.Rand()
	cur, err := s.logPostM(s.m)
	if err != nil {
		return err
	}
	prop, err := s.logPostM(cand)
	if err != nil {
		return err
	}
	if math.Log(s.mrand.Float64()) < prop-cur {
		s.m = cand
		s.accepted++
	}
	return nil
}

// Run executes Iters steps from the current state and records every
// post-step (θ_1..θ_K, m). On any error the run aborts with no
// partial chain.
func (s *Sampler) Run() (*Chain, error) {
	k := s.data.Units()
	c := &Chain{K: k, Draws: make([][]float64, 0, s.cfg.Iters)}
	for it := 0; it < s.cfg.Iters; it++ {
		if err := s.Step(); err != nil {
			return nil, err
		}
		row := make([]float64, k+1)
		copy(row, s.theta)
		row[k] = s.m
		c.Draws = append(c.Draws, row)
	}
	c.Accepted = s.accepted
	c.BurnIn = s.cfg.BurnIn
	return c, nil
}

// Fit runs a fresh chain over data and summarizes the post-burn-in
// suffix. It returns the full chain alongside the per-parameter
// summaries (θ_1..θ_K then m).
func Fit(data Data, cfg Config) (*Chain, []Summary, error) {
	s, err := NewSampler(data, cfg)
	if err != nil {
		return nil, nil, err
	}
	c, err := s.Run()
	if err != nil {
		return nil, nil, err
	}
	sums, err := c.Summarize(cfg.BurnIn)
	if err != nil {
		return nil, nil, err
	}
	return c, sums, nil
}
