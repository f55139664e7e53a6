// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package betabin fits a hierarchical Beta-Binomial model by
// Metropolis-within-Gibbs sampling.
//
// The model has K units. Unit i produces Y[i] successes in N[i]
// Bernoulli trials with latent success probability θ_i. Each θ_i has
// a conjugate prior
//
//	θ_i ~ Beta(exp(m)·q_i, exp(m)·(1-q_i))
//
// centered on a known reference proportion q_i, and the shared
// concentration parameter m has a Normal(PriorMean, PriorVar) prior.
// Large m pulls every θ_i tightly toward its q_i; small m lets the
// observed counts dominate.
//
// Each iteration redraws every θ_i exactly from its Beta full
// conditional (conjugacy, no approximation) and then updates m with a
// single symmetric-proposal Metropolis step. The chain is strictly
// sequential across iterations; within an iteration the K θ draws are
// independent and may run in parallel (see Config.Parallel) without
// changing the sampled values.
package betabin

import "math"

var inf = math.Inf(1)
