// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import "fmt"

// An InvalidInputError reports a precondition violation on the data
// or configuration supplied to the sampler. Arg names the offending
// argument.
type InvalidInputError struct {
	Arg    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Arg, e.Reason)
}

// A DegeneracyError reports that a derived distribution parameter
// became non-positive or non-finite during sampling, typically from
// exp(m) overflowing for very large m. The run that produced it is
// aborted; no partial results are returned.
//
// Unit is the zero-based unit whose conditional Beta parameters
// degenerated, or -1 if the degeneracy arose while evaluating the
// posterior density of m.
type DegeneracyError struct {
	Iter  int
	Unit  int
	Alpha float64
	Beta  float64
}

func (e *DegeneracyError) Error() string {
	if e.Unit < 0 {
		return fmt.Sprintf("iteration %d: degenerate density for m (alpha=%g, beta=%g)", e.Iter, e.Alpha, e.Beta)
	}
	return fmt.Sprintf("iteration %d, unit %d: degenerate Beta parameters (alpha=%g, beta=%g)", e.Iter, e.Unit, e.Alpha, e.Beta)
}

// An InsufficientSamplesError reports that discarding BurnIn draws
// from a chain of Draws total leaves nothing to summarize.
type InsufficientSamplesError struct {
	Draws  int
	BurnIn int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("burn-in %d leaves no draws to summarize (chain has %d)", e.BurnIn, e.Draws)
}
