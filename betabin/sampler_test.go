// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import (
	"errors"
	"math"
	"testing"
)

func testData() Data {
	return Data{
		Q: []float64{0.5, 0.8, 0.3},
		Y: []int{5, 8, 1},
		N: []int{10, 10, 5},
	}
}

func testConfig() Config {
	cfg := DefaultConfig
	cfg.Iters = 2000
	cfg.BurnIn = 500
	cfg.Seed = 42
	return cfg
}

func TestDeterminism(t *testing.T) {
	run := func(parallel bool) *Chain {
		t.Helper()
		cfg := testConfig()
		cfg.Parallel = parallel
		s, err := NewSampler(testData(), cfg)
		if err != nil {
			t.Fatal(err)
		}
		c, err := s.Run()
		if err != nil {
			t.Fatal(err)
		}
		return c
	}

	a, b := run(false), run(false)
	for it := range a.Draws {
		for j := range a.Draws[it] {
			if a.Draws[it][j] != b.Draws[it][j] {
				t.Fatalf("iteration %d, param %d: %v != %v under identical seeds", it, j, a.Draws[it][j], b.Draws[it][j])
			}
		}
	}
	if a.Accepted != b.Accepted {
		t.Errorf("accept counts differ under identical seeds: %d != %d", a.Accepted, b.Accepted)
	}

	// The parallel sweep draws from the same per-unit streams, so
	// it must reproduce the sequential chain exactly.
	p := run(true)
	for it := range a.Draws {
		for j := range a.Draws[it] {
			if a.Draws[it][j] != p.Draws[it][j] {
				t.Fatalf("iteration %d, param %d: parallel %v != sequential %v", it, j, p.Draws[it][j], a.Draws[it][j])
			}
		}
	}
}

func TestBoundedness(t *testing.T) {
	// Include units with y=0 and y=n: the conditional Beta shapes
	// stay positive because exp(m)q and exp(m)(1-q) do.
	data := Data{
		Q: []float64{0.5, 0.9, 0.2},
		Y: []int{0, 10, 3},
		N: []int{10, 10, 5},
	}
	s, err := NewSampler(data, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	for it, row := range c.Draws {
		for i := 0; i < c.K; i++ {
			if !(row[i] > 0 && row[i] < 1) {
				t.Fatalf("iteration %d: theta[%d] = %v outside (0, 1)", it, i, row[i])
			}
		}
		m := row[c.K]
		if math.IsNaN(m) || math.IsInf(m, 0) {
			t.Fatalf("iteration %d: m = %v", it, m)
		}
	}
}

func TestAcceptRatio(t *testing.T) {
	cfg := testConfig()
	cfg.Iters = 1000
	cfg.BurnIn = 0
	s, err := NewSampler(testData(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	r := c.AcceptRatio()
	if !(r > 0 && r < 1) {
		t.Errorf("accept ratio %v; a chain that never or always moves is misconfigured", r)
	}
}

func TestConjugateMean(t *testing.T) {
	// With m held fixed, repeated conditional draws of theta[i]
	// must average to the analytic Beta mean alpha'/(alpha'+beta').
	s, err := NewSampler(testData(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.m = 2

	const reps = 50000
	i := 1
	em := math.Exp(s.m)
	alpha := em*s.data.Q[i] + float64(s.data.Y[i])
	beta := em*(1-s.data.Q[i]) + float64(s.data.N[i]-s.data.Y[i])
	want := alpha / (alpha + beta)

	var sum float64
	for r := 0; r < reps; r++ {
		if err := s.drawTheta(i); err != nil {
			t.Fatal(err)
		}
		sum += s.theta[i]
	}
	got := sum / reps
	if !near(want, got, 0.005) {
		t.Errorf("mean of %d conditional draws = %v, want ≈ %v", reps, got, want)
	}
}

func TestLogPostM(t *testing.T) {
	data := Data{Q: []float64{0.5}, Y: []int{1}, N: []int{2}}
	s, err := NewSampler(data, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	// At m=0 the conditional prior is Beta(1/2, 1/2), whose
	// density at theta=1/2 is 2/π. The prior on m contributes a
	// Normal(0, sqrt(10)) density at 0.
	got, err := s.logPostM(0)
	if err != nil {
		t.Fatal(err)
	}
	want := -math.Log(math.Sqrt(2*math.Pi*10)) + math.Log(2/math.Pi)
	if !aeq(want, got) {
		t.Errorf("logPostM(0) = %v, want %v", got, want)
	}
}

func TestDegeneracy(t *testing.T) {
	s, err := NewSampler(testData(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	// exp(m) overflows: the step must fail identifying the unit,
	// not emit NaN draws.
	s.m = 1000
	err = s.Step()
	var deg *DegeneracyError
	if !errors.As(err, &deg) {
		t.Fatalf("want *DegeneracyError, got %v", err)
	}
	if deg.Unit != 0 {
		t.Errorf("degeneracy reported for unit %d, want 0", deg.Unit)
	}
	if deg.Iter != 1 {
		t.Errorf("degeneracy reported at iteration %d, want 1", deg.Iter)
	}

	_, err = s.logPostM(1000)
	if !errors.As(err, &deg) {
		t.Fatalf("logPostM(1000): want *DegeneracyError, got %v", err)
	}
	if deg.Unit != -1 {
		t.Errorf("density degeneracy reported for unit %d, want -1", deg.Unit)
	}
}
