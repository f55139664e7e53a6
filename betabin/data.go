// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import "fmt"

// Data holds the fixed observations for one model fit. The three
// slices are indexed by unit and must have equal length.
type Data struct {
	// Q is each unit's reference success proportion, treated as a
	// known constant. 0 < Q[i] < 1.
	Q []float64

	// Y is the observed success count per unit. 0 <= Y[i] <= N[i].
	Y []int

	// N is the observed trial count per unit. N[i] > 0.
	N []int
}

// Units returns the number of units K.
func (d Data) Units() int { return len(d.Q) }

// Validate checks the invariants on d. It returns an
// *InvalidInputError naming the first violated argument, or nil.
func (d Data) Validate() error {
	k := len(d.Q)
	if k == 0 {
		return &InvalidInputError{"q", "no units"}
	}
	if len(d.Y) != k {
		return &InvalidInputError{"y", fmt.Sprintf("length %d, want %d", len(d.Y), k)}
	}
	if len(d.N) != k {
		return &InvalidInputError{"n", fmt.Sprintf("length %d, want %d", len(d.N), k)}
	}
	for i, q := range d.Q {
		if !(q > 0 && q < 1) {
			return &InvalidInputError{"q", fmt.Sprintf("q[%d] = %v outside (0, 1)", i, q)}
		}
	}
	for i, n := range d.N {
		if n <= 0 {
			return &InvalidInputError{"n", fmt.Sprintf("n[%d] = %d, want > 0", i, n)}
		}
		if y := d.Y[i]; y < 0 || y > n {
			return &InvalidInputError{"y", fmt.Sprintf("y[%d] = %d outside [0, %d]", i, y, n)}
		}
	}
	return nil
}
