// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package betabin

import "math"

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// near is aeq with a caller-chosen tolerance, for Monte Carlo checks.
func near(expect, got, tol float64) bool {
	return math.Abs(expect-got) < tol
}
