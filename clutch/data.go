// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clutch provides the 2016-17 NBA clutch free-throw dataset:
// for each of ten players, the regular-season free-throw proportion
// and the made/attempted counts for free throws taken in clutch
// situations (final five minutes, score within five points).
//
// The season proportion is the reference q in the betabin model; the
// question the model answers is how strongly each player's clutch
// shooting should be shrunk toward his season rate.
package clutch

import "github.com/awray/go-hierbayes/betabin"

// A Player records one player's season free-throw proportion and
// clutch free-throw counts.
type Player struct {
	Name string

	// Q is the overall season free-throw proportion.
	Q float64

	// Y and N are clutch free throws made and attempted.
	Y, N int
}

// Players lists the ten players, 2016-17 regular season.
var Players = []Player{
	{"Russell Westbrook", 0.845, 64, 75},
	{"James Harden", 0.847, 72, 95},
	{"Kawhi Leonard", 0.880, 55, 63},
	{"LeBron James", 0.674, 27, 39},
	{"Isaiah Thomas", 0.909, 75, 83},
	{"Stephen Curry", 0.898, 24, 26},
	{"Giannis Antetokounmpo", 0.770, 28, 41},
	{"John Wall", 0.801, 66, 82},
	{"Anthony Davis", 0.802, 40, 54},
	{"Kevin Durant", 0.875, 13, 16},
}

// Data returns the dataset in sampler form, ordered as Players.
func Data() betabin.Data {
	d := betabin.Data{
		Q: make([]float64, len(Players)),
		Y: make([]int, len(Players)),
		N: make([]int, len(Players)),
	}
	for i, p := range Players {
		d.Q[i] = p.Q
		d.Y[i] = p.Y
		d.N[i] = p.N
	}
	return d
}
