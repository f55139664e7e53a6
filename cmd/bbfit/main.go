// Copyright 2025 The go-hierbayes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// bbfit fits the hierarchical Beta-Binomial model and prints
// posterior summaries for every unit and for the concentration
// parameter m.
//
// By default it fits the built-in clutch free-throw dataset. With
// -stdin it instead reads one unit per line from standard input as
// whitespace-separated "q y n" triples.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/awray/go-hierbayes/betabin"
	"github.com/awray/go-hierbayes/clutch"
)

func main() {
	var (
		iters     = flag.Int("iters", betabin.DefaultConfig.Iters, "chain iterations")
		burnIn    = flag.Int("burnin", betabin.DefaultConfig.BurnIn, "leading draws to discard")
		sd        = flag.Float64("sd", betabin.DefaultConfig.ProposalSD, "proposal standard deviation for m")
		priorMean = flag.Float64("prior-mean", betabin.DefaultConfig.PriorMean, "mean of the normal prior on m")
		priorVar  = flag.Float64("prior-var", betabin.DefaultConfig.PriorVar, "variance of the normal prior on m")
		seed      = flag.Uint64("seed", betabin.DefaultConfig.Seed, "random number seed")
		parallel  = flag.Bool("parallel", false, "draw unit conditionals concurrently")
		fromStdin = flag.Bool("stdin", false, "read q y n triples from stdin instead of the built-in clutch data")
	)
	flag.Parse()

	var labels []string
	var data betabin.Data
	if *fromStdin {
		labels, data = readInput(os.Stdin)
	} else {
		data = clutch.Data()
		for _, p := range clutch.Players {
			labels = append(labels, p.Name)
		}
	}

	cfg := betabin.DefaultConfig
	cfg.Iters = *iters
	cfg.BurnIn = *burnIn
	cfg.ProposalSD = *sd
	cfg.PriorMean = *priorMean
	cfg.PriorVar = *priorVar
	cfg.Seed = *seed
	cfg.Parallel = *parallel

	chain, sums, err := betabin.Fit(data, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%d draws, burn-in %d, accept ratio %.3f\n", len(chain.Draws), cfg.BurnIn, chain.AcceptRatio())
	fmt.Println()
	fmt.Printf("%-28s %8s %8s %8s\n", "", "mean", "2.5%", "97.5%")
	for i, sum := range sums {
		label := "m"
		if i < chain.K {
			label = fmt.Sprintf("theta[%s]", labels[i])
		}
		fmt.Printf("%-28s %8.4f %8.4f %8.4f\n", label, sum.Mean, sum.Lo, sum.Hi)
	}
}

func readInput(r io.Reader) (labels []string, data betabin.Data) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l := scanner.Text()
		var q float64
		var y, n int
		if _, err := fmt.Sscanf(l, "%g %d %d", &q, &y, &n); err != nil {
			fmt.Fprintf(os.Stderr, "bad input line %q: %v\n", l, err)
			os.Exit(1)
		}
		labels = append(labels, fmt.Sprint(len(labels)+1))
		data.Q = append(data.Q, q)
		data.Y = append(data.Y, y)
		data.N = append(data.N, n)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return
}
