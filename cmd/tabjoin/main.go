// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
tabjoin streams a sort-merge join of two key-sorted delimited text files,
combining them with set-algebra semantics (union, intersection, or
left-difference on the join key) and collapsing same-key runs according to
one of several deduplication policies.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/tabmerge/dedup"
	"github.com/grailbio/tabmerge/mergejoin"
	"github.com/grailbio/tabmerge/tabjoin"
)

var (
	leftPath   = flag.String("left", "", "Left input path; '.gz' suffix is read transparently")
	rightPath  = flag.String("right", "", "Right input path; '.gz' suffix is read transparently")
	outputPath = flag.String("output", "", "Output path; '.gz' suffix is written transparently")

	merge = flag.String("merge", "or", "Set-algebra combination: 'or', 'and', or 'and-not'")
	dedupStrategy = flag.String("dedup", "keep-all", "Run collapsing policy: 'keep-all', 'keep-first', 'remove-similar', 'reduce', 'cross-join', or 'cross-join-remove-similar'")

	leftKey   = flag.String("left-key", "", "Join key column name in the left input")
	rightKey  = flag.String("right-key", "", "Join key column name in the right input")
	numberKey = flag.Bool("numeric-key", false, "Compare the join key as a signed 64-bit integer instead of lexicographically")

	delimiter = flag.String("delimiter", "\t", "Field delimiter, a single character")
)

func tabjoinUsage() {
	fmt.Printf("Usage: %s -left=... -right=... -output=... -left-key=... -right-key=...\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func parseMergeStrategy(s string) (mergejoin.Strategy, error) {
	switch s {
	case "or":
		return mergejoin.Or, nil
	case "and":
		return mergejoin.And, nil
	case "and-not":
		return mergejoin.AndNot, nil
	default:
		return 0, fmt.Errorf("unknown -merge value %q", s)
	}
}

func parseDedupStrategy(s string) (dedup.Strategy, error) {
	switch s {
	case "keep-all":
		return dedup.KeepAll, nil
	case "keep-first":
		return dedup.KeepFirst, nil
	case "remove-similar":
		return dedup.RemoveSimilar, nil
	case "reduce":
		return dedup.Reduce, nil
	case "cross-join":
		return dedup.CrossJoin, nil
	case "cross-join-remove-similar":
		return dedup.CrossJoinAndRemoveSimilar, nil
	default:
		return 0, fmt.Errorf("unknown -dedup value %q", s)
	}
}

func main() {
	flag.Usage = tabjoinUsage
	shutdown := grail.Init()
	defer shutdown()

	if *leftPath == "" || *rightPath == "" || *outputPath == "" {
		log.Fatalf("-left, -right, and -output are all required")
	}
	if *leftKey == "" || *rightKey == "" {
		log.Fatalf("-left-key and -right-key are both required")
	}
	if len(*delimiter) != 1 {
		log.Fatalf("-delimiter must be exactly one character, got %q", *delimiter)
	}

	mergeStrategy, err := parseMergeStrategy(*merge)
	if err != nil {
		log.Fatalf("%v", err)
	}
	dedupStrat, err := parseDedupStrategy(*dedupStrategy)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := vcontext.Background()
	opts := tabjoin.Options{
		LeftPath:            *leftPath,
		RightPath:           *rightPath,
		OutputPath:          *outputPath,
		MergeStrategy:       mergeStrategy,
		DeduplicateStrategy: dedupStrat,
		LeftKey:             *leftKey,
		RightKey:            *rightKey,
		NumberKey:           *numberKey,
		Delimiter:           rune((*delimiter)[0]),
	}
	if err := tabjoin.Run(ctx, opts); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
