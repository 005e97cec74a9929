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

// Package tabjoin orchestrates a full streaming join: it opens both inputs,
// resolves the output schema, drives the merge-join, and routes every row
// through a deduplication handler to produce the final output file.
package tabjoin

import (
	"context"
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/tabmerge/dedup"
	"github.com/grailbio/tabmerge/header"
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/mergejoin"
	"github.com/grailbio/tabmerge/recordio"
)

// Kind classifies a tabjoin error for callers that want to react
// differently to, say, a missing key column versus a malformed input file.
type Kind int

const (
	// KindIO covers failures opening, reading, or writing files.
	KindIO Kind = iota
	// KindFormat covers malformed delimited-text content.
	KindFormat
	// KindSchema covers a requested key column that doesn't exist.
	KindSchema
	// KindParse covers a numeric key column that doesn't parse.
	KindParse
	// KindPrecondition covers an internal invariant violation: input that
	// was claimed to be sorted on the key column but isn't.
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindSchema:
		return "schema"
	case KindParse:
		return "parse"
	case KindPrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with the Kind of failure it represents.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Options configures a single join run.
type Options struct {
	LeftPath, RightPath, OutputPath string

	MergeStrategy       mergejoin.Strategy
	DeduplicateStrategy dedup.Strategy

	LeftKey, RightKey string
	NumberKey         bool

	// HeaderCallback, if non-nil, renames or drops columns before they
	// participate in the output schema. See header.Callback.
	HeaderCallback header.Callback

	Delimiter rune
}

func (o Options) keyMode() keycmp.Mode {
	if o.NumberKey {
		return keycmp.Numeric
	}
	return keycmp.Bytes
}

func (o Options) recordioOptions() recordio.Options {
	return recordio.Options{Delimiter: o.Delimiter}
}

// Run executes the join described by opts, writing the result to
// opts.OutputPath.
func Run(ctx context.Context, opts Options) error {
	emptyLeft, err := recordio.IsEmpty(opts.LeftPath)
	if err != nil {
		return wrap(KindIO, err)
	}
	emptyRight, err := recordio.IsEmpty(opts.RightPath)
	if err != nil {
		return wrap(KindIO, err)
	}
	if emptyLeft || emptyRight {
		log.Debug.Printf("tabjoin: %s or %s is empty, writing empty output", opts.LeftPath, opts.RightPath)
		return wrap(KindIO, recordio.CreateEmpty(opts.OutputPath))
	}

	leftReader, err := recordio.Open(opts.LeftPath, opts.recordioOptions())
	if err != nil {
		return wrap(KindIO, err)
	}
	defer leftReader.Close() // nolint: errcheck

	rightReader, err := recordio.Open(opts.RightPath, opts.recordioOptions())
	if err != nil {
		return wrap(KindIO, err)
	}
	defer rightReader.Close() // nolint: errcheck

	unionHeader, leftIdx, rightIdx := header.Union(leftReader.Header(), rightReader.Header(), opts.HeaderCallback)

	// Key names are resolved against the union header (after HeaderCallback)
	// and mapped back to each side's source column, since the cursors read
	// unprojected rows.
	leftUnionKey, err := header.ResolveKey(unionHeader, opts.LeftKey)
	if err != nil {
		return wrap(KindSchema, err)
	}
	rightUnionKey, err := header.ResolveKey(unionHeader, opts.RightKey)
	if err != nil {
		return wrap(KindSchema, err)
	}
	leftKeyIdx, rightKeyIdx := leftIdx[leftUnionKey], rightIdx[rightUnionKey]
	if leftKeyIdx == header.Absent || rightKeyIdx == header.Absent {
		return wrap(KindSchema, fmt.Errorf("tabjoin: key column %q or %q is missing from its own side", opts.LeftKey, opts.RightKey))
	}

	writer, err := recordio.Create(opts.OutputPath, opts.recordioOptions())
	if err != nil {
		return wrap(KindIO, err)
	}
	defer writer.Close() // nolint: errcheck

	if err := writer.WriteHeader(unionHeader); err != nil {
		return wrap(KindIO, err)
	}

	mode := opts.keyMode()
	handler, err := dedup.New(opts.DeduplicateStrategy, writer, mode)
	if err != nil {
		return wrap(KindSchema, err)
	}

	leftCursor, err := mergejoin.NewCursor(leftReader, leftKeyIdx)
	if err != nil {
		return classifyMergeError(err)
	}
	rightCursor, err := mergejoin.NewCursor(rightReader, rightKeyIdx)
	if err != nil {
		return classifyMergeError(err)
	}

	sink := &projectingSink{leftIdx: leftIdx, rightIdx: rightIdx, handler: handler}
	if err := mergejoin.Run(leftCursor, rightCursor, opts.MergeStrategy, mode, sink); err != nil {
		return classifyMergeError(err)
	}

	if err := handler.Flush(); err != nil {
		return classifyMergeError(err)
	}
	return nil
}

// projectingSink adapts mergejoin's raw, per-side rows to the union schema
// before handing them to the dedup handler.
type projectingSink struct {
	leftIdx, rightIdx []int
	handler           dedup.Handler
}

func (s *projectingSink) Push(row recordio.Row, side dedup.Side, key []byte) error {
	idx := s.leftIdx
	if side == dedup.Right {
		idx = s.rightIdx
	}
	projected := header.Project(row, idx)
	return s.handler.Add(projected, side, key)
}

// classifyMergeError assigns a Kind to an error surfaced from keycmp,
// recordio, or dedup during the merge-drive phase, based on its sentinel
// cause. Errors that don't match a known sentinel default to KindFormat,
// since at that point the most likely cause is malformed row content.
func classifyMergeError(err error) error {
	if err == nil {
		return nil
	}
	if isPreconditionErr(err) {
		return wrap(KindPrecondition, err)
	}
	if isParseErr(err) {
		return wrap(KindParse, err)
	}
	return wrap(KindFormat, err)
}
