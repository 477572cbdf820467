// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rum

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// options holds the state every Option mutates. It is never exported:
// callers only ever see the Option constructors below.
type options struct {
	diagnostics io.Writer
	logger      *zap.Logger
}

// Option configures a call to Parse.
type Option func(*options)

// WithDiagnostics writes a one-line summary of any parse error to w, in
// addition to returning it. It is meant for CLI-style callers that want a
// human-readable trace without parsing Error themselves.
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) { o.diagnostics = w }
}

// WithLogger routes structured per-error diagnostics (kind, message, and the
// buffered input consumed so far) through logger instead of discarding them.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Parse reads r to completion as Rudimentary Markup validated against
// schema and returns the root Element of the resulting document tree.
//
// schema is used read-only and is frozen on the first call to Parse: any
// later InsertTag against it fails. Parse reads one byte at a time and never
// backtracks, so a failure anywhere aborts the parse immediately and leaves
// no partial tree for the caller to inspect. It also records the error (or
// nil, on success) in LastError, for parity with the original library.
func Parse(r io.Reader, schema *Schema, opts ...Option) (*Element, error) {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if schema == nil || schema.Root() == nil {
		err := newError(KindParserMisconfigured, "schema has no root tag defined")
		setLastError(err)
		return nil, err
	}
	schema.frozen = true

	p := newParser(schema)
	br := bufio.NewReader(r)

	var lastCompleted *Element
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			wrapped := wrapError(KindIOError, err, "reading input")
			p.report(o, wrapped)
			setLastError(wrapped)
			return nil, wrapped
		}

		elem, perr := p.step(c)
		if perr != nil {
			p.report(o, perr)
			setLastError(perr)
			return nil, perr
		}
		p.buf.appendByte(c)
		if elem != nil {
			lastCompleted = elem
		}
	}

	if lastCompleted == nil {
		err := newError(KindNoRoot, "input contained no complete root element")
		p.report(o, err)
		setLastError(err)
		return nil, err
	}
	if lastCompleted.Parent() != nil {
		err := newError(KindUnclosedTags, "input ended with unclosed tags")
		p.report(o, err)
		setLastError(err)
		return nil, err
	}

	setLastError(nil)
	return lastCompleted, nil
}

// report emits a structured log entry and, if requested, a human-readable
// line to the diagnostics writer. Logging failures are swallowed: a broken
// diagnostics sink must never mask the parse error it is reporting.
func (p *parser) report(o *options, err *Error) {
	o.logger.Debug("rum: parse failed",
		zap.Stringer("kind", err.Kind),
		zap.String("message", err.msg),
		zap.Int("bytes_consumed", len(p.buf.buf)),
		zap.ByteString("buffered_input", p.buf.buf),
	)
	if o.diagnostics != nil {
		fmt.Fprintf(o.diagnostics, "rum: %v\n", err)
	}
}
