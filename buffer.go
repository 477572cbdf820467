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

import "io"

// rollingChunk is the initial capacity of rollingBuffer.buf, mirroring the
// original RuM implementation's CHUNKSIZE; later growth is left to append.
const rollingChunk = 1024

// rollingBuffer accumulates every byte consumed from the input so far and
// tracks one active substring by byte offset, the way the state machine
// marks the start/end of the token it is currently lexing (a tag name, an
// attribute name, an attribute value, or a content run) without allocating
// per character.
//
// substrStart and substrEnd are both zero when no substring is active;
// position zero is always the first byte ever written, so it can never be
// the start of a meaningful token, which makes zero a safe "inactive"
// sentinel.
type rollingBuffer struct {
	buf                    []byte
	substrStart, substrEnd int
}

func newRollingBuffer() *rollingBuffer {
	b := &rollingBuffer{}
	b.buf = make([]byte, 0, rollingChunk)
	return b
}

// appendByte records c as having been consumed. RuM reads its input as a raw
// byte stream (see the package's non-goals on character encoding), so each
// "character" the parser classifies is a single byte, not a decoded rune;
// growth is amortized O(1) via the slice's own doubling.
func (b *rollingBuffer) appendByte(c byte) {
	b.buf = append(b.buf, c)
}

// trackSubstr marks the byte about to be appended as part of the active
// substring, starting a new substring if none is active yet. It must be
// called before the byte is appended: the cursor stored is the index the
// byte will occupy once appendByte runs.
func (b *rollingBuffer) trackSubstr() {
	pos := len(b.buf)
	if b.substrStart == 0 && b.substrEnd == 0 {
		b.substrStart = pos
	}
	b.substrEnd = pos
}

// resetSubstr clears the active substring without affecting buffered input.
func (b *rollingBuffer) resetSubstr() {
	b.substrStart, b.substrEnd = 0, 0
}

// cloneSubstr returns an owned copy of the active substring, or "" if none
// is active. It does not reset the substring; callers reset explicitly once
// the clone has been consumed.
func (b *rollingBuffer) cloneSubstr() string {
	if b.substrStart == 0 && b.substrEnd == 0 {
		return ""
	}
	return string(b.buf[b.substrStart : b.substrEnd+1])
}

// WriteTo dumps the raw input consumed so far, for diagnostic reporting.
func (b *rollingBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

func (b *rollingBuffer) String() string {
	return string(b.buf)
}
