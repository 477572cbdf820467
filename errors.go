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
	"fmt"
	"sync"
)

// Kind classifies a parse or schema failure. It lets callers branch on the
// shape of a failure (errors.As) without string-matching a message.
type Kind int

// The error kinds named in the RuM design, grouped by taxonomy.
const (
	// Input-syntax errors: the byte stream itself is not well formed.
	KindIllegalCharacter Kind = iota
	KindInvalidAfterLT
	KindInvalidNameChar
	KindEmptyTagNotSelfClosed
	KindNonEmptyClosedAsEmpty
	KindCloseOpenMismatch
	KindUnquotedAttrValue
	KindContentOutsideRoot
	KindInvalidBangElement
	KindMalformedComment
	KindDashDashInComment
	KindCloseWithoutOpen

	// Semantic errors: the stream is well formed but violates the schema.
	KindRootMismatch
	KindUnknownTagHere
	KindUnknownAttribute
	KindDuplicateAttribute

	// Entity errors: a `&...;` escape in text or an attribute value is bad.
	KindLessThanInText
	KindNestedAmpersand
	KindUnknownEntity
	KindUnterminatedEntity

	// Structural errors: the document as a whole is incomplete.
	KindUnclosedTags
	KindNoRoot

	// Resource errors.
	KindIOError

	// Programmer errors: a public entrypoint was misused.
	KindParserMisconfigured
	KindCannotExtendEmptyTag
)

func (k Kind) String() string {
	switch k {
	case KindIllegalCharacter:
		return "IllegalCharacter"
	case KindInvalidAfterLT:
		return "InvalidAfterLT"
	case KindInvalidNameChar:
		return "InvalidNameChar"
	case KindEmptyTagNotSelfClosed:
		return "EmptyTagNotSelfClosed"
	case KindNonEmptyClosedAsEmpty:
		return "NonEmptyClosedAsEmpty"
	case KindCloseOpenMismatch:
		return "CloseOpenMismatch"
	case KindUnquotedAttrValue:
		return "UnquotedAttrValue"
	case KindContentOutsideRoot:
		return "ContentOutsideRoot"
	case KindInvalidBangElement:
		return "InvalidBangElement"
	case KindMalformedComment:
		return "MalformedComment"
	case KindDashDashInComment:
		return "DashDashInComment"
	case KindCloseWithoutOpen:
		return "CloseWithoutOpen"
	case KindRootMismatch:
		return "RootMismatch"
	case KindUnknownTagHere:
		return "UnknownTagHere"
	case KindUnknownAttribute:
		return "UnknownAttribute"
	case KindDuplicateAttribute:
		return "DuplicateAttribute"
	case KindLessThanInText:
		return "LessThanInText"
	case KindNestedAmpersand:
		return "NestedAmpersand"
	case KindUnknownEntity:
		return "UnknownEntity"
	case KindUnterminatedEntity:
		return "UnterminatedEntity"
	case KindUnclosedTags:
		return "UnclosedTags"
	case KindNoRoot:
		return "NoRoot"
	case KindIOError:
		return "IOError"
	case KindParserMisconfigured:
		return "ParserMisconfigured"
	case KindCannotExtendEmptyTag:
		return "CannotExtendEmptyTag"
	}
	return "(unknown error kind)"
}

// Error is the structured error type returned by every exported RuM
// entrypoint. Prefer errors.As to test for a specific Kind rather than
// comparing error strings.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: cause}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("rum: %s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("rum: %s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// lastErrorState is a process-wide convenience mirroring the original RuM
// library's global error variable (spec §5). Every exported entrypoint
// updates it; new code should prefer the error value each function already
// returns, and treat LastError as a read-only compatibility shim.
var lastErrorState struct {
	mu  sync.Mutex
	err error
}

func setLastError(err error) {
	lastErrorState.mu.Lock()
	lastErrorState.err = err
	lastErrorState.mu.Unlock()
}

// LastError returns the error from the most recently completed call to
// Parse or Schema.InsertTag, or nil if it succeeded. It exists only for API
// parity with the original C library's global last-error variable; callers
// should prefer the error value returned directly by each function.
func LastError() error {
	lastErrorState.mu.Lock()
	defer lastErrorState.mu.Unlock()
	return lastErrorState.err
}
