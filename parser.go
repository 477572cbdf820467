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

// state names one position in the character-driven grammar the parser
// accepts. Names follow the structure being lexed, not the action taken.
type state int

const (
	stateContent state = iota
	stateStartTag
	stateOpenTagName
	stateOpenTagSpace
	stateOpenTagEmpty
	stateOpenTagAttrName
	stateOpenTagAttrEquals
	stateOpenTagAttrValue
	stateOpenTagHaveValue
	stateOpenPI
	stateClosePI
	stateOpenCommentBang
	stateOpenCommentBangDash
	stateComment
	stateCloseCommentDash
	stateCloseCommentDashDash
	stateCloseTagStart
	stateCloseTagName
)

// frame is one entry in the parser's stack: the lexing state local to one
// open element (or, at the bottom of the stack, the document's outermost
// content region, where element is nil).
type frame struct {
	state     state
	quoteChar byte
	attrName  string
	element   *Element
}

// parser drives the character-at-a-time state machine described by the
// package's design: it consumes one byte per step and mutates the document
// tree directly through the schema/document APIs, emitting nothing of its
// own.
type parser struct {
	schema *Schema
	buf    *rollingBuffer
	stack  []*frame
}

func newParser(schema *Schema) *parser {
	return &parser{
		schema: schema,
		buf:    newRollingBuffer(),
		stack:  []*frame{{state: stateContent}},
	}
}

func (p *parser) top() *frame { return p.stack[len(p.stack)-1] }

func (p *parser) push(s state) {
	p.stack = append(p.stack, &frame{state: s})
}

// pop removes the top frame and returns the element it held, clearing any
// in-progress attribute name it had accumulated.
func (p *parser) pop() *Element {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return f.element
}

// startElement clones the tracked tag name, creates the corresponding child
// element under the current top frame's element (nil meaning "document
// root"), pushes a new frame in newState to hold it, and resets the
// tracked substring. The outer frame's own state must already have been set
// to the state it should resume in once this new frame is eventually
// popped - callers do that before calling startElement.
func (p *parser) startElement(newState state) error {
	name := p.buf.cloneSubstr()
	p.buf.resetSubstr()
	parent := p.top().element
	elem, err := newElement(parent, p.schema, name)
	if err != nil {
		return err
	}
	p.push(newState)
	p.top().element = elem
	return nil
}

// addEmptyValue commits the tracked attribute name as present with an empty
// value, for the `<tag attr>` shorthand (an attribute with no `=value`).
func (p *parser) addEmptyValue() error {
	name := p.buf.cloneSubstr()
	if err := setValue(p.top().element, name, ""); err != nil {
		return err
	}
	p.buf.resetSubstr()
	return nil
}

// handleContent commits the tracked substring as elem's content, if elem
// exists and has no content yet. It is the content-boundary rule applied at
// every exit from Content: on '<', and on leaving a PI or a comment.
func (p *parser) handleContent(elem *Element) error {
	if elem == nil {
		return nil
	}
	if _, ok := elem.Content(); ok {
		return nil
	}
	raw := p.buf.cloneSubstr()
	if err := setContent(elem, raw); err != nil {
		return err
	}
	p.buf.resetSubstr()
	return nil
}

// step consumes one byte of input and returns the element most recently
// popped off the stack as a result (nil if none was), or an error if c is
// illegal or violates the grammar or schema at this position.
func (p *parser) step(c byte) (*Element, error) {
	if !isLegalChar(rune(c)) {
		return nil, newError(KindIllegalCharacter, "illegal character 0x%x in input", c)
	}

	f := p.top()
	switch f.state {
	case stateContent:
		if c == '<' {
			f.state = stateStartTag
			if err := p.handleContent(f.element); err != nil {
				return nil, err
			}
			return nil, nil
		}
		if f.element == nil {
			if !isXMLSpace(rune(c)) {
				return nil, newError(KindContentOutsideRoot, "content found outside any containing tag")
			}
			return nil, nil
		}
		if _, ok := f.element.Content(); !ok {
			p.buf.trackSubstr()
		}
		return nil, nil

	case stateStartTag:
		switch {
		case c == '?':
			f.state = stateOpenPI
		case c == '!':
			f.state = stateOpenCommentBang
		case c == '/':
			f.state = stateCloseTagStart
			if f.element == nil {
				return nil, newError(KindCloseWithoutOpen, "close tag found without a matching open tag")
			}
		case isNameStart(rune(c)):
			f.state = stateOpenTagName
			p.buf.trackSubstr()
		default:
			return nil, newError(KindInvalidAfterLT, "character %q not allowed after '<'", c)
		}
		return nil, nil

	case stateOpenPI:
		if c == '?' {
			f.state = stateClosePI
		}
		return nil, nil

	case stateClosePI:
		if c == '>' {
			f.state = stateContent
			if err := p.handleContent(f.element); err != nil {
				return nil, err
			}
		} else {
			f.state = stateOpenPI
		}
		return nil, nil

	case stateOpenCommentBang:
		if c != '-' {
			return nil, newError(KindInvalidBangElement, "'<!' elements other than comments are not allowed")
		}
		f.state = stateOpenCommentBangDash
		return nil, nil

	case stateOpenCommentBangDash:
		if c != '-' {
			return nil, newError(KindMalformedComment, "malformed comment")
		}
		f.state = stateComment
		return nil, nil

	case stateComment:
		if c == '-' {
			f.state = stateCloseCommentDash
		}
		return nil, nil

	case stateCloseCommentDash:
		if c == '-' {
			f.state = stateCloseCommentDashDash
		} else {
			f.state = stateComment
		}
		return nil, nil

	case stateCloseCommentDashDash:
		if c != '>' {
			return nil, newError(KindDashDashInComment, "'--' not allowed within a comment")
		}
		f.state = stateContent
		if err := p.handleContent(f.element); err != nil {
			return nil, err
		}
		return nil, nil

	case stateOpenTagName:
		switch {
		case isNameChar(rune(c)):
			p.buf.trackSubstr()
		case isXMLSpace(rune(c)):
			f.state = stateContent
			if err := p.startElement(stateOpenTagSpace); err != nil {
				return nil, err
			}
		case c == '>':
			f.state = stateContent
			if err := p.startElement(stateContent); err != nil {
				return nil, err
			}
			if p.top().element.Tag().IsEmpty() {
				return nil, newError(KindEmptyTagNotSelfClosed, "tag %q is empty and must be self-closed", p.top().element.Tag().Name())
			}
		case c == '/':
			f.state = stateContent
			if err := p.startElement(stateOpenTagEmpty); err != nil {
				return nil, err
			}
		default:
			return nil, newError(KindInvalidNameChar, "invalid character %q in tag name", c)
		}
		return nil, nil

	case stateOpenTagSpace:
		switch {
		case c == '/':
			f.state = stateOpenTagEmpty
		case c == '>':
			f.state = stateContent
			if f.element.Tag().IsEmpty() {
				return nil, newError(KindEmptyTagNotSelfClosed, "tag %q is empty and must be self-closed", f.element.Tag().Name())
			}
		case isNameStart(rune(c)):
			f.state = stateOpenTagAttrName
			p.buf.trackSubstr()
		case !isXMLSpace(rune(c)):
			return nil, newError(KindInvalidNameChar, "invalid character %q in attribute name", c)
		}
		return nil, nil

	case stateOpenTagEmpty:
		if c != '>' {
			return nil, newError(KindInvalidNameChar, "'/' not followed by '>' in open tag")
		}
		if !f.element.Tag().IsEmpty() {
			return nil, newError(KindNonEmptyClosedAsEmpty, "tag %q is not empty and cannot be self-closed", f.element.Tag().Name())
		}
		elem := p.pop()
		p.buf.resetSubstr()
		return elem, nil

	case stateOpenTagAttrName:
		switch {
		case isNameChar(rune(c)):
			p.buf.trackSubstr()
		case isXMLSpace(rune(c)):
			f.state = stateOpenTagSpace
			if err := p.addEmptyValue(); err != nil {
				return nil, err
			}
		case c == '>':
			f.state = stateContent
			if err := p.addEmptyValue(); err != nil {
				return nil, err
			}
		case c == '=':
			f.state = stateOpenTagAttrEquals
			f.attrName = p.buf.cloneSubstr()
			p.buf.resetSubstr()
		default:
			return nil, newError(KindInvalidNameChar, "invalid character %q in attribute name", c)
		}
		return nil, nil

	case stateOpenTagAttrEquals:
		if c != '\'' && c != '"' {
			return nil, newError(KindUnquotedAttrValue, "attribute values must be quoted")
		}
		f.state = stateOpenTagAttrValue
		f.quoteChar = c
		return nil, nil

	case stateOpenTagAttrValue:
		if c != f.quoteChar {
			p.buf.trackSubstr()
			return nil, nil
		}
		f.state = stateOpenTagHaveValue
		value := p.buf.cloneSubstr()
		if err := setValue(f.element, f.attrName, value); err != nil {
			return nil, err
		}
		f.attrName = ""
		p.buf.resetSubstr()
		return nil, nil

	case stateOpenTagHaveValue:
		switch {
		case c == '/':
			f.state = stateOpenTagEmpty
		case c == '>':
			f.state = stateContent
			if f.element.Tag().IsEmpty() {
				return nil, newError(KindEmptyTagNotSelfClosed, "tag %q is empty and must be self-closed", f.element.Tag().Name())
			}
		case isXMLSpace(rune(c)):
			f.state = stateOpenTagSpace
		default:
			return nil, newError(KindInvalidNameChar, "invalid character %q after end quote in attribute value", c)
		}
		f.quoteChar = 0
		return nil, nil

	case stateCloseTagStart:
		if !isNameStart(rune(c)) {
			return nil, newError(KindInvalidNameChar, "invalid first character %q in close tag name", c)
		}
		f.state = stateCloseTagName
		p.buf.trackSubstr()
		return nil, nil

	case stateCloseTagName:
		switch {
		case isNameChar(rune(c)):
			p.buf.trackSubstr()
		case c == '>':
			if f.element == nil {
				return nil, newError(KindCloseWithoutOpen, "close tag found without a matching open tag")
			}
			if p.buf.cloneSubstr() != f.element.Tag().Name() {
				return nil, newError(KindCloseOpenMismatch, "close tag does not match open tag %q", f.element.Tag().Name())
			}
			elem := p.pop()
			p.buf.resetSubstr()
			return elem, nil
		default:
			return nil, newError(KindInvalidNameChar, "invalid character %q in close tag", c)
		}
		return nil, nil
	}

	return nil, newError(KindParserMisconfigured, "parser reached an impossible state")
}
