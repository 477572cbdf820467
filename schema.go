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
	"io"

	"github.com/Goodwine/triemap"
)

// AttrSpec describes one attribute a Tag accepts. It is immutable once
// registered with Schema.InsertTag.
type AttrSpec struct {
	Name string

	// Required is recorded but never enforced by the parser (see the
	// design notes on this deliberate divergence). Callers who want
	// required-attribute enforcement must check it themselves after Parse
	// returns.
	Required bool
}

// DisplayFunc is the opaque callback a Tag carries. The parser and document
// tree never interpret its side effects; Element.Display invokes it once
// per element, preorder.
type DisplayFunc func(*Element) error

// Tag is one node in a Schema's tag tree: a named, possibly-empty element
// type with an ordered attribute list and a display callback.
//
// Tag's parent link and ordered children list are populated by InsertTag and
// are a non-owning convenience for walking the schema (e.g.
// Schema.Display); they never need explicit teardown since Go's tree of
// Tags is garbage collected as a unit once the root is unreachable.
type Tag struct {
	name     string
	isEmpty  bool
	attrs    []AttrSpec
	display  DisplayFunc
	parent   *Tag
	children []*Tag

	// childIndex is a trie over child names, consulted by FindChild. It
	// turns what would otherwise be a linear scan over every sibling into a
	// trie lookup; FindChild runs once per open tag encountered while
	// parsing, so for documents with wide schemas (many siblings under one
	// parent) this is the hot path the schema component exists to serve.
	childIndex triemap.RuneSliceMap
}

// Name returns the tag's name.
func (t *Tag) Name() string { return t.name }

// IsEmpty reports whether the tag must be self-closed (<name/>) and can
// carry neither content nor children.
func (t *Tag) IsEmpty() bool { return t.isEmpty }

// Parent returns the tag's parent, or nil if t is the schema root.
func (t *Tag) Parent() *Tag { return t.parent }

// Attrs returns the tag's attribute specs in declaration order. The slice
// must not be mutated by the caller.
func (t *Tag) Attrs() []AttrSpec { return t.attrs }

// attrIndex returns the declared index of name within t's attrs, or -1.
func (t *Tag) attrIndex(name string) int {
	for i, a := range t.attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// FindChild returns the direct child of t named name. This is deliberately
// a depth-1 lookup: RuM's schema once had a recursive full-tree search, but
// that admits tags at positions the schema never intended to allow, so only
// direct children are considered.
func (t *Tag) FindChild(name string) (*Tag, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.childIndex.Get([]rune(name))
	if !ok {
		return nil, false
	}
	return v.(*Tag), true
}

// Schema is a Tag tree rooted at a single Tag with no parent. It is built
// once via repeated InsertTag calls and then used read-only for the
// lifetime of every Parse call against it.
type Schema struct {
	root   *Tag
	frozen bool
}

// NewSchema returns an empty Schema. Call InsertTag with a nil parent to
// establish the root tag.
func NewSchema() *Schema { return &Schema{} }

// Root returns the schema's root tag, or nil if none has been inserted yet.
func (s *Schema) Root() *Tag { return s.root }

// InsertTag adds a new Tag to the schema and returns a handle to it. Pass a
// nil parent exactly once, for the root tag; every subsequent call must
// name an existing parent. Tag names must be unique among the siblings of a
// given parent; the schema does not require names to be unique globally.
// It also records the error (or nil, on success) in LastError.
func (s *Schema) InsertTag(parent *Tag, name string, isEmpty bool, attrs []AttrSpec, display DisplayFunc) (tag *Tag, err error) {
	defer func() { setLastError(err) }()
	if s.frozen {
		return nil, newError(KindParserMisconfigured, "schema has already been used by Parse and can no longer be extended")
	}
	if name == "" || display == nil {
		return nil, newError(KindParserMisconfigured, "tag name and display callback are required")
	}
	if parent == nil && s.root != nil {
		return nil, newError(KindParserMisconfigured, "schema already has a root tag")
	}
	if parent != nil && parent.isEmpty {
		return nil, newError(KindCannotExtendEmptyTag, "tag %q is empty and cannot have children", parent.name)
	}
	if parent != nil {
		if _, exists := parent.FindChild(name); exists {
			return nil, newError(KindParserMisconfigured, "tag %q already has a child named %q", parent.name, name)
		}
	}

	tag = &Tag{
		name:    name,
		isEmpty: isEmpty,
		attrs:   append([]AttrSpec(nil), attrs...),
		display: display,
		parent:  parent,
	}
	if parent == nil {
		s.root = tag
	} else {
		parent.children = append(parent.children, tag)
		parent.childIndex.Put([]rune(name), tag)
	}
	return tag, nil
}

// Display writes a human-readable preorder dump of the schema: each tag's
// name, emptiness, and attributes (name and required flag). It is the Go
// analogue of the original library's debug-flag schema dump.
func (s *Schema) Display(w io.Writer) error {
	if s.root == nil {
		_, err := fmt.Fprintln(w, "The schema is undefined.")
		return err
	}
	if _, err := fmt.Fprintln(w, "The schema consists of these tags and attributes:"); err != nil {
		return err
	}
	return displayTag(w, s.root, 0)
}

func displayTag(w io.Writer, tag *Tag, indent int) error {
	empty := "nonempty"
	if tag.isEmpty {
		empty = "empty"
	}
	if _, err := fmt.Fprintf(w, "%*sTAG %s (%s)\n", indent*3, "", tag.name, empty); err != nil {
		return err
	}
	for _, a := range tag.attrs {
		req := "optional"
		if a.Required {
			req = "required"
		}
		if _, err := fmt.Fprintf(w, "%*sATTR %s (%s)\n", indent*3, "", a.Name, req); err != nil {
			return err
		}
	}
	for _, child := range tag.children {
		if err := displayTag(w, child, indent+1); err != nil {
			return err
		}
	}
	return nil
}
