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

// Element is one instantiated node in a parsed document: a Tag instance
// together with the attribute values and content that were actually present
// in the input, and links to the rest of the tree.
//
// The Document that owns an Element tree is simply its root Element;
// children and siblings are reachable only from their parent, in the order
// their open tags appeared in the input.
type Element struct {
	tag      *Tag
	values   []string
	valueSet []bool
	content  *string

	parent      *Element
	firstChild  *Element
	lastChild   *Element
	nextSibling *Element
}

// Tag returns the schema tag this element instantiates.
func (e *Element) Tag() *Tag { return e.tag }

// Parent returns e's parent, or nil if e is the document root.
func (e *Element) Parent() *Element { return e.parent }

// FirstChild returns e's first child in source order, or nil.
func (e *Element) FirstChild() *Element { return e.firstChild }

// NextSibling returns the next element sharing e's parent, in source order,
// or nil if e is the last child.
func (e *Element) NextSibling() *Element { return e.nextSibling }

// Value returns the decoded value of the attribute named name, and whether
// it was set at all in the input. Attribute values are stored at the index
// their AttrSpec occupies in the tag's declared attribute list, not in the
// order they appeared in the input.
func (e *Element) Value(name string) (string, bool) {
	i := e.tag.attrIndex(name)
	if i < 0 || !e.valueSet[i] {
		return "", false
	}
	return e.values[i], true
}

// Content returns the element's decoded content and whether any was set.
//
// Only the first contiguous run of text before any nested child is ever
// retained: RuM diverges from XML here deliberately, silently discarding
// any further text that appears between or after children.
func (e *Element) Content() (string, bool) {
	if e.content == nil {
		return "", false
	}
	return *e.content, true
}

// newElement validates that name is admissible at this position (the
// schema root if parent is nil, otherwise a direct child of parent's tag)
// and appends a freshly allocated Element to parent's child list.
func newElement(parent *Element, schema *Schema, name string) (*Element, error) {
	var tag *Tag
	if parent == nil {
		root := schema.Root()
		if root == nil || root.Name() != name {
			return nil, newError(KindRootMismatch, "root element must be %q, found %q", rootName(schema), name)
		}
		tag = root
	} else {
		found, ok := parent.tag.FindChild(name)
		if !ok {
			return nil, newError(KindUnknownTagHere, "tag %q is not allowed inside %q", name, parent.tag.name)
		}
		tag = found
	}

	e := &Element{
		tag:      tag,
		values:   make([]string, len(tag.attrs)),
		valueSet: make([]bool, len(tag.attrs)),
		parent:   parent,
	}
	if parent != nil {
		if parent.firstChild == nil {
			parent.firstChild = e
		} else {
			parent.lastChild.nextSibling = e
		}
		parent.lastChild = e
	}
	return e, nil
}

func rootName(schema *Schema) string {
	if root := schema.Root(); root != nil {
		return root.Name()
	}
	return "(schema has no root)"
}

// setValue assigns attrValue (still entity-escaped) to the attribute named
// attrName, decoding it first. It fails if attrName is not declared on the
// element's tag, or if a value for it has already been set.
func setValue(e *Element, attrName, attrValue string) error {
	i := e.tag.attrIndex(attrName)
	if i < 0 {
		return newError(KindUnknownAttribute, "tag %q has no attribute %q", e.tag.name, attrName)
	}
	if e.valueSet[i] {
		return newError(KindDuplicateAttribute, "attribute %q set twice on tag %q", attrName, e.tag.name)
	}
	decoded, err := decodeEntities(attrValue)
	if err != nil {
		return err
	}
	e.values[i] = decoded
	e.valueSet[i] = true
	return nil
}

// setContent sets e's content from rawContent (still entity-escaped),
// decoding it first. If e already has content set, this is a no-op: only
// the first contiguous text run before any child is ever kept.
func setContent(e *Element, rawContent string) error {
	if e == nil || e.content != nil {
		return nil
	}
	decoded, err := decodeEntities(rawContent)
	if err != nil {
		return err
	}
	e.content = &decoded
	return nil
}

// Display walks the subtree rooted at e in preorder - depth first,
// left-then-right - invoking each element's tag's display callback. The
// callback's side effects are opaque to the tree; Display only sequences
// the calls.
func (e *Element) Display() error {
	if e == nil {
		return nil
	}
	if err := e.tag.display(e); err != nil {
		return err
	}
	if err := e.firstChild.Display(); err != nil {
		return err
	}
	return e.nextSibling.Display()
}
