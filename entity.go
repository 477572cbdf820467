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

import "strings"

// predefinedEntities are the only entity references RuM understands.
// Numeric character references (e.g. &#65;) are deliberately unsupported.
var predefinedEntities = map[string]byte{
	"&lt;":   '<',
	"&gt;":   '>',
	"&amp;":  '&',
	"&apos;": '\'',
	"&quot;": '"',
}

// decodeEntities translates the five predefined XML entity references in
// raw into their characters and rejects bare '<' or malformed '&' escapes.
//
// raw is attribute-value or element-content text as accumulated by the
// parser, still containing entity references; the returned string is plain
// text ready to hand to the caller.
func decodeEntities(raw string) (string, error) {
	var out strings.Builder
	out.Grow(len(raw))

	anchor := -1
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '<':
			return "", newError(KindLessThanInText, "'<' not allowed in text")
		case '&':
			if anchor >= 0 {
				return "", newError(KindNestedAmpersand, "'&' found before previous entity reference was terminated")
			}
			anchor = i
		case ';':
			if anchor >= 0 {
				ch, ok := predefinedEntities[raw[anchor:i+1]]
				if !ok {
					return "", newError(KindUnknownEntity, "unknown entity reference %q", raw[anchor:i+1])
				}
				out.WriteByte(ch)
				anchor = -1
				continue
			}
		}
		if anchor < 0 {
			out.WriteByte(c)
		}
	}
	if anchor >= 0 {
		return "", newError(KindUnterminatedEntity, "'&' not terminated by ';'")
	}
	return out.String(), nil
}
