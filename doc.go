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

// Package rum parses Rudimentary Markup (RuM), a restricted, well-formed
// subset of XML 1.0, against a caller-supplied language schema and builds a
// tree of typed elements.
//
// A caller first builds a Schema by inserting Tags, each naming its allowed
// attributes, whether it is empty, and a display callback. Parse then
// consumes an io.Reader one byte at a time, validating every open tag
// against its parent's allowed children, and returns the root Element of the
// resulting document tree.
//
// Unlike encoding/xml, this package never hands back a stream of tokens:
// there is no SAX-style callback API. Parse either returns a fully built
// tree or an error; nothing is exposed mid-parse.
package rum
