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

package rum_test

import (
	"fmt"
	"strings"

	"github.com/rumlang/rum"
)

// buildCabinetSchema is the sample language used throughout these examples:
// a cabinet of shelves holding bottles (optionally aged) and empty glasses.
func buildCabinetSchema() *rum.Schema {
	schema := rum.NewSchema()

	cabinet, _ := schema.InsertTag(nil, "cabinet", false, nil, func(e *rum.Element) error {
		fmt.Println("cabinet:")
		return nil
	})

	shelf, _ := schema.InsertTag(cabinet, "shelf", false,
		[]rum.AttrSpec{{Name: "id", Required: true}},
		func(e *rum.Element) error {
			id, _ := e.Value("id")
			fmt.Printf("  shelf %s:\n", id)
			return nil
		},
	)

	schema.InsertTag(shelf, "bottle", false,
		[]rum.AttrSpec{
			{Name: "type", Required: true},
			{Name: "aged", Required: false},
		},
		func(e *rum.Element) error {
			typ, _ := e.Value("type")
			aged, ok := e.Value("aged")
			if !ok {
				aged = "no"
			}
			fmt.Printf("    bottle of %s, aged: %s\n", typ, aged)
			return nil
		},
	)

	schema.InsertTag(shelf, "glass", true,
		[]rum.AttrSpec{{Name: "type", Required: true}},
		func(e *rum.Element) error {
			typ, _ := e.Value("type")
			fmt.Printf("    glass of %s\n", typ)
			return nil
		},
	)

	return schema
}

func Example_parseAndDisplay() {
	schema := buildCabinetSchema()
	input := `<cabinet>` +
		`<shelf id='1'>` +
		`<bottle type='rum' aged='12'></bottle>` +
		`<glass type='tumbler'/>` +
		`</shelf>` +
		`</cabinet>`

	root, err := rum.Parse(strings.NewReader(input), schema)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}
	if err := root.Display(); err != nil {
		fmt.Println("display error:", err)
	}

	// Output:
	// cabinet:
	//   shelf 1:
	//     bottle of rum, aged: 12
	//     glass of tumbler
}

func Example_parseError() {
	schema := buildCabinetSchema()
	_, err := rum.Parse(strings.NewReader(`<pantry></pantry>`), schema)
	fmt.Println(err)

	// Output:
	// rum: RootMismatch: root element must be "cabinet", found "pantry"
}

func Example_schemaDisplay() {
	schema := buildCabinetSchema()
	schema.Display(stdoutWriter{})

	// Output:
	// The schema consists of these tags and attributes:
	// TAG cabinet (nonempty)
	//    TAG shelf (nonempty)
	//    ATTR id (required)
	//       TAG bottle (nonempty)
	//       ATTR type (required)
	//       ATTR aged (optional)
	//       TAG glass (empty)
	//       ATTR type (required)
}

type stdoutWriter struct{}

func (stdoutWriter) Write(p []byte) (int, error) {
	fmt.Print(string(p))
	return len(p), nil
}
