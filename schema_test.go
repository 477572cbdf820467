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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopDisplay(*Element) error { return nil }

func TestSchemaInsertRoot(t *testing.T) {
	s := NewSchema()
	root, err := s.InsertTag(nil, "cabinet", false, nil, noopDisplay)
	require.NoError(t, err)
	assert.Same(t, root, s.Root())
	assert.Equal(t, "cabinet", root.Name())
	assert.False(t, root.IsEmpty())
	assert.Nil(t, root.Parent())
}

func TestSchemaInsertSecondRootFails(t *testing.T) {
	s := NewSchema()
	_, err := s.InsertTag(nil, "cabinet", false, nil, noopDisplay)
	require.NoError(t, err)

	_, err = s.InsertTag(nil, "other", false, nil, noopDisplay)
	require.Error(t, err)
	var rumErr *Error
	require.True(t, errors.As(err, &rumErr))
	assert.Equal(t, KindParserMisconfigured, rumErr.Kind)
}

func TestSchemaDuplicateSiblingNameFails(t *testing.T) {
	s := NewSchema()
	root, _ := s.InsertTag(nil, "cabinet", false, nil, noopDisplay)
	_, err := s.InsertTag(root, "shelf", false, nil, noopDisplay)
	require.NoError(t, err)

	_, err = s.InsertTag(root, "shelf", false, nil, noopDisplay)
	require.Error(t, err)
	var rumErr *Error
	require.True(t, errors.As(err, &rumErr))
	assert.Equal(t, KindParserMisconfigured, rumErr.Kind)
}

func TestSchemaCannotExtendEmptyTag(t *testing.T) {
	s := NewSchema()
	root, _ := s.InsertTag(nil, "cabinet", false, nil, noopDisplay)
	glass, err := s.InsertTag(root, "glass", true, nil, noopDisplay)
	require.NoError(t, err)

	_, err = s.InsertTag(glass, "child", false, nil, noopDisplay)
	require.Error(t, err)
	var rumErr *Error
	require.True(t, errors.As(err, &rumErr))
	assert.Equal(t, KindCannotExtendEmptyTag, rumErr.Kind)
}

func TestSchemaFindChildIsDepthOne(t *testing.T) {
	s := NewSchema()
	root, _ := s.InsertTag(nil, "cabinet", false, nil, noopDisplay)
	shelf, _ := s.InsertTag(root, "shelf", false, nil, noopDisplay)
	bottle, _ := s.InsertTag(shelf, "bottle", false, nil, noopDisplay)

	got, ok := root.FindChild("shelf")
	require.True(t, ok)
	assert.Same(t, shelf, got)

	// bottle is a grandchild of root, not a direct child: must not be found.
	_, ok = root.FindChild("bottle")
	assert.False(t, ok)

	got, ok = shelf.FindChild("bottle")
	require.True(t, ok)
	assert.Same(t, bottle, got)
}

func TestSchemaFrozenAfterParse(t *testing.T) {
	s := NewSchema()
	root, _ := s.InsertTag(nil, "glass", true, nil, noopDisplay)
	_ = root

	_, err := Parse(bytes.NewBufferString("<glass/>"), s)
	require.NoError(t, err)

	_, err = s.InsertTag(nil, "other", false, nil, noopDisplay)
	require.Error(t, err)
	var rumErr *Error
	require.True(t, errors.As(err, &rumErr))
	assert.Equal(t, KindParserMisconfigured, rumErr.Kind)
}

func TestSchemaDisplay(t *testing.T) {
	s := NewSchema()
	root, _ := s.InsertTag(nil, "cabinet", false, nil, noopDisplay)
	_, _ = s.InsertTag(root, "shelf", false,
		[]AttrSpec{{Name: "id", Required: true}}, noopDisplay)

	var buf bytes.Buffer
	require.NoError(t, s.Display(&buf))
	out := buf.String()
	assert.Contains(t, out, "cabinet")
	assert.Contains(t, out, "shelf")
	assert.Contains(t, out, "id")
}

func TestSchemaDisplayUndefined(t *testing.T) {
	s := NewSchema()
	var buf bytes.Buffer
	require.NoError(t, s.Display(&buf))
	assert.Contains(t, buf.String(), "undefined")
}
