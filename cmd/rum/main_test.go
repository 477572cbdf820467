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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCabinetSchemaShape(t *testing.T) {
	schema, err := cabinetSchema()
	require.NoError(t, err)
	require.NotNil(t, schema.Root())
	assert.Equal(t, "cabinet", schema.Root().Name())

	shelf, ok := schema.Root().FindChild("shelf")
	require.True(t, ok)
	bottle, ok := shelf.FindChild("bottle")
	require.True(t, ok)
	assert.False(t, bottle.IsEmpty())
	glass, ok := shelf.FindChild("glass")
	require.True(t, ok)
	assert.True(t, glass.IsEmpty())
}

func TestRootCmdParsesStdin(t *testing.T) {
	cmd := newRootCmd()
	input := `<cabinet><shelf id='1'><glass type='tumbler'/></shelf></cabinet>`
	cmd.SetIn(strings.NewReader(input))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "cabinet:")
	assert.Contains(t, out.String(), "glass of tumbler")
}

func TestRootCmdDebugPrintsSchema(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--debug"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "TAG cabinet")
}

func TestRootCmdRejectsTooManyArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"one", "two"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestRootCmdPropagatesParseError(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(`<pantry></pantry>`))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	err := cmd.Execute()
	assert.Error(t, err)
}
