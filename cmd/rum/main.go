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

// Command rum parses a Rudimentary Markup document against a small built-in
// schema (a cabinet of shelves holding bottles and glasses) and prints it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rumlang/rum"
)

// displayOut is where the sample language's display callbacks write. The
// root command points it at its own output writer before displaying a tree.
var displayOut io.Writer = os.Stdout

// cabinetSchema builds the sample language: a cabinet holds shelves, each
// shelf holds bottles (which may be aged) and empty glasses.
func cabinetSchema() (*rum.Schema, error) {
	schema := rum.NewSchema()

	cabinet, err := schema.InsertTag(nil, "cabinet", false, nil, func(e *rum.Element) error {
		fmt.Fprintln(displayOut, "cabinet:")
		return nil
	})
	if err != nil {
		return nil, err
	}

	shelf, err := schema.InsertTag(cabinet, "shelf", false,
		[]rum.AttrSpec{{Name: "id", Required: true}},
		func(e *rum.Element) error {
			id, _ := e.Value("id")
			fmt.Fprintf(displayOut, "  shelf %s:\n", id)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	_, err = schema.InsertTag(shelf, "bottle", false,
		[]rum.AttrSpec{
			{Name: "type", Required: true},
			{Name: "aged", Required: false},
			{Name: "vintage", Required: false},
		},
		func(e *rum.Element) error {
			typ, _ := e.Value("type")
			aged, ok := e.Value("aged")
			if !ok {
				aged = "no"
			}
			fmt.Fprintf(displayOut, "    bottle of %s, aged: %s\n", typ, aged)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	_, err = schema.InsertTag(shelf, "glass", true,
		[]rum.AttrSpec{{Name: "type", Required: true}},
		func(e *rum.Element) error {
			typ, _ := e.Value("type")
			fmt.Fprintf(displayOut, "    glass of %s\n", typ)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return schema, nil
}

func newRootCmd() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:           "rum [file]",
		Short:         "Parse a Rudimentary Markup document against the built-in cabinet schema",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := cabinetSchema()
			if err != nil {
				return err
			}
			if debug {
				return schema.Display(cmd.OutOrStdout())
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()

			root, err := rum.Parse(in, schema,
				rum.WithLogger(logger),
				rum.WithDiagnostics(cmd.ErrOrStderr()),
			)
			if err != nil {
				return err
			}
			displayOut = cmd.OutOrStdout()
			return root.Display()
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "print the schema instead of parsing input")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
