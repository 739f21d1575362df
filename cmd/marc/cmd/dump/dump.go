/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nlnwa/gomarc"
	"github.com/nlnwa/gomarc/cmd/marc/internal/input"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat struct {
	name string
}

func (f *outputFormat) String() string {
	if f.name == "" {
		return "json"
	}
	return f.name
}

func (f *outputFormat) Set(name string) error {
	switch name {
	case "json", "yaml":
		f.name = name
	default:
		return fmt.Errorf("unknown format %v", name)
	}
	return nil
}

func (f *outputFormat) Type() string {
	return "format"
}

type encoder interface {
	Encode(v interface{}) error
}

type conf struct {
	fileName    string
	format      outputFormat
	sections    bool
	recordCount int
	input       input.Options
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "dump FILE",
		Short: "Print records in their structured form",
		Long: `Dump decodes every record in a MRC or MARCXML file and prints it as JSON or YAML.

With --sections the named view produced by the field mapping is printed instead of the raw tags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			return runE(c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().VarP(&c.format, "format", "f", "output format (json or yaml)")
	cmd.Flags().BoolVar(&c.sections, "sections", false, "print the named sections view")
	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to print")
	cmd.Flags().BoolVar(&c.input.XML, "xml", false, "read MARCXML even if the file name does not end in .xml")
	cmd.Flags().BoolVarP(&c.input.Strict, "strict", "s", false, "stop at the first record which cannot be decoded")

	return cmd
}

func newEncoder(format string, out io.Writer) encoder {
	if format == "yaml" {
		e := yaml.NewEncoder(out)
		e.SetIndent(2)
		return e
	}
	e := json.NewEncoder(out)
	e.SetIndent("", "  ")
	return e
}

func runE(c *conf, out io.Writer) error {
	ctx, err := input.Context()
	if err != nil {
		return err
	}

	enc := newEncoder(c.format.String(), out)
	if closer, ok := enc.(io.Closer); ok {
		defer closer.Close()
	}

	printed := 0
	count, err := input.ReadFile(ctx, c.fileName, c.input, func(_ int64, record *gomarc.Record) error {
		var v interface{} = record.Structured()
		if c.sections {
			v = record.Sections()
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
		printed++
		if c.recordCount > 0 && printed >= c.recordCount {
			return input.ErrStop
		}
		return nil
	})
	log.Infof("Count: %d", count)
	return err
}
