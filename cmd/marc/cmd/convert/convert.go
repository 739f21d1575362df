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

package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nlnwa/gomarc"
	"github.com/nlnwa/gomarc/cmd/marc/internal/input"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	fileName   string
	outputFile string
	to         string
	input      input.Options
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert between MRC and MARCXML",
		Long: `Convert reads a MRC or MARCXML file and writes the records in the other format.

MRC output is the concatenation of the records. MARCXML output is a collection document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			if c.to == "" {
				if input.IsXML(c.fileName, c.input) {
					c.to = "mrc"
				} else {
					c.to = "xml"
				}
			}
			if c.to != "mrc" && c.to != "xml" {
				return fmt.Errorf("unknown output format %v", c.to)
			}
			return runE(c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&c.to, "to", "t", "", "output format, mrc or xml (default is the opposite of the input)")
	cmd.Flags().StringVarP(&c.outputFile, "output", "o", "", "output file (default is stdout)")
	cmd.Flags().BoolVar(&c.input.XML, "xml", false, "read MARCXML even if the file name does not end in .xml")
	cmd.Flags().BoolVarP(&c.input.Strict, "strict", "s", false, "stop at the first record which cannot be decoded")

	return cmd
}

func runE(c *conf, stdout io.Writer) (err error) {
	ctx, err := input.Context()
	if err != nil {
		return err
	}

	out := stdout
	if c.outputFile != "" {
		f, err := os.Create(c.outputFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	w := bufio.NewWriter(out)

	var xmlRecords []*gomarc.XMLRecord
	count, err := input.ReadFile(ctx, c.fileName, c.input, func(_ int64, record *gomarc.Record) error {
		if c.to == "xml" {
			xmlRecords = append(xmlRecords, gomarc.MarshalXMLRecord(record))
			return nil
		}
		data, err := record.Marc()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		return err
	}

	if c.to == "xml" {
		data, err := gomarc.MarshalXMLCollection(xmlRecords)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	log.Infof("Converted %d records", count)
	return w.Flush()
}
