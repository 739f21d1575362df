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

package ls

import (
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
	fileName    string
	recordCount int
	barcode     string
	input       input.Options
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "ls FILE",
		Short: "List the records in a MRC or MARCXML file",
		Long: `List prints one line per record: its offset (or number for MARCXML), control number,
ISBN or ISSN and title.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			return runE(c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to show")
	cmd.Flags().StringVar(&c.barcode, "barcode", "", "only show records with an issue with this barcode")
	cmd.Flags().BoolVar(&c.input.XML, "xml", false, "read MARCXML even if the file name does not end in .xml")
	cmd.Flags().BoolVarP(&c.input.Strict, "strict", "s", false, "stop at the first record which cannot be decoded")

	return cmd
}

func runE(c *conf, out io.Writer) error {
	ctx, err := input.Context()
	if err != nil {
		return err
	}

	shown := 0
	count, err := input.ReadFile(ctx, c.fileName, c.input, func(position int64, record *gomarc.Record) error {
		if c.barcode != "" {
			if _, ok := record.Issues().FindByBarcode(c.barcode); !ok {
				return nil
			}
		}
		printRecord(out, position, record)
		shown++
		if c.recordCount > 0 && shown >= c.recordCount {
			return input.ErrStop
		}
		return nil
	})
	log.Infof("Count: %d", count)
	return err
}

func printRecord(out io.Writer, position int64, record *gomarc.Record) {
	controlNumber := record.ControlFields().ControlNumber()
	title, _ := record.TitleRelated().TitleStatement().Title()
	isxn := record.NumbersAndCodes().Isxn()
	var first string
	if len(isxn) > 0 {
		first = isxn[0]
	}
	if _, err := fmt.Fprintf(out, "%v\t%s\t%s\t%s\n", position, controlNumber, first, title); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
