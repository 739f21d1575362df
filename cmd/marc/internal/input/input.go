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

// Package input reads record files for the marc commands.
package input

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlnwa/gomarc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrStop can be returned by a Handler to end reading without an error.
var ErrStop = errors.New("stop")

// Handler is called for every decoded record. Position is the byte offset for MRC input
// and the record number for MARCXML input.
type Handler func(position int64, record *gomarc.Record) error

// Options controls how a file is read.
type Options struct {
	// XML forces MARCXML input. Files ending in .xml are always read as MARCXML.
	XML bool
	// Strict makes the first undecodable record end reading with its error.
	Strict bool
}

// Context creates the decoding context from the global configuration.
func Context() (*gomarc.Context, error) {
	return gomarc.ContextFromViper(viper.GetViper())
}

// IsXML reports if fileName is read as MARCXML.
func IsXML(fileName string, opts Options) bool {
	return opts.XML || strings.EqualFold(filepath.Ext(fileName), ".xml")
}

// ReadFile decodes every record in fileName and passes it to fn. It returns the number of records handled.
func ReadFile(ctx *gomarc.Context, fileName string, opts Options, fn Handler) (int, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var count int
	if IsXML(fileName, opts) {
		count, err = readXML(ctx, f, opts, fn)
	} else {
		count, err = readMRC(ctx, f, opts, fn)
	}
	if errors.Is(err, ErrStop) {
		err = nil
	}
	return count, err
}

func readMRC(ctx *gomarc.Context, r io.Reader, opts Options, fn Handler) (int, error) {
	reader := gomarc.NewReader(r)
	count := 0
	for {
		data, offset, err := reader.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		record, err := gomarc.RecordFromBytes(data, ctx)
		if err != nil {
			if opts.Strict {
				return count, err
			}
			log.Errorf("Error: %v, rec num: %d, offset: %d", err, count, offset)
			continue
		}
		count++
		if err := fn(offset, record); err != nil {
			return count, err
		}
	}
}

func readXML(ctx *gomarc.Context, r io.Reader, opts Options, fn Handler) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	records, err := gomarc.ParseXMLCollection(data)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, x := range records {
		record, err := gomarc.RecordFromXML(x, ctx)
		if err != nil {
			if opts.Strict {
				return count, err
			}
			log.Errorf("Error: %v, rec num: %d", err, i)
			continue
		}
		count++
		if err := fn(int64(i), record); err != nil {
			return count, err
		}
	}
	return count, nil
}
