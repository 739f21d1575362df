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

package gomarc

import (
	"bufio"
	"errors"
	"io"

	"github.com/nlnwa/gomarc/internal/countingreader"
	log "github.com/sirupsen/logrus"
)

const recordLengthDigits = 5

// Reader splits a stream of concatenated MRC records using the record length in each leader.
// Line breaks between records are skipped.
type Reader struct {
	counter  *countingreader.Reader
	buffered *bufio.Reader
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	c := countingreader.New(r, 0)
	return &Reader{counter: c, buffered: bufio.NewReaderSize(c, 64*1024)}
}

// Next returns the raw bytes of the next record and its offset in the stream.
// At the end of the stream it returns io.EOF.
func (r *Reader) Next() ([]byte, int64, error) {
	if err := r.skipLineBreaks(); err != nil {
		return nil, r.offset(), err
	}
	offset := r.offset()

	head := make([]byte, recordLengthDigits)
	if n, err := io.ReadFull(r.buffered, head); err != nil {
		if err == io.EOF {
			return nil, offset, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, offset, newFormatErrorf("truncated record at offset %d: got %d bytes", offset, n)
		}
		return nil, offset, err
	}

	length, err := parseLeaderNumber(string(head))
	if err != nil {
		return nil, offset, newWrappedFormatError("invalid record length", err)
	}
	if length <= LeaderLength {
		return nil, offset, newFormatErrorf("record length %d at offset %d is shorter than a leader", length, offset)
	}

	data := make([]byte, length)
	copy(data, head)
	if _, err := io.ReadFull(r.buffered, data[recordLengthDigits:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || err == io.EOF {
			return nil, offset, newFormatErrorf("truncated record at offset %d: expected %d bytes", offset, length)
		}
		return nil, offset, err
	}
	if data[length-1] != RecordTerminator {
		return nil, offset, newFormatErrorf("record at offset %d does not end with a record terminator", offset)
	}
	log.Debugf("read record of %d bytes at offset %d", length, offset)
	return data, offset, nil
}

func (r *Reader) skipLineBreaks() error {
	for {
		b, err := r.buffered.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if b != '\n' && b != '\r' {
			return r.buffered.UnreadByte()
		}
	}
}

func (r *Reader) offset() int64 {
	return r.counter.Position(r.buffered.Buffered())
}
