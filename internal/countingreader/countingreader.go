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

// Package countingreader tracks stream positions for readers that buffer their input.
package countingreader

import (
	"io"
)

// Reader counts the bytes pulled from the underlying reader.
type Reader struct {
	r    io.Reader
	n    int64
	base int64
}

// New returns a Reader positioned at offset base of the underlying stream.
func New(r io.Reader, base int64) *Reader {
	return &Reader{r: r, base: base}
}

func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// N returns the number of bytes read so far.
func (c *Reader) N() int64 {
	return c.n
}

// Position returns the stream offset of the next byte a consumer will see,
// given the number of bytes it still holds in its own buffer.
func (c *Reader) Position(buffered int) int64 {
	return c.base + c.n - int64(buffered)
}
