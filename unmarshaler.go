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
	log "github.com/sirupsen/logrus"
)

// Unmarshaler decodes a MARC21 (ISO 2709) record.
type Unmarshaler interface {
	Unmarshal(data []byte) (*Structured, error)
}

type unmarshaler struct {
	ctx *Context
}

// NewUnmarshaler creates an Unmarshaler. A nil ctx means DefaultContext().
func NewUnmarshaler(ctx *Context) Unmarshaler {
	return &unmarshaler{ctx: contextOrDefault(ctx)}
}

// Unmarshal decodes one record in a single pass: leader, directory and then the fields in directory order.
func (u *unmarshaler) Unmarshal(data []byte) (*Structured, error) {
	leader, err := ParseLeader(data)
	if err != nil {
		return nil, err
	}

	base := leader.BaseAddressOfData
	if base <= LeaderLength || base > len(data) {
		return nil, newFormatErrorf("base address of data %d is outside the record (length %d)", base, len(data))
	}
	entries, err := ParseDirectory(data[LeaderLength : base-1])
	if err != nil {
		return nil, err
	}
	if data[base-1] != FieldTerminator {
		log.Debugf("directory is not terminated by a field terminator")
	}
	if leader.RecordLength != len(data) {
		log.Debugf("leader record length %d differs from actual length %d", leader.RecordLength, len(data))
	}

	d := newFieldDecoder(u.ctx)
	for i, entry := range entries {
		if entry.Length < 1 || entry.Offset < 0 || base+entry.Offset+entry.Length > len(data) {
			return nil, newFormatErrorf("directory entry %d (%s) with length %d and offset %d is outside the record",
				i, entry.Tag, entry.Length, entry.Offset)
		}

		tag, code, ok, err := d.resolveTag(entry.Tag)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		start := base + entry.Offset
		raw := data[start : start+entry.Length-1]

		if code != "" {
			d.addAliased(tag, code, u.ctx.codec.decode(raw))
			continue
		}
		d.add(tag, raw)
	}

	s, err := d.finish()
	if err != nil {
		return nil, err
	}
	s.Leader = string(data[:LeaderLength])
	s.Marc = append([]byte(nil), data...)
	return s, nil
}
