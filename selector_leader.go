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

import "strings"

// LeaderSelector gives named access to the leader. Character positions are returned trimmed,
// so a blank position is "".
type LeaderSelector struct {
	leader *Leader
}

// Leader returns a selector for the record's leader.
func (r *Record) Leader() LeaderSelector {
	return LeaderSelector{leader: r.leader}
}

func (l LeaderSelector) RecordLength() int { return l.leader.RecordLength }

func (l LeaderSelector) RecordStatus() string { return strings.TrimSpace(l.leader.RecordStatus) }

func (l LeaderSelector) TypeOfRecord() string { return strings.TrimSpace(l.leader.TypeOfRecord) }

func (l LeaderSelector) BibliographicLevel() string {
	return strings.TrimSpace(l.leader.BibliographicLevel)
}

func (l LeaderSelector) ControlType() string { return strings.TrimSpace(l.leader.ControlType) }

func (l LeaderSelector) CharacterEncodingScheme() string {
	return strings.TrimSpace(l.leader.CharacterEncodingScheme)
}

func (l LeaderSelector) BaseAddressOfData() int { return l.leader.BaseAddressOfData }

func (l LeaderSelector) EncodingLevel() string { return strings.TrimSpace(l.leader.EncodingLevel) }

func (l LeaderSelector) CatalogingForm() string { return strings.TrimSpace(l.leader.CatalogingForm) }

func (l LeaderSelector) MultipartResourceRecordLevel() string {
	return strings.TrimSpace(l.leader.MultipartResourceRecordLevel)
}

func (l LeaderSelector) EntryMap() string { return strings.TrimSpace(l.leader.EntryMap) }

// Parsed returns a copy of the decoded leader.
func (l LeaderSelector) Parsed() Leader {
	return *l.leader
}
