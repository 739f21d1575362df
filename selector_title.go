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

type TitleRelatedSelector struct {
	selection FieldSelection
}

// TitleRelated returns a selector for the record's title fields.
func (r *Record) TitleRelated() TitleRelatedSelector {
	return TitleRelatedSelector{selection: r.Fields()}
}

func (t TitleRelatedSelector) TitleStatement() TitleStatementSelector {
	return TitleStatementSelector{selection: t.selection}
}

// TitleStatementSelector reads the first title statement (245).
type TitleStatementSelector struct {
	selection FieldSelection
}

func (t TitleStatementSelector) Title() (string, bool) {
	return t.selection.FirstValue(TitleSelector)
}

func (t TitleStatementSelector) Subtitle() (string, bool) {
	return t.selection.FirstValue(SubtitleSelector)
}
