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

// validateRecord checks the leader, the mandatory fields and the shape of every field.
func validateRecord(r *Record) error {
	if len(r.leaderText) != LeaderLength {
		return newFormatErrorf("invalid leader length: %d (expected %d)", len(r.leaderText), LeaderLength)
	}
	leader, err := ParseLeader([]byte(r.leaderText))
	if err != nil {
		return err
	}
	r.leader = leader

	if missing := r.ctx.missingMandatory(r.fixed, r.variable); len(missing) > 0 {
		return newMissingMandatoryFieldError(missing)
	}

	var errs multiErr
	mapper := r.ctx.Mapper()
	for _, tag := range r.fixed.Tags() {
		if !IsValidTag(tag) {
			errs = append(errs, newValidationError(tag, "tag must be three digits"))
			continue
		}
		if mapper.Kind(tag) != FixedKind {
			errs = append(errs, newValidationError(tag, "variable field stored as fixed field"))
		}
	}
	for _, tag := range r.variable.Tags() {
		if !IsValidTag(tag) {
			errs = append(errs, newValidationError(tag, "tag must be three digits"))
			continue
		}
		if mapper.Kind(tag) != VariableKind {
			errs = append(errs, newValidationError(tag, "fixed field stored as variable field"))
		}
		for i, vf := range r.variable[tag] {
			if vf == nil {
				errs = append(errs, newValidationErrorf(tag, "instance %d is empty", i))
				continue
			}
			for _, ind := range []string{vf.Ind1, vf.Ind2} {
				if !IsValidIndicator(ind) {
					errs = append(errs, newValidationErrorf(tag, "invalid indicator '%s'", ind))
				}
			}
			for code := range vf.Subfields {
				if !IsValidSubfieldCode(code) {
					errs = append(errs, newValidationErrorf(tag, "invalid subfield code '%s'", code))
				}
			}
		}
	}
	return errs.errOrNil()
}
