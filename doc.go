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

/*
Package gomarc allows parsing, creating and validating MARC21 bibliographic records.

# MARC21

A MARC21 record in its binary form (MRC, ISO 2709) is a 24 byte leader, a directory of 12 byte
entries locating every field, and the fields themselves. Fields with tags below 010 are control
fields holding a single value. All other fields are data fields with two indicators and a list of
subfields. MARCXML (http://www.loc.gov/MARC21/slim) carries the same content as XML.

To learn more about MARC21, read the format documentation at https://www.loc.gov/marc/bibliographic/

# Decoding

Records are created with [RecordFromBytes], [RecordFromXML], [RecordFromStructured] or [RecordFromJSON].
Every record is validated when created and never changes afterwards. The lower level [Unmarshaler]
and [XMLUnmarshaler] produce the plain [Structured] form.

A [Reader] splits a stream of concatenated MRC records.

# Context

How tags are interpreted is controlled by a [Context] created with [NewContext] and options like
[WithTagAlias], [WithMandatoryFields] or [WithMappingTable]. A Context can also be read from a
configuration file with [LoadContext]. A nil Context means [DefaultContext].

# Selectors

Fields are read through typed selectors like [Record.TitleRelated], [Record.NumbersAndCodes] and
[Record.Issues], or generically through [Record.Fields]. A missing field gives an empty result,
never an error. [Record.Sections] returns the named view defined by the mapping table.

# Encoding

The [Marshaler] encodes records as MARC21 and [MarshalXMLRecord] converts them to MARCXML.
*/
package gomarc
