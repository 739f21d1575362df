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
	"path/filepath"

	"github.com/spf13/viper"
)

// Configuration keys understood by LoadContext.
const (
	ConfMapping            = "mapping"
	ConfMappingFile        = "mapping_file"
	ConfTagAliases         = "tag_aliases"
	ConfSkipTags           = "skip_tags"
	ConfIssueMapping       = "issue_mapping"
	ConfLocalFields        = "local_fields"
	ConfMandatoryFields    = "mandatory_fields"
	ConfIgnoreUnknownTags  = "ignore_unknown_tags"
	ConfDropUnmappedFields = "drop_unmapped_fields"
	ConfEncoding           = "encoding"
)

// TagAliasConfig is one entry of the tag_aliases list. Target is "skip", "NNN" or "NNN$c".
//
// Aliases are a list since raw tags like "FMT" are case sensitive and map keys are not.
type TagAliasConfig struct {
	Tag    string `mapstructure:"tag"`
	Target string `mapstructure:"target"`
}

// ContextConfig is the file representation of a Context.
// Tags used as map keys must be quoted in YAML, otherwise a tag like 015 is read as a number.
type ContextConfig struct {
	Mapping            MappingTable                 `mapstructure:"mapping"`
	MappingFile        string                       `mapstructure:"mapping_file"`
	TagAliases         []TagAliasConfig             `mapstructure:"tag_aliases"`
	SkipTags           []string                     `mapstructure:"skip_tags"`
	IssueMapping       IssueMapping                 `mapstructure:"issue_mapping"`
	LocalFields        map[string]LocalFieldMapping `mapstructure:"local_fields"`
	MandatoryFields    []string                     `mapstructure:"mandatory_fields"`
	IgnoreUnknownTags  bool                         `mapstructure:"ignore_unknown_tags"`
	DropUnmappedFields bool                         `mapstructure:"drop_unmapped_fields"`
	Encoding           string                       `mapstructure:"encoding"`
}

// LoadContext reads a configuration file (YAML, JSON or TOML) and creates a Context from it.
// Keys not present in the file keep their defaults. Extra options are applied last.
func LoadContext(path string, opts ...Option) (*Context, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return ContextFromViper(v, opts...)
}

// ContextFromViper creates a Context from the configuration held by v.
// A relative mapping_file is resolved against the directory of the config file in use.
func ContextFromViper(v *viper.Viper, opts ...Option) (*Context, error) {
	cfg := &ContextConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, newWrappedFormatError("invalid configuration", err)
	}

	var options []Option
	if v.IsSet(ConfMappingFile) && cfg.MappingFile != "" {
		path := cfg.MappingFile
		if !filepath.IsAbs(path) && v.ConfigFileUsed() != "" {
			path = filepath.Join(filepath.Dir(v.ConfigFileUsed()), path)
		}
		table, err := LoadMappingTable(path)
		if err != nil {
			return nil, err
		}
		options = append(options, WithMappingTable(table))
	}
	if v.IsSet(ConfMapping) {
		options = append(options, WithMappingTable(cfg.Mapping))
	}
	if v.IsSet(ConfTagAliases) {
		aliases := make(map[string]TagAlias, len(cfg.TagAliases))
		for _, a := range cfg.TagAliases {
			if a.Tag == "" {
				return nil, newMappingErrorf("", "tag alias without tag")
			}
			alias, err := ParseTagAlias(a.Target)
			if err != nil {
				return nil, err
			}
			aliases[a.Tag] = alias
		}
		options = append(options, WithTagAliases(aliases))
	}
	if v.IsSet(ConfSkipTags) {
		options = append(options, WithSkipTags(cfg.SkipTags...))
	}
	if v.IsSet(ConfIssueMapping) {
		options = append(options, WithIssueMapping(cfg.IssueMapping))
	}
	if v.IsSet(ConfLocalFields) {
		options = append(options, WithLocalFields(cfg.LocalFields))
	}
	if v.IsSet(ConfMandatoryFields) {
		options = append(options, WithMandatoryFields(cfg.MandatoryFields...))
	}
	if v.IsSet(ConfIgnoreUnknownTags) {
		options = append(options, WithIgnoreUnknownTags(cfg.IgnoreUnknownTags))
	}
	if v.IsSet(ConfDropUnmappedFields) {
		options = append(options, WithDropUnmappedFields(cfg.DropUnmappedFields))
	}
	if v.IsSet(ConfEncoding) {
		options = append(options, WithEncoding(cfg.Encoding))
	}

	return NewContext(append(options, opts...)...)
}

// LoadMappingTable reads a mapping table from a file. The top level keys are tags.
func LoadMappingTable(path string) (MappingTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	table := MappingTable{}
	if err := v.Unmarshal(&table); err != nil {
		return nil, newWrappedFormatError("invalid mapping table", err)
	}
	if _, err := NewMapper(table); err != nil {
		return nil, err
	}
	return table, nil
}
