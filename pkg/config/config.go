// Package config loads the project configuration that drives source
// generation: project authors and copyright, library name and
// description, and the list of exported types.
//
// The native configuration format is an INI file whose values are
// JSON-encoded literals, so both strings and lists can be expressed:
//
//	[Project]
//	authors: ["Joachim Metz <joachim.metz@gmail.com>"]
//	copyright: "2014-2024"
//
//	[Library]
//	name: "libfoo"
//	description: "Library to support the foo format"
//	exported_types: ["file", "handle"]
//
// A TOML file carrying the same sections and keys is accepted as well,
// selected by the .toml file extension.
package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/yalgen/yalgen/pkg/errors"
)

// ProjectConfiguration holds the loaded project configuration. It is
// populated once by Load and never mutated afterwards.
type ProjectConfiguration struct {
	// Authors lists the project authors in declaration order.
	Authors []string

	// Copyright is the copyright string, e.g. "2014-2024".
	Copyright string

	// LibraryName is the identifier-safe library name, e.g. "libfoo".
	LibraryName string

	// LibraryDescription is the one-line library description.
	LibraryDescription string

	// ExportedTypes lists the exported type names in declaration order.
	ExportedTypes []string
}

// Load reads a project configuration from the given path. Files with a
// .toml extension are parsed as TOML; everything else is parsed as an
// INI file with JSON-encoded values.
func Load(fs afero.Fs, path string) (*ProjectConfiguration, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read configuration file %q", path)
	}

	var cfg *ProjectConfiguration
	if filepath.Ext(path) == ".toml" {
		cfg, err = parseTOML(data)
	} else {
		cfg, err = parseINI(data)
	}
	if err != nil {
		return nil, err
	}

	if cfg.LibraryName == "" {
		return nil, errors.New(errors.ErrConfigParse,
			"library name must not be empty")
	}
	return cfg, nil
}

// TemplateMappings derives the flat string-to-string mapping used for
// template substitution. It is pure: repeated calls on the same
// configuration yield identical mappings.
func (c *ProjectConfiguration) TemplateMappings() map[string]string {
	return map[string]string{
		"authors":   strings.Join(c.Authors, ", "),
		"copyright": c.Copyright,

		"library_name":            c.LibraryName,
		"library_name_upper_case": strings.ToUpper(c.LibraryName),
		"library_description":     c.LibraryDescription,
	}
}

func parseINI(data []byte) (*ProjectConfiguration, error) {
	// The values are JSON literals, so surrounding quotes and inline
	// comment characters are significant.
	file, err := ini.LoadSources(ini.LoadOptions{
		PreserveSurroundedQuote: true,
		IgnoreInlineComment:     true,
	}, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse,
			"failed to parse configuration")
	}

	cfg := &ProjectConfiguration{}
	if err := iniValue(file, "Project", "authors", &cfg.Authors); err != nil {
		return nil, err
	}
	if err := iniValue(file, "Project", "copyright", &cfg.Copyright); err != nil {
		return nil, err
	}
	if err := iniValue(file, "Library", "name", &cfg.LibraryName); err != nil {
		return nil, err
	}
	if err := iniValue(file, "Library", "description", &cfg.LibraryDescription); err != nil {
		return nil, err
	}
	if err := iniValue(file, "Library", "exported_types", &cfg.ExportedTypes); err != nil {
		return nil, err
	}
	return cfg, nil
}

// iniValue decodes one JSON-encoded configuration value into target.
func iniValue(file *ini.File, sectionName, keyName string, target interface{}) error {
	section, err := file.GetSection(sectionName)
	if err != nil {
		return errors.Newf(errors.ErrConfigMissingKey,
			"missing configuration section %q", sectionName)
	}
	if !section.HasKey(keyName) {
		return errors.Newf(errors.ErrConfigMissingKey,
			"missing configuration key %q in section %q", keyName, sectionName)
	}

	raw := section.Key(keyName).Value()
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse,
			"malformed value for %s.%s", sectionName, keyName).
			WithDetail("value", raw)
	}
	return nil
}

func parseTOML(data []byte) (*ProjectConfiguration, error) {
	var doc struct {
		Project struct {
			Authors   []string `toml:"authors"`
			Copyright string   `toml:"copyright"`
		} `toml:"Project"`
		Library struct {
			Name          string   `toml:"name"`
			Description   string   `toml:"description"`
			ExportedTypes []string `toml:"exported_types"`
		} `toml:"Library"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse,
			"failed to parse configuration")
	}

	if doc.Project.Authors == nil {
		return nil, errors.New(errors.ErrConfigMissingKey,
			`missing configuration key "authors" in section "Project"`)
	}
	if doc.Project.Copyright == "" {
		return nil, errors.New(errors.ErrConfigMissingKey,
			`missing configuration key "copyright" in section "Project"`)
	}
	if doc.Library.Name == "" {
		return nil, errors.New(errors.ErrConfigMissingKey,
			`missing configuration key "name" in section "Library"`)
	}
	if doc.Library.Description == "" {
		return nil, errors.New(errors.ErrConfigMissingKey,
			`missing configuration key "description" in section "Library"`)
	}
	if doc.Library.ExportedTypes == nil {
		return nil, errors.New(errors.ErrConfigMissingKey,
			`missing configuration key "exported_types" in section "Library"`)
	}

	return &ProjectConfiguration{
		Authors:            doc.Project.Authors,
		Copyright:          doc.Project.Copyright,
		LibraryName:        doc.Library.Name,
		LibraryDescription: doc.Library.Description,
		ExportedTypes:      doc.Library.ExportedTypes,
	}, nil
}
