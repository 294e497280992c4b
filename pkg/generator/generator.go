// Package generator drives source generation: each generator reads
// template files, substitutes project mappings into them and hands the
// rendered sections to an output writer.
package generator

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/yalgen/yalgen/pkg/config"
	"github.com/yalgen/yalgen/pkg/errors"
	"github.com/yalgen/yalgen/pkg/template"
	"github.com/yalgen/yalgen/pkg/writer"
)

// Generator produces one family of output files from template assets.
type Generator interface {
	Generate(cfg *config.ProjectConfiguration, out writer.OutputWriter) error
}

// sourceFileGenerator carries what every generator needs: where the
// templates live, where the project sources live, and how to render
// one template into one output section.
type sourceFileGenerator struct {
	fs          afero.Fs
	projectsDir string
	templateDir string
	logger      zerolog.Logger
}

// generateSection renders a single template file with the given
// mappings and writes the result as one section of the output file.
func (g *sourceFileGenerator) generateSection(
	templateName string,
	mappings map[string]string,
	out writer.OutputWriter,
	outputFilename string,
	mode writer.AccessMode,
) error {
	templatePath := filepath.Join(g.templateDir, templateName)

	data, err := afero.ReadFile(g.fs, templatePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRead,
			"failed to read template %q", templatePath)
	}

	rendered, err := template.Render(string(data), mappings)
	if err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err),
			"failed to render template %q", templatePath)
	}

	g.logger.Debug().
		Str("template", templatePath).
		Str("output", outputFilename).
		Msg("Generated section")

	return out.WriteFile(outputFilename, []byte(rendered), mode)
}
