package generator

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/yalgen/yalgen/pkg/config"
	"github.com/yalgen/yalgen/pkg/errors"
	"github.com/yalgen/yalgen/pkg/logging"
	"github.com/yalgen/yalgen/pkg/writer"
)

// templatePrefix marks the template files the library source
// generator consumes; the prefix is replaced by the library name in
// the output filename.
const templatePrefix = "libyal_"

// LibrarySourceGenerator generates the library source file stubs, one
// output file per matching template file.
type LibrarySourceGenerator struct {
	sourceFileGenerator
}

// NewLibrarySourceGenerator creates a library source generator reading
// templates from templateDir.
func NewLibrarySourceGenerator(fs afero.Fs, projectsDir, templateDir string) *LibrarySourceGenerator {
	return &LibrarySourceGenerator{
		sourceFileGenerator: sourceFileGenerator{
			fs:          fs,
			projectsDir: projectsDir,
			templateDir: templateDir,
			logger:      logging.GetLogger("generator.library"),
		},
	}
}

// Generate renders every "libyal_"-prefixed template file into
// <library>/<library>_<suffix>. Directories and non-matching entries
// are skipped silently.
func (g *LibrarySourceGenerator) Generate(cfg *config.ProjectConfiguration, out writer.OutputWriter) error {
	mappings := cfg.TemplateMappings()

	entries, err := afero.ReadDir(g.fs, g.templateDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead,
			"failed to list template directory %q", g.templateDir)
	}

	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), templatePrefix) {
			continue
		}
		if entry.IsDir() {
			g.logger.Debug().Str("entry", entry.Name()).Msg("Skipping directory entry")
			continue
		}

		outputFilename := cfg.LibraryName + "_" + entry.Name()[len(templatePrefix):]
		outputFilename = filepath.Join(cfg.LibraryName, outputFilename)

		if err := g.generateSection(
			entry.Name(), mappings, out, outputFilename, writer.ModeTruncate); err != nil {
			return err
		}
	}
	return nil
}
