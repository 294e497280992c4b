package generator

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/yalgen/yalgen/pkg/config"
	"github.com/yalgen/yalgen/pkg/header"
	"github.com/yalgen/yalgen/pkg/logging"
	"github.com/yalgen/yalgen/pkg/writer"
)

// Man page template file names, one per emitted block kind.
const (
	manPageHeaderTemplate   = "header.txt"
	manPageSectionTemplate  = "section.txt"
	manPageFunctionTemplate = "function.txt"
	manPageFooterTemplate   = "footer.txt"
)

// ManPageGenerator generates the library man page (<library>.3) from
// the sections and function prototypes of the library's public
// include header.
type ManPageGenerator struct {
	sourceFileGenerator

	// now is the clock used for the man page date; replaced in tests.
	now func() time.Time
}

// NewManPageGenerator creates a man page generator reading templates
// from templateDir and the include header from under projectsDir.
func NewManPageGenerator(fs afero.Fs, projectsDir, templateDir string) *ManPageGenerator {
	return &ManPageGenerator{
		sourceFileGenerator: sourceFileGenerator{
			fs:          fs,
			projectsDir: projectsDir,
			templateDir: templateDir,
			logger:      logging.GetLogger("generator.manpage"),
		},
		now: time.Now,
	}
}

// Generate emits the man page: a header block, then per section a
// heading block followed by one block per documented function, then a
// footer. Everything after the header block is appended to the same
// output file. A section with no functions still gets its heading.
func (g *ManPageGenerator) Generate(cfg *config.ProjectConfiguration, out writer.OutputWriter) error {
	headerPath := filepath.Join(
		g.projectsDir, cfg.LibraryName, "include", cfg.LibraryName+".h")

	include, err := header.ExtractPrototypes(g.fs, headerPath, cfg.LibraryName)
	if err != nil {
		return err
	}

	g.logger.Debug().
		Str("header", headerPath).
		Int("sections", len(include.SectionNames)).
		Msg("Extracted include header")

	outputFilename := filepath.Join("manuals", cfg.LibraryName+".3")

	mappings := cfg.TemplateMappings()
	mappings["date"] = manPageDate(g.now())

	if err := g.generateSection(
		manPageHeaderTemplate, mappings, out, outputFilename, writer.ModeTruncate); err != nil {
		return err
	}

	for _, sectionName := range include.SectionNames {
		sectionMappings := map[string]string{
			"section_name": sectionName,
		}
		if err := g.generateSection(
			manPageSectionTemplate, sectionMappings, out, outputFilename, writer.ModeAppend); err != nil {
			return err
		}

		for _, prototype := range include.FunctionsPerSection[sectionName] {
			functionMappings := map[string]string{
				"function_arguments":   strings.Join(prototype.Arguments, ", "),
				"function_name":        prototype.Name,
				"function_return_type": prototype.ReturnType,
			}
			if err := g.generateSection(
				manPageFunctionTemplate, functionMappings, out, outputFilename, writer.ModeAppend); err != nil {
				return err
			}
		}
	}

	return g.generateSection(
		manPageFooterTemplate, mappings, out, outputFilename, writer.ModeAppend)
}

// manPageDate formats the man page date in the long form used by
// groff, with the day padded to two columns: "January  3, 2024".
func manPageDate(t time.Time) string {
	return t.Format("January _2, 2006")
}
