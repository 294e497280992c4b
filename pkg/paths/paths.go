// Package paths provides centralized path handling for yalgen.
// It resolves the tool's data directory (which holds the template
// assets), the per-generator template directories, and the projects
// directory containing the per-library source trees.
package paths

import (
	"os"
	"path/filepath"

	"github.com/yalgen/yalgen/pkg/errors"
)

// Default directories and files
const (
	// DataDirName is the directory name holding the template assets
	DataDirName = "data"

	// SourceDirName is the subdirectory of the data directory holding
	// the per-generator template trees
	SourceDirName = "source"

	// LibraryTemplatesDir is the template subtree for library source files
	LibraryTemplatesDir = "libyal"

	// ManPageTemplatesDir is the template subtree for the man page
	ManPageTemplatesDir = "manuals/libyal.3"

	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "source.conf"
)

// Paths resolves the directories yalgen reads templates and project
// sources from.
type Paths struct {
	// toolDir is the directory containing the yalgen executable
	toolDir string

	// projectsDir is the root directory of the per-library project trees
	projectsDir string
}

// New creates a Paths instance. If projectsDir is empty it defaults to
// the parent of the tool's own containing directory.
func New(projectsDir string) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to locate executable")
	}

	toolDir := filepath.Dir(filepath.Dir(exe))
	if projectsDir == "" {
		projectsDir = filepath.Dir(toolDir)
	}

	return &Paths{
		toolDir:     toolDir,
		projectsDir: projectsDir,
	}, nil
}

// ToolDir returns the directory the tool's data directory lives under.
func (p *Paths) ToolDir() string {
	return p.toolDir
}

// ProjectsDir returns the root directory containing per-library
// project subdirectories.
func (p *Paths) ProjectsDir() string {
	return p.projectsDir
}

// TemplateDir returns the template directory for the named generator
// subtree, e.g. "libyal" or "manuals/libyal.3".
func (p *Paths) TemplateDir(name string) string {
	return filepath.Join(p.toolDir, DataDirName, SourceDirName, filepath.FromSlash(name))
}

// IncludeHeaderPath returns the conventional path of a library's
// public include header: <projects>/<library>/include/<library>.h.
func (p *Paths) IncludeHeaderPath(libraryName string) string {
	return filepath.Join(p.projectsDir, libraryName, "include", libraryName+".h")
}
