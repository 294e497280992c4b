// Package writer abstracts where generated text goes: a file under
// the output directory, or the console for inspection without
// touching the disk.
package writer

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/yalgen/yalgen/pkg/errors"
)

// AccessMode selects how an output file is opened.
type AccessMode int

const (
	// ModeTruncate replaces any existing file content.
	ModeTruncate AccessMode = iota

	// ModeAppend appends to the existing file content.
	ModeAppend
)

// OutputWriter receives generated output, one write per rendered
// section.
type OutputWriter interface {
	WriteFile(path string, data []byte, mode AccessMode) error
}

// FileWriter writes generated files under an output directory. Each
// call opens, writes and closes the file; a missing parent directory
// is a write failure, not something the writer repairs.
type FileWriter struct {
	fs        afero.Fs
	outputDir string
}

// NewFileWriter creates a FileWriter rooted at outputDir.
func NewFileWriter(fs afero.Fs, outputDir string) *FileWriter {
	return &FileWriter{
		fs:        fs,
		outputDir: outputDir,
	}
}

// WriteFile writes data to the named file below the output directory.
func (w *FileWriter) WriteFile(path string, data []byte, mode AccessMode) error {
	flags := os.O_WRONLY | os.O_CREATE
	if mode == ModeAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	outputPath := filepath.Join(w.outputDir, path)
	file, err := w.fs.OpenFile(outputPath, flags, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"failed to open output file %q", outputPath)
	}

	_, writeErr := file.Write(data)
	closeErr := file.Close()

	if writeErr != nil {
		return errors.Wrapf(writeErr, errors.ErrFileWrite,
			"failed to write output file %q", outputPath)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, errors.ErrFileWrite,
			"failed to close output file %q", outputPath)
	}
	return nil
}

// consoleWidth is the width of the banner and the centered title.
const consoleWidth = 80

// ConsoleWriter prints generated output to a stream, framed by a
// banner naming the file it would have been written to. Truncate and
// append are indistinguishable; the stream only ever appends.
type ConsoleWriter struct {
	out       io.Writer
	ruleStyle lipgloss.Style
}

// NewConsoleWriter creates a ConsoleWriter on the given stream. The
// banner is styled only when the stream is a terminal.
func NewConsoleWriter(out io.Writer) *ConsoleWriter {
	ruleStyle := lipgloss.NewStyle()
	if file, ok := out.(*os.File); ok {
		if isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()) {
			ruleStyle = ruleStyle.Bold(true)
		}
	}
	return &ConsoleWriter{
		out:       out,
		ruleStyle: ruleStyle,
	}
}

// WriteFile prints the banner, the path as a centered title and the
// raw data. The data is written without a trailing newline.
func (w *ConsoleWriter) WriteFile(path string, data []byte, _ AccessMode) error {
	rule := w.ruleStyle.Render(strings.Repeat("-", consoleWidth))

	for _, line := range []string{rule, center(path, consoleWidth), rule, ""} {
		if _, err := io.WriteString(w.out, line+"\n"); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write to console")
		}
	}
	if _, err := w.out.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write to console")
	}
	return nil
}

// center pads text with spaces on both sides to the given width, the
// odd space going to the right.
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
