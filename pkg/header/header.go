// Package header extracts function prototypes and documentation
// section names from a library's public include header.
//
// The parser is not a C parser. It recognizes the narrow, conventional
// layout used by this family of libraries: section comment banners,
// `<LIBRARY>_EXTERN` markers in front of exported declarations, and
// one-argument-per-line prototypes terminated by " );". Anything it
// does not recognize is silently ignored.
package header

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/yalgen/yalgen/pkg/errors"
)

// sectionBanner is the comment-opening line that starts a
// documentation section in the include header.
const sectionBanner = "/* " +
	"-------------------------------------------------------------------------"

// FunctionPrototype represents one exported function declaration.
type FunctionPrototype struct {
	// Name is the function name, e.g. "libfoo_get_version".
	Name string

	// ReturnType is the return type as written, e.g. "const char *".
	ReturnType string

	// Arguments holds the argument strings in declaration order.
	Arguments []string
}

// IncludeHeaderFile represents the exported documentation structure of
// one include header file.
type IncludeHeaderFile struct {
	// Name is the base name of the header file.
	Name string

	// SectionNames lists the section names in order of appearance.
	SectionNames []string

	// FunctionsPerSection maps each section name to its function
	// prototypes in order of appearance. Every name in SectionNames
	// has an entry, possibly empty.
	FunctionsPerSection map[string][]*FunctionPrototype
}

// ExtractPrototypes reads the include header at path and returns its
// section and prototype structure. It fails only when the file cannot
// be read; malformed content is skipped, never an error.
func ExtractPrototypes(fs afero.Fs, path, libraryName string) (*IncludeHeaderFile, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead,
			"failed to open include header %q", path)
	}
	defer func() {
		_ = file.Close()
	}()

	sc := newScanner(filepath.Base(path), libraryName)

	lines := bufio.NewScanner(file)
	for lines.Scan() {
		sc.advance(lines.Text())
	}
	if err := lines.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead,
			"failed to read include header %q", path)
	}

	return sc.header, nil
}

// scanState is the parser's current position in the header dialect.
type scanState int

const (
	// stateScanning is the default state between recognized constructs.
	stateScanning scanState = iota

	// stateInSection is entered after a section banner; the parser is
	// waiting for the "* " line naming the section.
	stateInSection

	// stateInExternBlock accumulates one function prototype across one
	// or more declaration lines.
	stateInExternBlock
)

// scanner is the extractor's finite-state machine: a state tag plus
// the accumulator for the prototype currently being built, advanced
// one line at a time.
type scanner struct {
	libraryName  string
	externMarker string
	bfioMarker   string
	wideMarker   string

	state scanState

	// proto is the in-progress prototype, non-nil only while the
	// declaration line has been seen but the terminating " );" has not.
	proto *FunctionPrototype

	// currentSection is the most recently opened section name.
	currentSection string
	haveSection    bool

	// Conditional-compilation context. Tracked for completeness; the
	// flags do not currently affect the extracted structure.
	haveBFIO              bool
	haveDebugOutput       bool
	haveWideCharacterType bool

	header *IncludeHeaderFile
}

func newScanner(fileName, libraryName string) *scanner {
	upper := strings.ToUpper(libraryName)
	return &scanner{
		libraryName:  libraryName,
		externMarker: upper + "_EXTERN",
		bfioMarker:   "#if defined( " + upper + "_HAVE_BFIO )",
		wideMarker:   "#if defined( " + upper + "_HAVE_WIDE_CHARACTER_TYPE )",
		header: &IncludeHeaderFile{
			Name:                fileName,
			FunctionsPerSection: map[string][]*FunctionPrototype{},
		},
	}
}

// advance feeds one line of the header to the state machine.
func (s *scanner) advance(rawLine string) {
	line := strings.TrimSpace(rawLine)

	switch s.state {
	case stateInExternBlock:
		if s.proto != nil {
			s.addArgument(strings.TrimRight(rawLine, " \t\r"))
			return
		}
		s.beginPrototype(line)

	case stateInSection:
		if strings.HasPrefix(line, "* ") {
			s.openSection(line[2:])
			s.state = stateScanning
		}

	default:
		switch {
		case strings.HasPrefix(line, s.externMarker):
			s.state = stateInExternBlock

		case line == sectionBanner:
			s.state = stateInSection

		case strings.HasPrefix(line, "#endif"):
			s.haveBFIO = false
			s.haveDebugOutput = false
			s.haveWideCharacterType = false

		case strings.HasPrefix(line, "#if defined( HAVE_DEBUG_OUTPUT )"):
			s.haveDebugOutput = true

		case strings.HasPrefix(line, s.bfioMarker):
			s.haveBFIO = true

		case strings.HasPrefix(line, s.wideMarker):
			s.haveWideCharacterType = true
		}
	}
}

// openSection appends a new section with an empty function list.
func (s *scanner) openSection(name string) {
	s.header.SectionNames = append(s.header.SectionNames, name)
	s.header.FunctionsPerSection[name] = []*FunctionPrototype{}
	s.currentSection = name
	s.haveSection = true
}

// beginPrototype parses the declaration line of an extern block: the
// text before the library name is the return type, the text between
// the library name and the first "(" is the function name.
func (s *scanner) beginPrototype(line string) {
	before, _, _ := strings.Cut(line, s.libraryName)
	remainder := line[len(before):]
	name, _, _ := strings.Cut(remainder, "(")

	s.proto = &FunctionPrototype{
		Name:       name,
		ReturnType: strings.TrimSpace(before),
	}
}

// addArgument consumes one argument line of the prototype being built.
// The line terminates the declaration when it ends with " );".
func (s *scanner) addArgument(line string) {
	argument, _, _ := strings.Cut(line, ",")
	argument = strings.TrimSuffix(argument, " );")
	s.proto.Arguments = append(s.proto.Arguments, strings.TrimSpace(argument))

	if strings.HasSuffix(line, " );") {
		// Complete; a prototype outside any section has nowhere to go
		// and is dropped.
		if s.haveSection {
			s.header.FunctionsPerSection[s.currentSection] = append(
				s.header.FunctionsPerSection[s.currentSection], s.proto)
		}
		s.proto = nil
		s.state = stateScanning
	}
}
