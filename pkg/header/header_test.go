package header

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yalgen/yalgen/pkg/errors"
)

const sampleHeader = `/*
 * Library to support the foo format
 *
 * Copyright (C) 2014-2024, First Author <first@example.com>
 */

#if !defined( _LIBFOO_H )
#define _LIBFOO_H

/* -------------------------------------------------------------------------
 * Support functions
 * ------------------------------------------------------------------------- */

LIBFOO_EXTERN \
const char *libfoo_get_version(
             void );

LIBFOO_EXTERN \
int libfoo_check_file_signature(
     const char *filename,
     libfoo_error_t **error );

/* -------------------------------------------------------------------------
 * File functions
 * ------------------------------------------------------------------------- */

LIBFOO_EXTERN \
int libfoo_file_initialize(
     libfoo_file_t **file,
     libfoo_error_t **error );

#if defined( LIBFOO_HAVE_WIDE_CHARACTER_TYPE )

LIBFOO_EXTERN \
int libfoo_file_open_wide(
     libfoo_file_t *file,
     const wchar_t *filename,
     int access_flags,
     libfoo_error_t **error );

#endif

#endif
`

func writeHeader(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "libfoo.h", []byte(content), 0644))
	return fs
}

func TestExtractPrototypes(t *testing.T) {
	fs := writeHeader(t, sampleHeader)

	include, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	assert.Equal(t, "libfoo.h", include.Name)
	assert.Equal(t, []string{"Support functions", "File functions"}, include.SectionNames)

	support := include.FunctionsPerSection["Support functions"]
	require.Len(t, support, 2)

	assert.Equal(t, "libfoo_get_version", support[0].Name)
	assert.Equal(t, "const char *", support[0].ReturnType)
	assert.Equal(t, []string{"void"}, support[0].Arguments)

	assert.Equal(t, "libfoo_check_file_signature", support[1].Name)
	assert.Equal(t, "int", support[1].ReturnType)
	assert.Equal(t, []string{"const char *filename", "libfoo_error_t **error"}, support[1].Arguments)

	file := include.FunctionsPerSection["File functions"]
	require.Len(t, file, 2)

	assert.Equal(t, "libfoo_file_initialize", file[0].Name)
	assert.Equal(t, "libfoo_file_open_wide", file[1].Name)
	assert.Equal(t, []string{
		"libfoo_file_t *file",
		"const wchar_t *filename",
		"int access_flags",
		"libfoo_error_t **error",
	}, file[1].Arguments)
}

func TestExtractPrototypesIdempotent(t *testing.T) {
	fs := writeHeader(t, sampleHeader)

	first, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)
	second, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractPrototypesUnreadable(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := ExtractPrototypes(fs, "missing.h", "libfoo")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestExtractPrototypesUnterminatedDropped(t *testing.T) {
	fs := writeHeader(t, `/* -------------------------------------------------------------------------
 * Support functions
 * ------------------------------------------------------------------------- */

LIBFOO_EXTERN \
const char *libfoo_get_version(
             void )
`)

	include, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	assert.Equal(t, []string{"Support functions"}, include.SectionNames)
	assert.Empty(t, include.FunctionsPerSection["Support functions"],
		"a prototype that never terminates must not be recorded")
}

func TestExtractPrototypesBannerAtEOF(t *testing.T) {
	fs := writeHeader(t, `#define _LIBFOO_H

/* -------------------------------------------------------------------------
`)

	include, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	assert.Empty(t, include.SectionNames,
		"a banner with no following section name must not append a section")
}

func TestExtractPrototypesEmptySection(t *testing.T) {
	fs := writeHeader(t, `/* -------------------------------------------------------------------------
 * Notify functions
 * ------------------------------------------------------------------------- */

typedef int libfoo_placeholder_t;
`)

	include, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	require.Equal(t, []string{"Notify functions"}, include.SectionNames)
	prototypes, ok := include.FunctionsPerSection["Notify functions"]
	assert.True(t, ok, "every section name must have a mapping entry")
	assert.Empty(t, prototypes)
}

func TestExtractPrototypesNoArguments(t *testing.T) {
	fs := writeHeader(t, `/* -------------------------------------------------------------------------
 * Support functions
 * ------------------------------------------------------------------------- */

LIBFOO_EXTERN \
const char *libfoo_get_version(
              );
`)

	include, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	support := include.FunctionsPerSection["Support functions"]
	require.Len(t, support, 1)
	assert.Equal(t, []string{""}, support[0].Arguments)
}

func TestExtractPrototypesExternOutsideSection(t *testing.T) {
	fs := writeHeader(t, `LIBFOO_EXTERN \
const char *libfoo_get_version(
             void );
`)

	include, err := ExtractPrototypes(fs, "libfoo.h", "libfoo")
	require.NoError(t, err)

	assert.Empty(t, include.SectionNames)
	assert.Empty(t, include.FunctionsPerSection)
}

func TestScannerTransitions(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		fromState scanState
		wantState scanState
	}{
		{
			name:      "banner enters section state",
			line:      sectionBanner,
			fromState: stateScanning,
			wantState: stateInSection,
		},
		{
			name:      "extern marker enters extern block",
			line:      "LIBFOO_EXTERN \\",
			fromState: stateScanning,
			wantState: stateInExternBlock,
		},
		{
			name:      "unrecognized line keeps scanning",
			line:      "typedef intptr_t libfoo_file_t;",
			fromState: stateScanning,
			wantState: stateScanning,
		},
		{
			name:      "blank line does not leave section state",
			line:      "",
			fromState: stateInSection,
			wantState: stateInSection,
		},
		{
			name:      "section name returns to scanning",
			line:      " * Support functions",
			fromState: stateInSection,
			wantState: stateScanning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScanner("libfoo.h", "libfoo")
			sc.state = tt.fromState

			sc.advance(tt.line)

			assert.Equal(t, tt.wantState, sc.state)
		})
	}
}

func TestScannerConditionalFlags(t *testing.T) {
	sc := newScanner("libfoo.h", "libfoo")

	sc.advance("#if defined( HAVE_DEBUG_OUTPUT )")
	assert.True(t, sc.haveDebugOutput)

	sc.advance("#if defined( LIBFOO_HAVE_BFIO )")
	assert.True(t, sc.haveBFIO)

	sc.advance("#if defined( LIBFOO_HAVE_WIDE_CHARACTER_TYPE )")
	assert.True(t, sc.haveWideCharacterType)

	sc.advance("#endif")
	assert.False(t, sc.haveBFIO)
	assert.False(t, sc.haveDebugOutput)
	assert.False(t, sc.haveWideCharacterType)

	// A stray #endif is a no-op.
	sc.advance("#endif")
	assert.False(t, sc.haveDebugOutput)
}
