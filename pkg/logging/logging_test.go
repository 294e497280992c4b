package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestGetLogFilePath(t *testing.T) {
	path := getLogFilePath()

	if !strings.HasSuffix(path, "yalgen.log") {
		t.Errorf("getLogFilePath() = %q, want a yalgen.log path", path)
	}
	if !strings.Contains(path, "yalgen") {
		t.Errorf("getLogFilePath() = %q, want path under a yalgen directory", path)
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("generator.manpage")

	// Should not panic and should be usable
	logger.Debug().Msg("test message")
}
