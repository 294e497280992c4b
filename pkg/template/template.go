// Package template implements the placeholder substitution the
// generators render output through.
//
// Placeholders are written as $name or ${name}, with "$$" as the
// escape for a literal dollar sign. Templates carry no control flow;
// all repetition is driven by the caller issuing one render per item.
package template

import (
	"regexp"
	"strings"

	"github.com/yalgen/yalgen/pkg/errors"
)

// placeholderPattern matches "$$", "$name", "${name}" or a dangling
// "$" (in that order), with identifier-style placeholder names.
var placeholderPattern = regexp.MustCompile(
	`\$(?:(\$)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\}|)`)

// Render substitutes the mapping into the template text. A placeholder
// with no mapping entry is an error, never an empty substitution, and
// a dollar sign that introduces no valid placeholder is rejected.
func Render(templateText string, mappings map[string]string) (string, error) {
	var renderErr error

	output := placeholderPattern.ReplaceAllStringFunc(templateText, func(match string) string {
		if renderErr != nil {
			return match
		}
		if match == "$$" {
			return "$"
		}

		name := match[1:]
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		if name == "" {
			renderErr = errors.New(errors.ErrTemplateSyntax,
				"invalid placeholder: lone $ in template")
			return match
		}

		value, ok := mappings[name]
		if !ok {
			renderErr = errors.Newf(errors.ErrTemplateKey,
				"no mapping for placeholder %q", name)
			return match
		}
		return value
	})

	if renderErr != nil {
		return "", renderErr
	}
	return output, nil
}
