package metadata

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// flatArrayPattern matches arrays with no nested containers.
	flatArrayPattern = regexp.MustCompile(`\[\s*((?:"[^"]*"|[^\[\]{}"])*)\s*\]`)

	// simpleObjectPattern matches objects consisting of a single
	// string-keyed pair with a scalar or string value.
	simpleObjectPattern = regexp.MustCompile(`\{\s*((?:"[^"]*"\s*:\s*(?:"[^"]*"|[^,{}]*))*)\s*\}`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Compact serializes a JSON document deterministically: 2-space indentation
// overall, with flat nested arrays and single-pair nested objects collapsed
// onto one line each. Key order is preserved because the reformat operates
// on the token stream, never through a map.
func Compact(data []byte) ([]byte, error) {
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return nil, err
	}

	out := flatArrayPattern.ReplaceAllStringFunc(indented.String(), func(m string) string {
		return "[" + collapse(m[1:len(m)-1]) + "]"
	})
	out = simpleObjectPattern.ReplaceAllStringFunc(out, func(m string) string {
		return "{" + collapse(m[1:len(m)-1]) + "}"
	})

	return []byte(out), nil
}

// collapse squeezes interior whitespace runs to single spaces.
func collapse(content string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))
}
