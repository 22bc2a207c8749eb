// Package changelog renders release sections and prepends them to the
// changelog file. A section is a dated version heading followed by one
// subsection per non-empty category, entries in insertion order.
package changelog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/raveheart1/relbump/internal/classify"
)

// RenderSection builds the markdown block for one release. The version
// heading level is max(1, 3-level), so a major release gets the most
// prominent heading. Categories render in the fixed enumeration order;
// empty categories are omitted.
func RenderSection(version string, date time.Time, level classify.Level, entries map[classify.Category][]string) string {
	depth := 3 - int(level)
	if depth < 1 {
		depth = 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s)\n\n", strings.Repeat("#", depth), version, date.Format("2006-01-02"))

	for _, category := range classify.Categories() {
		items := entries[category]
		if len(items) == 0 {
			continue
		}
		sb.WriteString("### " + string(category) + "\n")
		sb.WriteString(strings.Join(items, "\n") + "\n\n")
	}

	return sb.String()
}

// Prepend writes section ahead of the existing changelog content at path.
// A missing file is treated as empty initial content.
func Prepend(path, section string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading changelog %s: %w", path, err)
	}

	content := append([]byte(section), existing...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}
	return nil
}
