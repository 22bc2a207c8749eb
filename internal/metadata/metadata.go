// Package metadata reads and writes the project metadata store: a JSON
// document holding at least a "version" field. The document is rewritten
// in place on release, preserving key order and unknown fields, with a
// deterministic compact serialization.
package metadata

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/raveheart1/relbump/internal/errors"
)

// Store locates the metadata document on disk.
type Store struct {
	Path string
}

// Document is a loaded metadata file. The raw bytes are retained so a
// version update can rewrite the document without disturbing other fields.
type Document struct {
	raw []byte

	// Version is the current "version" field value.
	Version string
}

// Load reads the metadata document. A missing file is a prerequisite
// error; the release run must abort with exit status 1 in that case.
func (s Store) Load() (*Document, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, errors.NewPrerequisiteError(
			fmt.Sprintf("metadata file not found: %s", s.Path),
			fmt.Sprintf("Create %s with at least a \"version\" field (e.g. {\"version\": \"0.1.0\"})", s.Path),
		)
	}
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Runtime, "reading metadata")
	}

	if !gjson.ValidBytes(data) {
		return nil, errors.NewConfigError(fmt.Sprintf("metadata file %s is not valid JSON", s.Path))
	}

	version := gjson.GetBytes(data, "version")
	if !version.Exists() || version.Type != gjson.String {
		return nil, errors.NewConfigError(
			fmt.Sprintf("metadata file %s has no string \"version\" field", s.Path),
		)
	}

	return &Document{raw: data, Version: version.String()}, nil
}

// Write persists the document with the version field set to newVersion,
// serialized compactly with a trailing newline. All other fields and their
// order are preserved.
func (s Store) Write(doc *Document, newVersion string) error {
	updated, err := sjson.SetBytes(doc.raw, "version", newVersion)
	if err != nil {
		return fmt.Errorf("updating version field: %w", err)
	}

	compact, err := Compact(updated)
	if err != nil {
		return fmt.Errorf("serializing metadata: %w", err)
	}

	if err := os.WriteFile(s.Path, append(compact, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing metadata %s: %w", s.Path, err)
	}
	return nil
}
