package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a question set document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// LoadSet reads, parses, and validates a question set file.
func LoadSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read question set: %w", err)
	}
	set, err := ParseSet(data, FormatForPath(path))
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// ParseSet decodes and normalizes a question set document.
func ParseSet(data []byte, format Format) (Set, error) {
	var (
		set Set
		err error
	)
	if format == FormatJSON {
		set, err = parseJSONSet(data)
	} else {
		set, err = parseYAMLSet(data)
	}
	if err != nil {
		return Set{}, err
	}
	return NormalizeSet(set)
}

func parseJSONSet(data []byte) (Set, error) {
	var set Set
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&set); err != nil {
		return Set{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(new(json.RawMessage)); err != io.EOF {
		if err == nil {
			return Set{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Set{}, fmt.Errorf("parse json: %w", err)
	}
	return set, nil
}

func parseYAMLSet(data []byte) (Set, error) {
	var set Set
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return Set{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); err != io.EOF {
		if err == nil {
			return Set{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Set{}, fmt.Errorf("parse yaml: %w", err)
	}
	return set, nil
}
