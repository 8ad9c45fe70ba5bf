// Package export writes lesson decks as documents and reads slide files.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/darsplan/internal/deck"
)

// Format is an export document format.
type Format string

const (
	Markdown Format = "markdown"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// Formats lists the supported formats in help-text order.
var Formats = []Format{Markdown, JSON, YAML}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want markdown, json or yaml)", s)
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer format from %q", path)
	}
	return ParseFormat(ext)
}

// Write renders d to w in format f.
func Write(w io.Writer, d *deck.Deck, f Format) error {
	switch f {
	case Markdown:
		return writeMarkdown(w, d)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", f)
}

// slideFile is the on-disk shape accepted by ReadSlides: either a bare
// list of slides or an object with a slides key, such as an exported deck.
type slideFile struct {
	Title  string       `json:"title" yaml:"title"`
	Slides []deck.Slide `json:"slides" yaml:"slides"`
}

// ReadSlides reads slides from JSON or YAML. It returns the deck title
// when the document carries one.
func ReadSlides(r io.Reader, f Format) (string, []deck.Slide, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("read slides: %w", err)
	}

	var (
		doc  slideFile
		list []deck.Slide
	)
	target := any(&doc)
	if isList(raw, f) {
		target = &list
	}
	switch f {
	case JSON:
		if err := json.Unmarshal(raw, target); err != nil {
			return "", nil, fmt.Errorf("parse json slides: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(raw, target); err != nil {
			return "", nil, fmt.Errorf("parse yaml slides: %w", err)
		}
	default:
		return "", nil, fmt.Errorf("cannot read slides from %s", f)
	}
	if list == nil {
		list = doc.Slides
	}

	if len(list) == 0 {
		return "", nil, errors.New("no slides found")
	}
	return doc.Title, list, nil
}

// isList reports whether raw holds a bare list of slides rather than a
// document with a title and a slides key.
func isList(raw []byte, f Format) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return false
	}
	switch trimmed[0] {
	case '[':
		return true
	case '-':
		if f != YAML {
			return false
		}
		if rest, ok := bytes.CutPrefix(trimmed, []byte("---")); ok {
			_, body, _ := bytes.Cut(rest, []byte("\n"))
			return isList(body, f)
		}
		return true
	}
	return false
}
