package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/resumake/pkg/errors"
)

// Format is a document file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the document format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (want .json or .toml)", filepath.Ext(path))
}

// ReadJSON decodes and normalizes a JSON document from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	if err := doc.Normalize(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ReadTOML decodes and normalizes a TOML document from r.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (Document, error) {
	var doc Document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if err := doc.Normalize(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Read decodes a document in the given format.
func Read(r io.Reader, f Format) (Document, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
}

// Import reads the document file at path, choosing the format from its
// extension.
func Import(path string) (Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	f, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()
	return Read(file, f)
}
