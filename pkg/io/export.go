package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/resumake/pkg/errors"
)

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteTOML encodes doc as TOML and writes it to w.
func WriteTOML(doc Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// Write encodes doc in the given format.
func Write(doc Document, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(doc, w)
	case FormatTOML:
		return WriteTOML(doc, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
}

// Export writes doc to path in the format implied by its extension. The
// file is written to a temporary sibling first and renamed into place, so
// a failed write never truncates an existing document.
func Export(doc Document, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatOf(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".resumake-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := Write(doc, tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
