package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"resumecraft/resume/model"
)

// readState loads the working document, starting fresh when the file is missing.
func readState(path string) (model.ResumeDocument, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.New(), nil
	}
	if err != nil {
		return model.ResumeDocument{}, fmt.Errorf("read state: %w", err)
	}
	var doc model.ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.ResumeDocument{}, fmt.Errorf("decode state %s: %w", path, err)
	}
	doc.Normalize()
	return doc, nil
}

// writeState replaces the state file atomically.
func writeState(path string, doc model.ResumeDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".resumectl-*")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
