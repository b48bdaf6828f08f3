package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cm_sheet/internal/domain/model"
)

// ProblemRepository reads and rewrites the curated problem list.
type ProblemRepository interface {
	Load() ([]model.Problem, error)
	Save(problems []model.Problem) error
}

type fileProblemRepository struct {
	path string
}

// NewFileProblemRepository stores the list as a JSON array at path.
func NewFileProblemRepository(path string) ProblemRepository {
	return &fileProblemRepository{path: path}
}

func (r *fileProblemRepository) Load() ([]model.Problem, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("fileProblemRepository.Load: %w", err)
	}
	var problems []model.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("fileProblemRepository.Load: invalid problem list %s: %w", r.path, err)
	}
	return problems, nil
}

// Save replaces the file atomically: the list is written to a temporary file
// next to the target and renamed over it.
func (r *fileProblemRepository) Save(problems []model.Problem) error {
	if problems == nil {
		problems = []model.Problem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(problems); err != nil {
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("fileProblemRepository.Save: %w", err)
	}
	return nil
}
