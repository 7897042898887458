// Package stage copies the code files out of a fetched repository into a
// clean working tree, preserving relative paths. Which files count as code
// is the scan classifier's decision; stage adds no rules of its own.
package stage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/fetch"
	"github.com/repolens/repolens/internal/scan"
)

// Result summarizes one staging run.
type Result struct {
	DestRoot string // destination tree root (workingRoot/<repo name>)
	Copied   int    // files the classifier accepted and copied
	Skipped  int    // files the classifier rejected
}

// Stager copies classified code files into a working tree.
type Stager struct {
	classifier *scan.Classifier
}

// NewStager creates a stager using the default classification tables.
func NewStager() *Stager {
	return &Stager{classifier: scan.NewClassifier(scan.DefaultTables())}
}

// Stage walks srcRepoDir and copies every code file into
// workingRoot/<repo name>/<relative path>. The repo name is the source
// folder name with any fetch suffix stripped. Unreadable files are logged
// and skipped; one bad file never aborts the run.
func (s *Stager) Stage(ctx context.Context, srcRepoDir, workingRoot string) (*Result, error) {
	src, err := filepath.Abs(srcRepoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("source repository not found: %w", err)
	}

	repoName := fetch.DeriveRepoName(filepath.Base(src))
	destRoot := filepath.Join(workingRoot, repoName)
	if err := os.MkdirAll(destRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination root: %w", err)
	}

	result := &Result{DestRoot: destRoot}

	err = filepath.Walk(src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			log.Printf("Warning: skipping %s: %v", path, walkErr)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if !s.classifier.IsCodeFile(path) {
			result.Skipped++
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if err := copyFile(path, filepath.Join(destRoot, rel)); err != nil {
			log.Printf("Warning: failed to copy %s: %v", rel, err)
			result.Skipped++
			return nil
		}

		result.Copied++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// copyFile copies src to dest, creating parent directories and preserving
// the file mode.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
