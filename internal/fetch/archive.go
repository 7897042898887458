package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// downloadAndExtractZip fetches zipURL and extracts it into dest. GitHub
// archives wrap everything in a single repo-<branch> directory, which is
// flattened away afterwards.
func downloadAndExtractZip(ctx context.Context, client *http.Client, zipURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, zipURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", zipURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, zipURL)
	}

	tmpZip := filepath.Join(dest, "repo.zip")
	out, err := os.Create(tmpZip)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpZip)
		return fmt.Errorf("failed to save archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close archive file: %w", err)
	}

	if err := extractZip(tmpZip, dest); err != nil {
		return err
	}
	os.Remove(tmpZip)

	return flattenSingleSubdir(dest)
}

// extractZip unpacks archivePath into dest, refusing entries that would
// escape the destination directory.
func extractZip(archivePath, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		target := filepath.Join(dest, filepath.FromSlash(file.Name))

		// Zip-slip guard
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractZipFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractZipFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}

	return nil
}

// flattenSingleSubdir moves the contents of a lone top-level directory up
// into dir and removes it. GitHub ZIPs always produce this shape.
func flattenSingleSubdir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}

	top := filepath.Join(dir, entries[0].Name())
	children, err := os.ReadDir(top)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", top, err)
	}

	for _, child := range children {
		from := filepath.Join(top, child.Name())
		to := filepath.Join(dir, child.Name())
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("failed to move %s: %w", from, err)
		}
	}

	return os.RemoveAll(top)
}
