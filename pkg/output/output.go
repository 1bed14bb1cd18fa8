// Package output writes rendered results to files and decides what goes to stdout.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pkgz/lgr"
)

// DefaultBase is the base path used by all-formats mode without an output file
const DefaultBase = "top_news"

// Output is a rendered document and the file it goes to
type Output struct {
	Path    string
	Content string
}

// BasePath returns output file path without its extension, DefaultBase for empty path.
// Dot-files like ".news" keep their name.
func BasePath(outputFile string) string {
	if outputFile == "" {
		return DefaultBase
	}
	dir, file := filepath.Split(outputFile)
	ext := filepath.Ext(file)
	if ext == file {
		ext = ""
	}
	return filepath.Join(dir, strings.TrimSuffix(file, ext))
}

// Write creates parent directories if needed and writes content to path
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	lgr.Printf("[INFO] wrote %s", abs)
	return nil
}

// WriteAll writes every output. A failed write is logged and does not stop the rest,
// all failures are returned joined.
func WriteAll(outputs []Output) error {
	var errs []error
	for _, o := range outputs {
		if err := Write(o.Path, o.Content); err != nil {
			lgr.Printf("[WARN] failed to write output file: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShouldPrint tells if the rendered result goes to stdout. All-formats mode prints
// only when asked to, single-format mode prints unless quiet or writing to a file.
func ShouldPrint(quiet bool, outputFile string, alsoStdout, allFormats bool) bool {
	if quiet {
		return false
	}
	if allFormats {
		return alsoStdout
	}
	return outputFile == "" || alsoStdout
}
