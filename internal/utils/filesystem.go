package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates path (and parents) when missing.
func EnsureDir(path string) error {
	if !DirExists(path) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}

// CopyGlob copies every file matching pattern into dstDir and returns the
// copied base names, sorted. A pattern with no matches is an error: an empty
// redistributable tree means an earlier extraction silently failed.
func CopyGlob(pattern, dstDir string, showProgress bool) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}

	if err := EnsureDir(dstDir); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		var total int64
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil {
				total += info.Size()
			}
		}
		bar = progressbar.DefaultBytes(total, "staging "+filepath.Base(dstDir))
	}

	names := make([]string, 0, len(matches))
	for _, src := range matches {
		dst := filepath.Join(dstDir, filepath.Base(src))
		if err := copyFileTracked(src, dst, bar); err != nil {
			return nil, fmt.Errorf("copy %s: %w", src, err)
		}
		names = append(names, filepath.Base(src))
	}
	if bar != nil {
		_ = bar.Finish()
	}

	sort.Strings(names)
	return names, nil
}

func copyFileTracked(src, dst string, bar *progressbar.ProgressBar) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	var w io.Writer = destFile
	if bar != nil {
		w = io.MultiWriter(destFile, bar)
	}

	buf := GetSmallBuffer()
	defer PutSmallBuffer(buf)

	if _, err := io.CopyBuffer(w, sourceFile, *buf); err != nil {
		return err
	}
	return destFile.Sync()
}

// ListByExt returns the base names of files in dir with the given extension
// (case-insensitive), sorted. Missing directories yield an empty set.
func ListByExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ext = strings.ToLower(ext)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) == ext {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FormatBytes renders a byte count in human units.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(units) {
		exp = len(units) - 1
	}

	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
