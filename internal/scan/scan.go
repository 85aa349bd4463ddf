// Package scan finds leaf images on disk for batch diagnosis.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// imageExts are the file extensions the backend accepts.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// defaultExcludes are directory names skipped during traversal.
var defaultExcludes = []string{
	".git",
	"node_modules",
	".thumbnails",
	".cache",
}

// maxImageSize skips files too large to be a leaf photo (25 MB).
const maxImageSize = 25 << 20

// Options filters which images a walk returns.
type Options struct {
	Include []string // glob patterns; empty includes every image
	Exclude []string // glob patterns; empty excludes nothing
}

// Images walks root and returns the image files matching opts, sorted by
// path. A root that is itself an image file returns a single entry.
func Images(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		if !IsImage(root) {
			return nil, fmt.Errorf("%s is not a supported image (jpg, png, webp)", root)
		}
		return []string{root}, nil
	}

	var images []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImage(path) {
			return nil
		}
		if fi, err := d.Info(); err == nil && fi.Size() > maxImageSize {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if !matchesInclude(rel, opts.Include) || matchesAny(rel, opts.Exclude) {
			return nil
		}

		images = append(images, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(images)
	return images, nil
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

func shouldExcludeDir(name string) bool {
	for _, excl := range defaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath against glob patterns, with ** support via
// doublestar. Patterns also match against the bare filename.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}

		base := filepath.Base(normalized)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
