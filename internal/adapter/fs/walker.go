package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"ytclust/internal/port"
)

// Walker finds comment files below a directory using include and exclude
// globs matched against slash-separated relative paths.
type Walker struct {
	includes []string
	excludes []string
}

var _ port.FileWalker = (*Walker)(nil)

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.json"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, port.FileInfo{
				Path:    path,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})

	return files, err
}

// Resolve expands input into files: a regular file is returned as is, a
// directory is walked, and anything else is treated as a glob pattern.
func (w *Walker) Resolve(input string) ([]port.FileInfo, error) {
	if info, err := os.Stat(input); err == nil {
		if info.IsDir() {
			return w.Walk(input)
		}
		return []port.FileInfo{{Path: input, ModTime: info.ModTime().Unix(), Size: info.Size()}}, nil
	}

	if !doublestar.ValidatePathPattern(input) {
		return nil, fmt.Errorf("invalid input pattern: %s", input)
	}
	matches, err := doublestar.FilepathGlob(input, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %s", input)
	}
	sort.Strings(matches)

	files := make([]port.FileInfo, 0, len(matches))
	for _, m := range matches {
		if w.shouldExclude(filepath.ToSlash(m)) {
			continue
		}
		info, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		files = append(files, port.FileInfo{Path: m, ModTime: info.ModTime().Unix(), Size: info.Size()})
	}
	return files, nil
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
