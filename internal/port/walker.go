package port

// FileWalker discovers input files.
type FileWalker interface {
	// Walk returns the matching files below root.
	Walk(root string) ([]FileInfo, error)

	// Resolve expands a file, directory or glob pattern into files.
	Resolve(input string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}
