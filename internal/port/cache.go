package port

// CleanCache stores cleaned texts keyed by their raw text.
type CleanCache interface {
	// GetMany returns the cached cleaned text for each raw text that has one.
	GetMany(raw []string) (map[string]string, error)

	// PutMany stores raw -> cleaned pairs.
	PutMany(entries map[string]string) error
}
