package normalize

// Stage is one named text transform of the cleaning pipeline.
// Transform must be safe for concurrent use and must accept empty input.
type Stage interface {
	Name() string
	Transform(text string) string
}

type funcStage struct {
	name string
	fn   func(string) string
}

func (s funcStage) Name() string { return s.name }

func (s funcStage) Transform(text string) string {
	if text == "" {
		return text
	}
	return s.fn(text)
}

// StageFunc wraps fn as a Stage called name.
func StageFunc(name string, fn func(string) string) Stage {
	return funcStage{name: name, fn: fn}
}
