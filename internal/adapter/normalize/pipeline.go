package normalize

import (
	"errors"
	"fmt"
)

// ErrUnknownStage is returned by Build for names not in the registry.
var ErrUnknownStage = errors.New("unknown stage")

// StageInfo describes a registered stage.
type StageInfo struct {
	Name        string
	Description string
}

type stageFactory struct {
	info  StageInfo
	needs func(*Resources) bool
	build func(*Resources) Stage
}

var registry = []stageFactory{
	{StageInfo{"strip_html", "drop markup and unescape entities"}, nil, stripHTML},
	{StageInfo{"lowercase", "language-aware lowercasing"}, nil, lowercase},
	{StageInfo{"remove_url", "delete http(s):// and www. links"}, nil, removeURL},
	{StageInfo{"demojize", "replace emoji with :slug_name:"}, nil, demojize},
	{StageInfo{"normalize_unicode", "NFKD and map typographic punctuation to ASCII"}, nil, normalizeUnicode},
	{StageInfo{"remove_punctuation", "replace ASCII punctuation with spaces"}, nil, removePunctuation},
	{StageInfo{"chat_conversion", "expand whole-word chat abbreviations"},
		func(r *Resources) bool { return r.ChatWords != nil }, chatConversion},
	{StageInfo{"spell_correct", "correct words against a frequency model"},
		func(r *Resources) bool { return r.Speller != nil }, spellCorrect},
	{StageInfo{"remove_stopwords", "drop words in the stopword list"},
		func(r *Resources) bool { return r.Stopwords != nil }, removeStopwords},
	{StageInfo{"tokenize", "keep alphanumeric word tokens, space separated"},
		func(r *Resources) bool { return r.Tokenizer != nil }, tokenize},
	{StageInfo{"stem", "stem each token"},
		func(r *Resources) bool { return r.Stemmer != nil }, stem},
}

// Available lists the registered stages in registry order.
func Available() []StageInfo {
	out := make([]StageInfo, len(registry))
	for i, f := range registry {
		out[i] = f.info
	}
	return out
}

func lookup(name string) (stageFactory, bool) {
	for _, f := range registry {
		if f.info.Name == name {
			return f, true
		}
	}
	return stageFactory{}, false
}

// Pipeline applies its stages left to right.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline from already built stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Build resolves names against the stage registry.
func Build(names []string, res *Resources) (*Pipeline, error) {
	if res == nil {
		res = DefaultResources()
	}

	stages := make([]Stage, 0, len(names))
	for _, name := range names {
		f, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStage, name)
		}
		if f.needs != nil && !f.needs(res) {
			return nil, fmt.Errorf("%w: %s", ErrMissingResource, name)
		}
		stages = append(stages, f.build(res))
	}

	return New(stages...), nil
}

// Apply runs text through every stage.
func (p *Pipeline) Apply(text string) string {
	for _, s := range p.stages {
		text = s.Transform(text)
	}
	return text
}

// Names returns the stage names in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}
