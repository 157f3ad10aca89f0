package normalize

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"ytclust/config"
	"ytclust/internal/adapter/analyzer"
	"ytclust/internal/port"
)

// ErrMissingResource is returned by Build when a stage needs a resource
// that was not loaded.
var ErrMissingResource = errors.New("missing stage resource")

// Resources holds everything the stages look up while transforming text.
// It is built once per run and shared read-only by all workers.
type Resources struct {
	Language        language.Tag
	Stopwords       *analyzer.StopwordSet
	ChatWords       *analyzer.ChatTable
	Tokenizer       port.Tokenizer
	Stemmer         port.Stemmer
	Speller         *analyzer.Speller
	StripDiacritics bool
}

// DefaultResources returns the built-in English resources without a speller.
func DefaultResources() *Resources {
	stop, _ := analyzer.StopwordsFor("english")
	chat, _ := analyzer.ChatWordsFor("english")
	return &Resources{
		Language:  language.English,
		Stopwords: stop,
		ChatWords: chat,
		Tokenizer: analyzer.NewTokenizer(),
		Stemmer:   analyzer.NewPorterStemmer(),
	}
}

// LoadResources builds the resources described by cfg. corpus is used to
// train the speller when spell_correct is configured with train_on_corpus;
// it may be nil otherwise.
func LoadResources(cfg config.CleanConfig, corpus []string) (*Resources, error) {
	res := &Resources{
		Language:        languageTag(cfg.Language),
		Tokenizer:       analyzer.NewTokenizer(),
		StripDiacritics: cfg.StripDiacritics,
	}

	var err error
	if containsStage(cfg.Stages, "remove_stopwords") {
		if cfg.StopwordsFile != "" {
			res.Stopwords, err = analyzer.LoadStopwords(cfg.StopwordsFile)
		} else {
			res.Stopwords, err = analyzer.StopwordsFor(cfg.Language)
		}
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
	}

	if containsStage(cfg.Stages, "chat_conversion") {
		res.ChatWords, err = loadChatWords(cfg)
		if err != nil {
			return nil, fmt.Errorf("load chat words: %w", err)
		}
	}

	res.Stemmer, err = analyzer.NewStemmer(cfg.Stemmer, cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("load stemmer: %w", err)
	}

	if containsStage(cfg.Stages, "spell_correct") {
		res.Speller, err = loadSpeller(cfg.Spell, res.Tokenizer, corpus)
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// loadChatWords falls back to an empty table for languages without a
// built-in one, so chat_conversion becomes a no-op there.
func loadChatWords(cfg config.CleanConfig) (*analyzer.ChatTable, error) {
	if cfg.ChatWordsFile != "" {
		return analyzer.LoadChatWords(cfg.ChatWordsFile)
	}
	table, err := analyzer.ChatWordsFor(cfg.Language)
	if errors.Is(err, analyzer.ErrUnsupportedLanguage) {
		return analyzer.NewChatTable(nil), nil
	}
	return table, err
}

func loadSpeller(cfg config.SpellConfig, tok port.Tokenizer, corpus []string) (*analyzer.Speller, error) {
	if cfg.Dictionary == "" && !cfg.TrainOnCorpus {
		return nil, fmt.Errorf("%w: spell_correct needs a dictionary or train_on_corpus", ErrMissingResource)
	}

	speller := analyzer.NewSpeller(cfg.Depth, cfg.Threshold)
	if cfg.Dictionary != "" {
		if _, err := speller.LoadDictionary(cfg.Dictionary); err != nil {
			return nil, err
		}
	}
	if cfg.TrainOnCorpus {
		for _, text := range corpus {
			speller.Train(tok.Tokenize(strings.ToLower(text)))
		}
	}
	return speller, nil
}

// languageTag maps a config language name to a BCP 47 tag.
func languageTag(name string) language.Tag {
	switch strings.ToLower(name) {
	case "", "english":
		return language.English
	case "french":
		return language.French
	case "german":
		return language.German
	case "spanish":
		return language.Spanish
	case "russian":
		return language.Russian
	case "swedish":
		return language.Swedish
	case "norwegian":
		return language.Norwegian
	case "hungarian":
		return language.Hungarian
	case "turkish":
		return language.Turkish
	}
	if tag, err := language.Parse(name); err == nil {
		return tag
	}
	return language.Und
}

func containsStage(stages []string, name string) bool {
	for _, s := range stages {
		if s == name {
			return true
		}
	}
	return false
}
