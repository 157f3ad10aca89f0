package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// URLPattern matches the URLs removed by the remove_url stage.
var URLPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// Punctuation is the ASCII punctuation set replaced by remove_punctuation.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var charReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
	"\u00a0", " ",
	"`", "'",
)

func stripHTML(_ *Resources) Stage {
	return StageFunc("strip_html", func(text string) string {
		var b strings.Builder
		z := html.NewTokenizer(strings.NewReader(text))
		skip := 0
		for {
			switch z.Next() {
			case html.ErrorToken:
				return strings.TrimSpace(b.String())
			case html.TextToken:
				if skip == 0 {
					b.Write(z.Text())
				}
			case html.StartTagToken, html.SelfClosingTagToken:
				name, _ := z.TagName()
				switch atom.Lookup(name) {
				case atom.Script, atom.Style:
					skip++
				case atom.Br, atom.P, atom.Div, atom.Li:
					b.WriteByte(' ')
				}
			case html.EndTagToken:
				name, _ := z.TagName()
				switch atom.Lookup(name) {
				case atom.Script, atom.Style:
					if skip > 0 {
						skip--
					}
				}
			}
		}
	})
}

func lowercase(res *Resources) Stage {
	tag := res.Language
	return StageFunc("lowercase", func(text string) string {
		// A Caser is stateful, so each call gets its own.
		return cases.Lower(tag).String(text)
	})
}

func removeURL(_ *Resources) Stage {
	return StageFunc("remove_url", func(text string) string {
		return URLPattern.ReplaceAllString(text, "")
	})
}

func demojize(_ *Resources) Stage {
	return StageFunc("demojize", func(text string) string {
		if !gomoji.ContainsEmoji(text) {
			return text
		}

		found := gomoji.FindAll(text)
		sort.SliceStable(found, func(i, j int) bool {
			return len(found[i].Character) > len(found[j].Character)
		})

		pairs := make([]string, 0, len(found)*2)
		for _, e := range found {
			if isASCII(e.Character) || e.Slug == "" {
				continue
			}
			pairs = append(pairs, e.Character, ":"+strings.ReplaceAll(e.Slug, "-", "_")+":")
		}
		if len(pairs) == 0 {
			return text
		}
		return strings.NewReplacer(pairs...).Replace(text)
	})
}

func normalizeUnicode(res *Resources) Stage {
	strip := res.StripDiacritics
	return StageFunc("normalize_unicode", func(text string) string {
		var t transform.Transformer = norm.NFKD
		if strip {
			t = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
		}
		out, _, err := transform.String(t, text)
		if err != nil {
			out = norm.NFKD.String(text)
		}
		return charReplacer.Replace(out)
	})
}

func removePunctuation(_ *Resources) Stage {
	return StageFunc("remove_punctuation", func(text string) string {
		return strings.Map(func(r rune) rune {
			if r <= unicode.MaxASCII && strings.ContainsRune(Punctuation, r) {
				return ' '
			}
			return r
		}, text)
	})
}

func chatConversion(res *Resources) Stage {
	table := res.ChatWords
	return StageFunc("chat_conversion", func(text string) string {
		return replaceWords(text, func(word string) string {
			if exp, ok := table.Lookup(word); ok {
				return exp
			}
			return word
		})
	})
}

func spellCorrect(res *Resources) Stage {
	speller := res.Speller
	return StageFunc("spell_correct", func(text string) string {
		return replaceWords(text, func(word string) string {
			if !isLetters(word) {
				return word
			}
			return speller.Correct(word)
		})
	})
}

func removeStopwords(res *Resources) Stage {
	stop := res.Stopwords
	return StageFunc("remove_stopwords", func(text string) string {
		words := strings.Fields(text)
		kept := words[:0]
		for _, w := range words {
			if stop.IsStop(w) {
				continue
			}
			kept = append(kept, w)
		}
		return strings.Join(kept, " ")
	})
}

func tokenize(res *Resources) Stage {
	tok := res.Tokenizer
	return StageFunc("tokenize", func(text string) string {
		return strings.Join(tok.Tokenize(text), " ")
	})
}

func stem(res *Resources) Stage {
	stemmer := res.Stemmer
	return StageFunc("stem", func(text string) string {
		tokens := strings.Fields(text)
		for i, t := range tokens {
			tokens[i] = stemmer.Stem(t)
		}
		return strings.Join(tokens, " ")
	})
}

// replaceWords calls fn for every maximal run of letters, digits,
// combining marks and underscores, leaving everything between runs intact.
func replaceWords(text string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(text))

	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(fn(text[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(fn(text[start:]))
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '_'
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
