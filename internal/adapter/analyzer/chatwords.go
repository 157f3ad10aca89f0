package analyzer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// englishChatWords maps chat abbreviations to their expansions.
// Expansions may contain punctuation; they are not cleaned again.
var englishChatWords = map[string]string{
	"afaik": "as far as i know", "afk": "away from keyboard", "asap": "as soon as possible",
	"atk": "at the keyboard", "atm": "at the moment", "a3": "anytime, anywhere, anyplace",
	"bak": "back at keyboard", "bbl": "be back later", "bbs": "be back soon",
	"bfn": "bye for now", "b4n": "bye for now", "brb": "be right back",
	"brt": "be right there", "btw": "by the way", "b4": "before", "cu": "see you",
	"cul8r": "see you later", "cya": "see you", "faq": "frequently asked questions",
	"fc": "fingers crossed", "fwiw": "for what it's worth", "fyi": "for your information",
	"gal": "get a life", "gg": "good game", "gn": "good night",
	"gmta": "great minds think alike", "gr8": "great!", "g9": "genius", "ic": "i see",
	"icq": "i seek you (also a chat program)", "ilu": "i love you",
	"imho": "in my honest/humble opinion", "imo": "in my opinion", "iow": "in other words",
	"irl": "in real life", "ldr": "long distance relationship", "lmao": "laugh my ass off",
	"lol": "laughing out loud", "ltns": "long time no see", "l8r": "later",
	"mte": "my thoughts exactly", "m8": "mate", "nrn": "no reply necessary",
	"oic": "oh i see", "pita": "pain in the ass", "prt": "party",
	"prw": "parents are watching", "qpsa": "que pasa?",
	"rofl": "rolling on the floor laughing", "roflol": "rolling on the floor laughing out loud",
	"rotflmao": "rolling on the floor laughing my ass off", "sk8": "skate",
	"stats": "your sex and age", "asl": "age, sex, location", "thx": "thank you",
	"ttfn": "ta-ta for now", "ttyl": "talk to you later", "u": "you", "u2": "you too",
	"u4e": "yours for ever", "wb": "welcome back", "wtf": "what the fuck",
	"wtg": "way to go", "wuf": "where are you from?", "w8": "wait",
	"7k": "sick:-d laugher", "tfw": "that feeling when", "mfw": "my face when",
	"mrw": "my reaction when", "ifyp": "i feel your pain", "tntl": "trying not to laugh",
	"jk": "just kidding", "idc": "i do not care", "ily": "i love you", "imu": "i miss you",
	"adih": "another day in hell", "zzz": "sleeping, bored, tired",
	"wywh": "wish you were here", "time": "tears in my eyes", "bae": "before anyone else",
	"fimh": "forever in my heart", "bsaaw": "big smile and a wink",
	"bwl": "bursting with laughter", "bff": "best friends forever",
	"csl": "can't stop laughing", "math": "mathematics", "rn": "right now",
	"r": "are", "ur": "your", "pls": "please", "plz": "please", "ty": "thank you",
	"idk": "i do not know", "omg": "oh my god", "tbh": "to be honest",
	"smh": "shaking my head", "nvm": "never mind",
}

// ChatTable is a case-insensitive abbreviation lookup.
type ChatTable struct {
	words map[string]string
}

// NewChatTable builds a table from abbreviation -> expansion pairs.
func NewChatTable(words map[string]string) *ChatTable {
	t := &ChatTable{words: make(map[string]string, len(words))}
	for k, v := range words {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		t.words[k] = v
	}
	return t
}

// ChatWordsFor returns the built-in abbreviation table for language.
func ChatWordsFor(language string) (*ChatTable, error) {
	switch strings.ToLower(language) {
	case "", "english", "en":
		return NewChatTable(englishChatWords), nil
	default:
		return nil, fmt.Errorf("%w: no built-in chat words for %q", ErrUnsupportedLanguage, language)
	}
}

// Lookup returns the expansion for word, ignoring case.
func (t *ChatTable) Lookup(word string) (string, bool) {
	exp, ok := t.words[strings.ToLower(word)]
	return exp, ok
}

// Len returns the number of abbreviations.
func (t *ChatTable) Len() int {
	return len(t.words)
}

type chatWordsFile struct {
	Words map[string]string `yaml:"words"`
}

// LoadChatWords loads an abbreviation table from a YAML file with a
// top-level "words" mapping.
func LoadChatWords(path string) (*ChatTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cw chatWordsFile
	if err := yaml.Unmarshal(data, &cw); err != nil {
		return nil, fmt.Errorf("parse chat words %s: %w", path, err)
	}

	return NewChatTable(cw.Words), nil
}
