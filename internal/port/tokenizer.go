package port

type Tokenizer interface {
	Tokenize(text string) []string
}

type Stemmer interface {
	Stem(word string) string
}
