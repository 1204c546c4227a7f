package importer

import (
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

// Splitter breaks paragraphs into sentences. Nil splitter keeps paragraphs
// whole.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

func NewSplitter(log *zap.Logger) *Splitter {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentences tokenizer data, turning off sentence splitting", zap.Error(err))
		return nil
	}
	return &Splitter{tokenizer}
}

// Split returns slice of sentences, concatenation of which gives back the
// input.
func (s *Splitter) Split(in string) []string {
	var sentences []string
	if s == nil {
		return append(sentences, in)
	}

	for _, sentence := range s.Tokenize(in) {
		sentences = append(sentences, sentence.Text)
	}

	// Tokenizer attaches spaces trailing a sentence to the next one, move
	// them back so every chunk starts with a printable character.
	for i := range len(sentences) - 1 {
		for idx, sym := range sentences[i+1] {
			if !unicode.IsSpace(sym) {
				sentences[i] = sentences[i] + sentences[i+1][0:idx]
				sentences[i+1] = sentences[i+1][idx:]
				break
			}
		}
	}
	return sentences
}

// Pack splits paragraph longer than limit runes into pieces no longer than
// limit, cutting at sentence boundaries where possible and at word
// boundaries otherwise.
func (s *Splitter) Pack(paragraph string, limit int) []string {
	if limit <= 0 || runeLen(paragraph) <= limit {
		return []string{paragraph}
	}

	var (
		out     []string
		current strings.Builder
	)
	flush := func() {
		if t := strings.TrimSpace(current.String()); t != "" {
			out = append(out, t)
		}
		current.Reset()
	}

	for _, sentence := range s.Split(paragraph) {
		for _, piece := range hardSplit(sentence, limit) {
			if runeLen(current.String())+runeLen(piece) > limit {
				flush()
			}
			current.WriteString(piece)
		}
	}
	flush()
	return out
}

// hardSplit cuts text longer than limit at whitespace, words longer than
// limit are cut as is.
func hardSplit(text string, limit int) []string {
	if runeLen(text) <= limit {
		return []string{text}
	}

	var (
		out     []string
		current []rune
	)
	for _, word := range strings.SplitAfter(text, " ") {
		w := []rune(word)
		for len(w) > limit {
			if len(current) > 0 {
				out = append(out, string(current))
				current = current[:0]
			}
			out = append(out, string(w[:limit]))
			w = w[limit:]
		}
		if len(current)+len(w) > limit {
			out = append(out, string(current))
			current = current[:0]
		}
		current = append(current, w...)
	}
	if len(current) > 0 {
		out = append(out, string(current))
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
