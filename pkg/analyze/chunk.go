package analyze

import "strings"

// DefaultChunkSize is the chunk character limit used when none is configured.
const DefaultChunkSize = 4000

// Chunk is a sentence-aligned slice of the normalized document, sent to
// the extraction capability as one unit. Index preserves document order.
type Chunk struct {
	Index int
	Text  string
}

// SplitChunks splits normalized text into sentence-aligned chunks of at
// most limit characters. Sentences accumulate greedily into a buffer;
// whenever appending the next sentence would exceed the limit, the buffer
// is flushed and a new one starts with that sentence. The final non-empty
// buffer is always flushed. A single sentence longer than the limit
// becomes its own oversized chunk; it is not split further.
func SplitChunks(text string, limit int) []Chunk {
	if limit <= 0 {
		limit = DefaultChunkSize
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var (
		chunks []Chunk
		buf    strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: s})
		}
		buf.Reset()
	}

	for _, sentence := range sentences {
		add := len(sentence)
		if buf.Len() > 0 {
			add++ // joining space
		}
		if buf.Len() > 0 && buf.Len()+add > limit {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(sentence)
	}
	flush()

	return chunks
}

// splitSentences cuts text at terminal punctuation (. ! ?) followed by a
// whitespace boundary. If no boundary is found the whole text is one
// sentence.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(text) && !isSpace(text[i+1]) {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
