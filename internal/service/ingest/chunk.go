package ingest

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

type Chunk struct {
	Text      string
	TokenSize int
	Index     int
}

type ChunkerConfig struct {
	MaxTokens     int
	OverlapTokens int
}

// DefaultChunkerConfig sizes chunks for short-context embedding models.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxTokens:     400,
		OverlapTokens: 50,
	}
}

// ChunkText splits text into token-bounded chunks on sentence
// boundaries, carrying OverlapTokens of trailing context into the next
// chunk so rules split mid-explanation stay searchable.
func ChunkText(text string, cfg ChunkerConfig) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []Chunk
	var current strings.Builder
	currentTokens := 0
	chunkIndex := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:      strings.TrimSpace(current.String()),
			TokenSize: currentTokens,
			Index:     chunkIndex,
		})
		chunkIndex++
		current.Reset()
		currentTokens = 0
	}

	for i, sentence := range sentences {
		sentenceTokens := countTokens(sentence)

		// A single sentence larger than the budget is sliced by raw
		// token ranges.
		if sentenceTokens > cfg.MaxTokens {
			flush()
			for _, sc := range sliceByTokens(sentence, cfg.MaxTokens) {
				chunks = append(chunks, Chunk{
					Text:      strings.TrimSpace(sc.Text),
					TokenSize: sc.TokenSize,
					Index:     chunkIndex,
				})
				chunkIndex++
			}
			continue
		}

		if currentTokens+sentenceTokens > cfg.MaxTokens && current.Len() > 0 {
			flush()

			overlap := overlapFromSentences(sentences, i, cfg.OverlapTokens)
			current.WriteString(overlap)
			currentTokens = countTokens(overlap)
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentTokens += sentenceTokens
	}

	flush()
	return chunks
}

// sliceByTokens splits text by encoding it and cutting the token array.
func sliceByTokens(text string, maxTokens int) []Chunk {
	enc := getTokenizer()
	tokens := enc.Encode(text, nil, nil)

	var chunks []Chunk
	for i := 0; i < len(tokens); i += maxTokens {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		part := tokens[i:end]
		chunks = append(chunks, Chunk{
			Text:      enc.Decode(part),
			TokenSize: len(part),
		})
	}
	return chunks
}

// splitSentences breaks text into sentences, paragraph by paragraph.
func splitSentences(text string) []string {
	sentenceEnders := map[rune]bool{
		'.': true, '!': true, '?': true, '…': true,
	}

	var sentences []string
	for _, para := range splitParagraphs(text) {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)

			if sentenceEnders[r] {
				if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
					if s := strings.TrimSpace(current.String()); s != "" {
						sentences = append(sentences, s)
					}
					current.Reset()
				}
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 && text != "" {
		return []string{text}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n\n")

	var result []string
	for _, p := range parts {
		// Drop soft wraps inside a paragraph.
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

func countTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}

func overlapFromSentences(sentences []string, currentIdx, targetTokens int) string {
	if currentIdx == 0 {
		return ""
	}

	var overlap []string
	tokens := 0
	for i := currentIdx - 1; i >= 0 && tokens < targetTokens; i-- {
		overlap = append([]string{sentences[i]}, overlap...)
		tokens += countTokens(sentences[i])
	}
	return strings.Join(overlap, " ")
}
