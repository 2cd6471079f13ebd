package segment

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkoukk/tiktoken-go"
)

// Chunk is a contiguous slice of the source text handed to annotators.
// Chunks cover the text exactly with no overlap and no gaps.
type Chunk struct {
	ID    string
	Index int
	Text  string
}

// Split divides text into chunks of at most size characters. Splitting is
// purely positional; annotators are called independently per chunk and
// results are merged without cross-chunk context. The final chunk may be
// shorter than size.
func Split(text string, size int) ([]Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	chunks := make([]Chunk, 0, (len(runes)+size-1)/size)

	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))

		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, Chunk{
			ID:    id,
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
	}

	return chunks, nil
}

// Join concatenates chunks back into the original text.
func Join(chunks []Chunk) string {
	var sb strings.Builder
	for _, chunk := range chunks {
		sb.WriteString(chunk.Text)
	}
	return sb.String()
}

// TokenCount returns the number of tokens text encodes to under the given
// tiktoken encoding. Used to warn when a chunk exceeds an annotator's
// input window.
func TokenCount(encoder string, text string) (int, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
