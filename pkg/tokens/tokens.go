// Package tokens provides prompt size measurement. Estimate is the
// deterministic word-count approximation used for context budgeting (exact
// tokenization is backend-specific and unavailable before a model loads);
// Count uses tiktoken when its encoding data is available and falls back to
// Estimate when it is not.
package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encoder     *tiktoken.Tiktoken
	encoderOnce sync.Once
	encoderErr  error
)

func initEncoder() error {
	encoderOnce.Do(func() {
		encoder, encoderErr = tiktoken.GetEncoding("cl100k_base")
	})
	return encoderErr
}

// Estimate approximates the token count of text by whitespace-delimited
// word count. Deterministic and offline.
func Estimate(text string) int {
	return len(strings.Fields(text))
}

// Count returns the cl100k_base token count of text, falling back to
// Estimate when the encoder cannot be initialized (e.g. offline with no
// cached encoding data).
func Count(text string) int {
	if err := initEncoder(); err != nil {
		return Estimate(text)
	}
	return len(encoder.Encode(text, nil, nil))
}
