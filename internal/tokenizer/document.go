package tokenizer

import (
	"errors"
	"fmt"
)

// DocumentCount is the token estimate of one assembled document.
type DocumentCount struct {
	Tokens  int
	Encoder string
}

var errNilCounter = errors.New("nil tokenizer counter")

// CountDocument estimates the tokens of document with counter.
func CountDocument(counter Counter, document string) (DocumentCount, error) {
	if counter == nil {
		return DocumentCount{}, errNilCounter
	}
	tokens, err := counter.CountString(document)
	if err != nil {
		return DocumentCount{}, fmt.Errorf("count document tokens with %s: %w", counter.Name(), err)
	}
	return DocumentCount{Tokens: tokens, Encoder: counter.Name()}, nil
}
