// Package gemini counts tokens in synced pages with the local Gemini
// tokenizer, so endpoint sizes can be reported without network calls.
package gemini

import (
	"context"

	"github.com/TheOne1006/kbsite"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultModel is used when no tokenizer model is configured.
const DefaultModel = "gemini-2.0-flash"

var _ kbsite.TokenCounter = (*TokenCounter)(nil)

// TokenCounter implements kbsite.TokenCounter offline. The vocabulary is
// downloaded and cached by the tokenizer package on first use.
type TokenCounter struct {
	model string
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model, or DefaultModel when
// model is empty. Unknown models return EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, kbsite.Errorf(kbsite.EINVALID, "tokenizer %q: %v", model, err)
	}
	return &TokenCounter{model: model, local: local}, nil
}

// Model returns the tokenizer model name.
func (tc *TokenCounter) Model() string { return tc.model }

// CountTokens returns the number of tokens text encodes to as one user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	turn := genai.NewContentFromText(text, "user")
	res, err := tc.local.CountTokens([]*genai.Content{turn}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
