// Package openai adapts a chat-completion model to the annotator port.
// The model is asked for strict JSON; anything it returns beyond that is
// rejected and surfaces as an annotation error, which the interpreter
// absorbs through its regex fallbacks.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"spendlog/internal/annotate"
)

const (
	DefaultModel   = openai.GPT4oMini
	requestTimeout = 30 * time.Second
)

const systemPrompt = `You tokenize expense messages and label entity spans.
Reply with JSON only, no prose, in this exact shape:
{"tokens":[{"text":"...","tag":"..."}],"entities":[{"label":"DATE|MONEY","text":"..."}]}
Tags use the Penn Treebank set. Entity text joins its tokens with single spaces.`

type Annotator struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) (*Annotator, error) {
	if apiKey == "" {
		return nil, errors.New("openai annotator: missing API key")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Annotator{client: openai.NewClient(apiKey), model: model}, nil
}

type wireAnnotation struct {
	Tokens []struct {
		Text string `json:"text"`
		Tag  string `json:"tag"`
	} `json:"tokens"`
	Entities []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	} `json:"entities"`
}

func (a *Annotator) Annotate(ctx context.Context, text string) (annotate.Annotation, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return annotate.Annotation{}, fmt.Errorf("annotate via openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return annotate.Annotation{}, errors.New("openai returned no choices")
	}

	return decode(resp.Choices[0].Message.Content)
}

// decode parses the model reply, tolerating markdown code fences around
// the JSON body.
func decode(content string) (annotate.Annotation, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var wire wireAnnotation
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &wire); err != nil {
		return annotate.Annotation{}, fmt.Errorf("decode model reply: %w", err)
	}

	var ann annotate.Annotation
	for _, t := range wire.Tokens {
		ann.Tokens = append(ann.Tokens, annotate.Token{Text: t.Text, Tag: t.Tag})
	}
	for _, e := range wire.Entities {
		ann.Entities = append(ann.Entities, annotate.Entity{Label: strings.ToUpper(e.Label), Text: e.Text})
	}
	return ann, nil
}
