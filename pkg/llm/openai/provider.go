package openai

import (
	"context"
	"fmt"
	"strings"

	"baristabox-be/pkg/llm"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

type OpenAIProvider struct {
	client    openai.Client
	ModelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		ModelName: modelName,
	}
}

func (o *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Resolve(opts...)
	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	system, turns := llm.SplitSystem(history)
	params := responses.ResponseNewParams{
		Model:           model,
		MaxOutputTokens: openai.Int(int64(options.MaxTokens)),
		Temperature:     openai.Float(options.Temperature),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(flatten(turns))},
	}
	if system != "" {
		params.Instructions = openai.String(system)
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses call failed: %w", err)
	}
	return resp.OutputText(), nil
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// flatten renders a multi-turn history as a single input; a lone user turn
// is passed through untouched.
func flatten(turns []llm.Message) string {
	if len(turns) == 1 && turns[0].Role == llm.RoleUser {
		return turns[0].Content
	}
	var sb strings.Builder
	for _, msg := range turns {
		fmt.Fprintf(&sb, "%s: %s\n\n", msg.Role, msg.Content)
	}
	return strings.TrimSpace(sb.String())
}
