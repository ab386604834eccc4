package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/Morwran/yagpt"
)

var errEmptyYandexResponse = errors.New("yagpt returned no alternatives")

// YandexClient serves both request shapes through YandexGPT chat. The client
// library exposes no sampling options, so temperatures are not applied.
type YandexClient struct {
	ya       yagpt.YaGPTFace
	iamToken string
}

// NewYandex exchanges the OAuth token for an IAM token once; the IAM token is
// reused for the whole run.
func NewYandex(oauthToken, folderID string) (*YandexClient, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("yandex iam: %w", err)
	}
	token, err := iam.Create()
	if err != nil {
		return nil, fmt.Errorf("yandex iam token: %w", err)
	}
	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("yagpt folder %q: %w", folderID, err)
	}
	return &YandexClient{ya: ya, iamToken: token.IamToken}, nil
}

func (c *YandexClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	conv := make([]yagpt.Message, len(messages))
	for i, m := range messages {
		conv[i] = yagpt.Message{Role: m.Role, Content: m.Content}
	}
	return c.send(ctx, conv)
}

func (c *YandexClient) Complete(ctx context.Context, prompt string, _ CompletionOptions) (Response, error) {
	return c.send(ctx, []yagpt.Message{{Role: RoleUser, Content: prompt}})
}

func (c *YandexClient) send(ctx context.Context, conv []yagpt.Message) (Response, error) {
	resp, err := c.ya.CompletionWithCtx(ctx, c.iamToken, conv)
	if err != nil {
		return Response{}, fmt.Errorf("yagpt completion: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return Response{}, errEmptyYandexResponse
	}
	return Response{
		Content:          resp.Alternatives[0].Message.Content,
		Model:            yagpt.YaModelLite,
		PromptTokens:     int(resp.Usage.InputTextTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}, nil
}
