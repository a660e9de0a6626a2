package ai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const assistantInstruction = `You are CivicGuard Assistant, a helpful guide for citizens of Coimbatore district. Answer questions about reporting civic issues, tracking complaints, local governance and panchayat services. Keep answers short, practical and polite. If a question is outside civic matters, gently steer the citizen back.`

const assistantMaxTokens = 1024

// Assistant answers free-text civic questions for citizens.
type Assistant struct {
	client *openai.Client
	model  string
}

func NewAssistant() *Assistant {
	model := os.Getenv("ASSISTANT_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Assistant{
		client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		model:  model,
	}
}

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Chat sends the conversation so far and returns the assistant's reply.
func (a *Assistant) Chat(ctx context.Context, history []ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: assistantInstruction,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	completion, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: assistantMaxTokens,
		Messages:  messages,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("assistant returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
