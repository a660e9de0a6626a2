package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"civicguard-be/models"
)

// Analyzer extracts the emotional tone of a reporter's voice note.
type Analyzer interface {
	Analyze(ctx context.Context, audioData, mimeType string) (*models.EmotionAnalysis, error)
}

const emotionInstruction = `Listen to this audio of a citizen describing a civic issue. Assess their emotional state. Return ONLY a JSON object with keys "sentiment" (one of "Distressed", "Frustrated", "Concerned", "Neutral", "Calm") and "urgencyScore" (integer from 1 to 10 where 10 means an emergency).`

type genaiAnalyzer struct {
	client *Client
}

// NewAnalyzer builds the production voice emotion analyzer.
func NewAnalyzer(client *Client) Analyzer {
	return &genaiAnalyzer{client: client}
}

func (a *genaiAnalyzer) Analyze(ctx context.Context, audioData, mimeType string) (*models.EmotionAnalysis, error) {
	text, err := a.client.GenerateContent(ctx, GenerateRequest{
		Parts: []Part{
			{InlineData: &InlineData{MimeType: mimeType, Data: audioData}},
			{Text: emotionInstruction},
		},
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	var result models.EmotionAnalysis
	if err := json.Unmarshal([]byte(stripFences(text)), &result); err != nil {
		return nil, fmt.Errorf("emotion analyzer returned malformed JSON: %w", err)
	}
	if result.UrgencyScore < 1 {
		result.UrgencyScore = 1
	}
	if result.UrgencyScore > 10 {
		result.UrgencyScore = 10
	}
	return &result, nil
}
