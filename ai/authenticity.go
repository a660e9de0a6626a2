package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"civicguard-be/models"
)

// Classifier judges whether an evidence photo is genuine.
type Classifier interface {
	Classify(ctx context.Context, imageData, mimeType string) (*models.ImageAnalysis, error)
}

const classifierInstruction = `Analyze this image for signs of digital manipulation or AI generation. Classify it as exactly one of "Authentic", "Manipulated" or "AI-Generated". Return ONLY a JSON object with keys "status" (string), "confidence" (number between 0 and 1) and "reasoning" (one short sentence).`

type genaiClassifier struct {
	client *Client
}

// NewClassifier builds the production authenticity classifier.
func NewClassifier(client *Client) Classifier {
	return &genaiClassifier{client: client}
}

func (c *genaiClassifier) Classify(ctx context.Context, imageData, mimeType string) (*models.ImageAnalysis, error) {
	text, err := c.client.GenerateContent(ctx, GenerateRequest{
		Parts: []Part{
			{InlineData: &InlineData{MimeType: mimeType, Data: imageData}},
			{Text: classifierInstruction},
		},
		JSONResponse: true,
	})
	if err != nil {
		return nil, err
	}

	var result models.ImageAnalysis
	if err := json.Unmarshal([]byte(stripFences(text)), &result); err != nil {
		return nil, fmt.Errorf("classifier returned malformed JSON: %w", err)
	}
	switch result.Status {
	case models.Authentic, models.Manipulated, models.AIGenerated:
	default:
		return nil, fmt.Errorf("classifier returned unknown status %q", result.Status)
	}
	return &result, nil
}

// Verify classifies an image, retrying one transient failure, and never
// leaves the caller pending: when the service keeps failing it settles on a
// terminal Unverified verdict.
func Verify(ctx context.Context, c Classifier, imageData, mimeType string) models.ImageAnalysis {
	result, err := c.Classify(ctx, imageData, mimeType)
	if err != nil {
		logrus.WithError(err).Warn("image verification failed, retrying once")
		result, err = c.Classify(ctx, imageData, mimeType)
	}
	if err != nil {
		logrus.WithError(err).Warn("image verification failed after retry")
		return models.ImageAnalysis{
			Status:     models.Unverified,
			Confidence: 0,
			Reasoning:  "Verification service unavailable.",
		}
	}
	return *result
}
