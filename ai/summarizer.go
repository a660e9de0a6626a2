package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

// StructuredReport is the fixed schema the summarization service must
// return. A response that does not parse into it is a hard failure of the
// processing step.
type StructuredReport struct {
	ReporterDetails            string `json:"reporterDetails"`
	IssueDescription           string `json:"issueDescription"`
	District                   string `json:"district"`
	Panchayat                  string `json:"panchayat"`
	Village                    string `json:"village"`
	Street                     string `json:"street"`
	LocationDetails            string `json:"locationDetails"`
	DateTime                   string `json:"dateTime"`
	AffectedPeopleCommunity    string `json:"affectedPeopleCommunity"`
	UrgencyLevel               string `json:"urgencyLevel"`
	FinalSummaryRecommendation string `json:"finalSummaryRecommendation"`
}

// Summarizer converts a raw report text into the structured official
// summary.
type Summarizer interface {
	Summarize(ctx context.Context, reportText string) (*StructuredReport, error)
}

const summarizerInstruction = `You are an AI assistant for a civic reporting app. Your task is to process a user's raw text report about a local issue and convert it into a structured, official summary. You MUST return ONLY a JSON object with the following exact schema: {"reporterDetails": "string", "issueDescription": "string", "district": "string", "panchayat": "string", "village": "string", "street": "string", "locationDetails": "string", "dateTime": "string", "affectedPeopleCommunity": "string", "urgencyLevel": "'Low' | 'Medium' | 'High'", "finalSummaryRecommendation": "string"}. Use the user's input to fill these fields. For 'reporterDetails', combine the provided contact info or state 'Not provided'. For 'dateTime', use the current date and time in a readable format. For 'affectedPeopleCommunity', infer from the description (e.g., 'Local residents', 'Commuters'). For 'urgencyLevel', use the user's selection but you may upgrade it to 'High' if the description contains keywords like 'dangerous', 'hazard', 'urgent', 'fire', 'accident'. For 'finalSummaryRecommendation', write a concise, one-sentence summary of the issue and a recommended action. Be professional and clear.`

type genaiSummarizer struct {
	client *Client
}

// NewSummarizer builds the production summarizer on the content client.
func NewSummarizer(client *Client) Summarizer {
	return &genaiSummarizer{client: client}
}

func (s *genaiSummarizer) Summarize(ctx context.Context, reportText string) (*StructuredReport, error) {
	text, err := s.client.GenerateContent(ctx, GenerateRequest{
		SystemInstruction: summarizerInstruction,
		Parts:             []Part{{Text: reportText}},
		JSONResponse:      true,
	})
	if err != nil {
		return nil, err
	}

	var report StructuredReport
	if err := json.Unmarshal([]byte(stripFences(text)), &report); err != nil {
		return nil, fmt.Errorf("summarization returned malformed JSON: %w", err)
	}
	return &report, nil
}
