package agent

import (
	"strings"

	"civicguard-be/models"
)

var categoryOptions = []string{
	string(models.Roads),
	string(models.Waste),
	string(models.Water),
	string(models.Electricity),
	string(models.PublicInfrastructure),
	string(models.Other),
}

var urgencyOptions = []string{
	string(models.UrgencyLow),
	string(models.UrgencyMedium),
	string(models.UrgencyHigh),
}

// BestMatch resolves a spoken phrase against a list of options. Exact
// case-insensitive matches win over substring matches. The returned string
// is the canonical option, not the query.
func BestMatch(query string, options []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, opt := range options {
		if strings.ToLower(opt) == q {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt), q) {
			return opt, true
		}
	}
	return "", false
}

// requiresNonEmpty reports whether a stage refuses a blank answer.
func requiresNonEmpty(s Stage) bool {
	switch s {
	case StageStreet, StageTitle, StageDescription:
		return true
	}
	return false
}

// freeTextStage reports whether a stage takes arbitrary text rather than a
// choice from a fixed option list.
func freeTextStage(s Stage) bool {
	switch s {
	case StageStreet, StageLandmark, StageTitle, StageDescription:
		return true
	}
	return false
}

// nextStage returns the stage after s in the question order. Evidence is a
// dead end for plain answers, it only leaves via summary generation.
func nextStage(s Stage) Stage {
	i := stageIndex(s)
	if i < 0 || i >= len(stageOrder)-1 {
		return s
	}
	return stageOrder[i+1]
}
