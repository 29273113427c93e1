package report

import (
	"encoding/json"
	"fmt"

	"github.com/suporteware/chatminer/internal/aggregate"
)

// TrainingIssue is one entry of the machine-readable export.
type TrainingIssue struct {
	Issue     string   `json:"issue"`
	Solutions []string `json:"solutions"`
	Resolved  bool     `json:"resolved"`
}

// TrainingData builds the category → issues mapping used as training and
// reference data. Every resolved issue is exported, not just the report's
// capped exemplars; categories with no resolved issues are omitted.
func TrainingData(rep *aggregate.Report) map[string][]TrainingIssue {
	out := make(map[string][]TrainingIssue)
	for _, cat := range rep.Categories {
		for _, issue := range cat.ResolvedIssues {
			if !issue.Resolved {
				continue
			}
			entry := TrainingIssue{Issue: issue.Text, Resolved: true}
			for _, sol := range issue.Solutions {
				entry.Solutions = append(entry.Solutions, sol.Text)
			}
			out[cat.Tag] = append(out[cat.Tag], entry)
		}
	}
	return out
}

// TrainingJSON renders the export as indented JSON, ready to write as a
// single file.
func TrainingJSON(rep *aggregate.Report) ([]byte, error) {
	data, err := json.MarshalIndent(TrainingData(rep), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal training data: %w", err)
	}
	return data, nil
}
