package crm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Question is one answered qualification question.
type Question struct {
	Question string  `json:"question" mapstructure:"question"`
	Answer   string  `json:"answer" mapstructure:"answer"`
	Score    float64 `json:"score" mapstructure:"score"`
}

// SaveQualificationResult reports how many rows landed in the qualification
// sheet and the date stamp they share.
type SaveQualificationResult struct {
	Written    int    `json:"rows_written"`
	Date       string `json:"date"`
	ClientName string `json:"client_name"`
}

// ParseQuestions decodes the raw question entries of a tool call. Each entry
// must carry question, answer and a numeric score; anything else is a caller
// error, reported with the offending index and field.
func ParseQuestions(raw []map[string]interface{}) ([]Question, error) {
	const op = "save_qualification"

	if len(raw) == 0 {
		return nil, &ValidationError{Op: op, Field: "questions", Reason: "must not be empty"}
	}
	out := make([]Question, 0, len(raw))
	for i, entry := range raw {
		for _, key := range []string{"question", "answer", "score"} {
			if _, ok := entry[key]; !ok {
				return nil, &ValidationError{
					Op:     op,
					Field:  fmt.Sprintf("questions[%d].%s", i, key),
					Reason: "is required",
				}
			}
		}
		var q Question
		if err := mapstructure.Decode(entry, &q); err != nil {
			return nil, &ValidationError{
				Op:     op,
				Field:  fmt.Sprintf("questions[%d]", i),
				Reason: err.Error(),
			}
		}
		if strings.TrimSpace(q.Question) == "" {
			return nil, &ValidationError{
				Op:     op,
				Field:  fmt.Sprintf("questions[%d].question", i),
				Reason: "must not be empty",
			}
		}
		out = append(out, q)
	}
	return out, nil
}

// SaveQualification appends one dated row per question, in input order, all
// attributed to the same client and day.
//
// A nil clientName falls back to the most recently registered name in the
// client sheet; when that sheet is empty the caller is asked for one
// (NeedsInputError). The date is assigned here, at write time, in the
// configured timezone — never caller-supplied.
//
// Appends are not transactional. When a write fails partway, the result
// still reports how many rows made it; nothing is rolled back.
func (s *Service) SaveQualification(ctx context.Context, questions []Question, clientName *string) (*SaveQualificationResult, error) {
	const op = "save_qualification"

	if s.cfg.QualificationSheet == "" {
		return nil, &ConfigurationError{Op: op, Setting: "qualification_sheet"}
	}
	if len(questions) == 0 {
		return nil, &ValidationError{Op: op, Field: "questions", Reason: "must not be empty"}
	}

	var name string
	switch {
	case clientName == nil:
		resolved, err := s.lastClientName(ctx)
		if err != nil {
			return nil, storeErr(op, err)
		}
		if resolved == "" {
			return nil, &NeedsInputError{Op: op, Field: "client_name", Prompt: "¿A qué cliente corresponde esta calificación?"}
		}
		name = resolved
	default:
		name = strings.TrimSpace(*clientName)
		if name == "" {
			return nil, &ValidationError{Op: op, Field: "client_name", Reason: "must not be empty"}
		}
	}

	date := s.now().In(s.loc).Format("2006-01-02")
	result := &SaveQualificationResult{Date: date, ClientName: name}

	for i, q := range questions {
		row := []string{date, name, q.Question, q.Answer, formatScore(q.Score)}
		if err := s.store.AppendRow(ctx, s.cfg.QualificationSheet, row); err != nil {
			s.logger.Error("qualification append failed",
				"client", name, "index", i, "written", result.Written, "error", err)
			return result, storeErr(op, err)
		}
		result.Written++
	}

	s.logger.Info("qualification saved", "client", name, "rows", result.Written, "date", date)
	return result, nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
