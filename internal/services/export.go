package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"
)

// ExportResponsesCSV renders a survey's responses in long format: one row
// per (response, answer) pair. Answer bodies are serialized back to their
// JSON form so list and numeric answers survive the flattening.
func ExportResponsesCSV(responses []*Response) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"response_id", "user_name", "question_index", "answer", "submitted_at"})
	for _, r := range responses {
		for _, a := range r.Answers {
			rec := []string{
				r.ID,
				r.UserName,
				strconv.Itoa(a.QuestionIndex),
				answerCell(a.Answer),
				r.SubmittedAt.Format(time.RFC3339),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func answerCell(v AnswerValue) string {
	switch v.Kind {
	case AnswerText:
		return v.Text
	case AnswerNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case AnswerList:
		b, _ := json.Marshal(v.List)
		return string(b)
	default:
		return ""
	}
}
