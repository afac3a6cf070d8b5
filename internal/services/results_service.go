package services

import "strconv"

type ResultsStore interface {
	GetSurvey(id string) (*Survey, error)
	FindResponse(surveyID, userID string) (*Response, error)
	ListResponsesBySurvey(surveyID string, limit int) ([]*Response, error)
}

// ResultsService aggregates a survey's responses per question. Every call
// recomputes from the stored response set; there is no incremental state.
type ResultsService struct {
	store ResultsStore
}

func NewResultsService(store ResultsStore) *ResultsService {
	return &ResultsService{store: store}
}

type QuestionResult struct {
	QuestionIndex int    `json:"question_index"`
	QuestionText  string `json:"question_text"`
	QuestionType  string `json:"question_type"`
	Results       any    `json:"results"`
}

type RatingResults struct {
	Average      float64        `json:"average"`
	Distribution map[string]int `json:"distribution"`
}

type TextResults struct {
	Count     int      `json:"count"`
	Responses []string `json:"responses"`
}

type ResultsSummary struct {
	SurveyID          string           `json:"survey_id"`
	Title             string           `json:"title"`
	TotalResponses    int              `json:"total_responses"`
	AggregatedResults []QuestionResult `json:"aggregated_results"`
}

// Summary builds the aggregated view. Owners may always see it; anyone else
// must have a prior response to the survey. Literal text answers are only
// included for owners; other viewers get counts with empty response lists.
func (s *ResultsService) Summary(actor *User, surveyID string) (*ResultsSummary, error) {
	if actor == nil {
		return nil, NewUnauthorizedError("authentication required")
	}
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, ErrSurveyNotFound
	}
	isOwner := actor.Role == RoleOwner
	if !isOwner {
		prior, err := s.store.FindResponse(surveyID, actor.ID)
		if err != nil {
			return nil, err
		}
		if prior == nil {
			return nil, ErrResultsForbidden
		}
	}
	responses, err := s.store.ListResponsesBySurvey(surveyID, ListCap)
	if err != nil {
		return nil, err
	}
	aggregated := make([]QuestionResult, 0, len(sv.Questions))
	for idx, q := range sv.Questions {
		qr := QuestionResult{QuestionIndex: idx, QuestionText: q.Text, QuestionType: q.Type}
		switch q.Type {
		case QuestionSingleChoice, QuestionMultiChoice:
			qr.Results = aggregateChoices(q, idx, responses)
		case QuestionRating:
			qr.Results = aggregateRatings(idx, responses)
		default:
			qr.Results = aggregateTexts(idx, responses, isOwner)
		}
		aggregated = append(aggregated, qr)
	}
	return &ResultsSummary{
		SurveyID:          surveyID,
		Title:             sv.Title,
		TotalResponses:    len(responses),
		AggregatedResults: aggregated,
	}, nil
}

// aggregateChoices counts votes per declared option. Options nobody picked
// stay at zero; answer strings that are not declared options are dropped.
func aggregateChoices(q Question, idx int, responses []*Response) map[string]int {
	counts := make(map[string]int, len(q.Options))
	for _, opt := range q.Options {
		counts[opt] = 0
	}
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.QuestionIndex != idx {
				continue
			}
			switch q.Type {
			case QuestionSingleChoice:
				if a.Answer.Kind == AnswerText {
					if _, ok := counts[a.Answer.Text]; ok {
						counts[a.Answer.Text]++
					}
				}
			case QuestionMultiChoice:
				if a.Answer.Kind == AnswerList {
					for _, opt := range a.Answer.List {
						if _, ok := counts[opt]; ok {
							counts[opt]++
						}
					}
				}
			}
		}
	}
	return counts
}

// aggregateRatings averages the numeric answers and tallies each distinct
// value. Non-numeric bodies are excluded from both, not errors.
func aggregateRatings(idx int, responses []*Response) RatingResults {
	sum := 0.0
	n := 0
	dist := map[string]int{}
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.QuestionIndex != idx || a.Answer.Kind != AnswerNumber {
				continue
			}
			sum += a.Answer.Number
			n++
			dist[formatRating(a.Answer.Number)]++
		}
	}
	avg := 0.0
	if n > 0 {
		avg = sum / float64(n)
	}
	return RatingResults{Average: avg, Distribution: dist}
}

func aggregateTexts(idx int, responses []*Response, includeText bool) TextResults {
	texts := []string{}
	for _, r := range responses {
		for _, a := range r.Answers {
			if a.QuestionIndex != idx || a.Answer.Kind != AnswerText {
				continue
			}
			texts = append(texts, a.Answer.Text)
		}
	}
	out := TextResults{Count: len(texts), Responses: []string{}}
	if includeText {
		out.Responses = texts
	}
	return out
}

// formatRating renders a rating value as a distribution key: "4", "4.5".
func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
