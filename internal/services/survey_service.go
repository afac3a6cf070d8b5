package services

import (
	"strings"
	"time"
)

type SurveyStore interface {
	AddSurvey(sv *Survey) error
	GetSurvey(id string) (*Survey, error)
	ListSurveys(limit int) ([]*Survey, error)
	DeleteSurvey(id string) error
	FindResponse(surveyID, userID string) (*Response, error)
	DeleteResponsesBySurvey(surveyID string) (int, error)
}

type SurveyService struct {
	store SurveyStore
	now   func() time.Time
	idGen func() string
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// SurveySummary is the list view: no question bodies, plus per-caller flags.
type SurveySummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ResponseCount int        `json:"response_count"`
	Featured      bool       `json:"featured"`
	HasAnswered   bool       `json:"has_answered"`
	IsClosed      bool       `json:"is_closed"`
}

// SurveyDetail carries the full question sequence for taking the survey.
type SurveyDetail struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Questions     []Question `json:"questions"`
	CreatedAt     time.Time  `json:"created_at"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ResponseCount int        `json:"response_count"`
	Featured      bool       `json:"featured"`
	HasAnswered   bool       `json:"has_answered"`
	IsClosed      bool       `json:"is_closed"`
}

func (s *SurveyService) Create(actor *User, title, description string, questions []Question, endDate *time.Time) (*Survey, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	if strings.TrimSpace(title) == "" {
		return nil, NewInvalidError("title required")
	}
	if len(questions) == 0 {
		return nil, NewInvalidError("at least one question required")
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)
	for i := range qs {
		if strings.TrimSpace(qs[i].Text) == "" {
			return nil, NewInvalidError("question text required")
		}
		if qs[i].Type == QuestionRating && qs[i].MaxRating == 0 {
			qs[i].MaxRating = 5
		}
	}
	sv := &Survey{
		ID:          s.idGen(),
		Title:       title,
		Description: description,
		Questions:   qs,
		CreatedBy:   actor.ID,
		CreatedAt:   s.now(),
		EndDate:     endDate,
	}
	if err := s.store.AddSurvey(sv); err != nil {
		return nil, err
	}
	return sv, nil
}

// List returns survey summaries newest first, with has_answered computed for
// the calling user.
func (s *SurveyService) List(actor *User) ([]SurveySummary, error) {
	svs, err := s.store.ListSurveys(ListCap)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]SurveySummary, 0, len(svs))
	for _, sv := range svs {
		answered, err := s.hasAnswered(sv.ID, actor)
		if err != nil {
			return nil, err
		}
		out = append(out, SurveySummary{
			ID:            sv.ID,
			Title:         sv.Title,
			Description:   sv.Description,
			CreatedAt:     sv.CreatedAt,
			EndDate:       sv.EndDate,
			ResponseCount: sv.ResponseCount,
			Featured:      sv.Featured,
			HasAnswered:   answered,
			IsClosed:      sv.Closed(now),
		})
	}
	return out, nil
}

func (s *SurveyService) Get(actor *User, id string) (*SurveyDetail, error) {
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, ErrSurveyNotFound
	}
	answered, err := s.hasAnswered(sv.ID, actor)
	if err != nil {
		return nil, err
	}
	return &SurveyDetail{
		ID:            sv.ID,
		Title:         sv.Title,
		Description:   sv.Description,
		Questions:     sv.Questions,
		CreatedAt:     sv.CreatedAt,
		EndDate:       sv.EndDate,
		ResponseCount: sv.ResponseCount,
		Featured:      sv.Featured,
		HasAnswered:   answered,
		IsClosed:      sv.Closed(s.now()),
	}, nil
}

// Delete removes the survey and cascades to its responses.
func (s *SurveyService) Delete(actor *User, id string) error {
	if actor == nil || actor.Role != RoleOwner {
		return ErrOwnerOnly
	}
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return err
	}
	if sv == nil {
		return ErrSurveyNotFound
	}
	if _, err := s.store.DeleteResponsesBySurvey(id); err != nil {
		return err
	}
	return s.store.DeleteSurvey(id)
}

func (s *SurveyService) hasAnswered(surveyID string, actor *User) (bool, error) {
	if actor == nil {
		return false, nil
	}
	r, err := s.store.FindResponse(surveyID, actor.ID)
	if err != nil {
		return false, err
	}
	return r != nil, nil
}
