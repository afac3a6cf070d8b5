package services

import "time"

// ResponseStore abstracts the persistence operations the submission and
// listing workflows need.
type ResponseStore interface {
	GetSurvey(id string) (*Survey, error)
	FindResponse(surveyID, userID string) (*Response, error)
	AddResponse(r *Response) error
	IncrementResponseCount(surveyID string) error
	ListResponsesBySurvey(surveyID string, limit int) ([]*Response, error)
	ListResponsesByUser(userID string, limit int) ([]*Response, error)
}

type ResponseService struct {
	store ResponseStore
	now   func() time.Time
	idGen func() string
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// RawResponseView is the owner-only raw listing entry.
type RawResponseView struct {
	ID          string    `json:"id"`
	UserName    string    `json:"user_name"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OwnResponseView links a user's submission back to the survey it answered.
type OwnResponseView struct {
	SurveyID    string    `json:"survey_id"`
	SurveyTitle string    `json:"survey_title"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submit records a response. The duplicate check is check-then-insert: two
// concurrent submissions can both pass it. The store keeps the response
// counter in sync with a single-document increment.
func (s *ResponseService) Submit(actor *User, surveyID string, answers []Answer) (*Response, error) {
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
	if sv.Closed(s.now()) {
		return nil, ErrSurveyClosed
	}
	existing, err := s.store.FindResponse(surveyID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyResponded
	}
	r := &Response{
		ID:          s.idGen(),
		SurveyID:    surveyID,
		UserID:      actor.ID,
		UserName:    actor.Name,
		Answers:     answers,
		SubmittedAt: s.now(),
	}
	if err := s.store.AddResponse(r); err != nil {
		return nil, err
	}
	if err := s.store.IncrementResponseCount(surveyID); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRaw returns the literal responses for a survey, owner only.
func (s *ResponseService) ListRaw(actor *User, surveyID string) ([]RawResponseView, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, ErrSurveyNotFound
	}
	rs, err := s.store.ListResponsesBySurvey(surveyID, ListCap)
	if err != nil {
		return nil, err
	}
	out := make([]RawResponseView, 0, len(rs))
	for _, r := range rs {
		out = append(out, RawResponseView{ID: r.ID, UserName: r.UserName, Answers: r.Answers, SubmittedAt: r.SubmittedAt})
	}
	return out, nil
}

// ExportCSV renders a survey's responses in long CSV format, owner only.
func (s *ResponseService) ExportCSV(actor *User, surveyID string) ([]byte, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, ErrSurveyNotFound
	}
	rs, err := s.store.ListResponsesBySurvey(surveyID, ListCap)
	if err != nil {
		return nil, err
	}
	return ExportResponsesCSV(rs)
}

// ListOwn returns the calling user's submissions. Responses whose survey has
// since been deleted are skipped rather than surfaced as dangling entries.
func (s *ResponseService) ListOwn(actor *User) ([]OwnResponseView, error) {
	if actor == nil {
		return nil, NewUnauthorizedError("authentication required")
	}
	rs, err := s.store.ListResponsesByUser(actor.ID, ListCap)
	if err != nil {
		return nil, err
	}
	out := make([]OwnResponseView, 0, len(rs))
	for _, r := range rs {
		sv, err := s.store.GetSurvey(r.SurveyID)
		if err != nil {
			return nil, err
		}
		if sv == nil {
			continue
		}
		out = append(out, OwnResponseView{SurveyID: r.SurveyID, SurveyTitle: sv.Title, SubmittedAt: r.SubmittedAt})
	}
	return out, nil
}
