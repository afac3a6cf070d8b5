package services

import (
	"strings"
	"time"
)

// StatusPending is the initial review status for owner-reviewed submissions.
const StatusPending = "pending"

type SuggestionStore interface {
	AddSuggestion(sg *Suggestion) error
	GetSuggestion(id string) (*Suggestion, error)
	ListSuggestions(limit int) ([]*Suggestion, error)
	DeleteSuggestion(id string) error
	AddTeamApplication(app *TeamApplication) error
	ListTeamApplications(limit int) ([]*TeamApplication, error)
}

// SuggestionService handles the ancillary submissions: question suggestions
// and team applications. Both are flat records reviewed by the owner.
type SuggestionService struct {
	store SuggestionStore
	now   func() time.Time
	idGen func() string
}

func NewSuggestionService(store SuggestionStore) *SuggestionService {
	return &SuggestionService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// SuggestionInput is the user-supplied part of a suggestion.
type SuggestionInput struct {
	Category     string   `json:"category"`
	QuestionType string   `json:"question_type"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Notes        string   `json:"notes"`
}

func (s *SuggestionService) Submit(actor *User, in SuggestionInput) (*Suggestion, error) {
	if actor == nil {
		return nil, NewUnauthorizedError("authentication required")
	}
	if strings.TrimSpace(in.QuestionText) == "" {
		return nil, NewInvalidError("question_text required")
	}
	sg := &Suggestion{
		ID:           s.idGen(),
		UserID:       actor.ID,
		UserName:     actor.Name,
		Category:     in.Category,
		QuestionType: in.QuestionType,
		QuestionText: in.QuestionText,
		Options:      in.Options,
		Notes:        in.Notes,
		Status:       StatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.store.AddSuggestion(sg); err != nil {
		return nil, err
	}
	return sg, nil
}

func (s *SuggestionService) List(actor *User) ([]*Suggestion, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	return s.store.ListSuggestions(ListCap)
}

func (s *SuggestionService) Delete(actor *User, id string) error {
	if actor == nil || actor.Role != RoleOwner {
		return ErrOwnerOnly
	}
	sg, err := s.store.GetSuggestion(id)
	if err != nil {
		return err
	}
	if sg == nil {
		return NewNotFoundError("suggestion not found")
	}
	return s.store.DeleteSuggestion(id)
}

func (s *SuggestionService) Apply(actor *User, message string) (*TeamApplication, error) {
	if actor == nil {
		return nil, NewUnauthorizedError("authentication required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, NewInvalidError("message required")
	}
	app := &TeamApplication{
		ID:        s.idGen(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		Message:   message,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.store.AddTeamApplication(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *SuggestionService) ListApplications(actor *User) ([]*TeamApplication, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	return s.store.ListTeamApplications(ListCap)
}
