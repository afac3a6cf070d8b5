package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/imparlab/impar/internal/services"
)

// MemoryStore keeps everything in maps behind one RWMutex. It backs tests
// and runs the server when no database path is configured.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]*services.User
	usersByEmail map[string]*services.User
	surveys      map[string]*services.Survey
	responses    []*services.Response
	news         map[string]*services.News
	suggestions  map[string]*services.Suggestion
	applications []*services.TeamApplication
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        map[string]*services.User{},
		usersByEmail: map[string]*services.User{},
		surveys:      map[string]*services.Survey{},
		responses:    []*services.Response{},
		news:         map[string]*services.News{},
		suggestions:  map[string]*services.Suggestion{},
	}
}

// Users

func (s *MemoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[cp.ID] = &cp
	s.usersByEmail[strings.ToLower(cp.Email)] = &cp
	return nil
}

func (s *MemoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) FindUserByID(id string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdateUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.users[u.ID]
	if !ok {
		return nil
	}
	cp := *u
	delete(s.usersByEmail, strings.ToLower(old.Email))
	s.users[cp.ID] = &cp
	s.usersByEmail[strings.ToLower(cp.Email)] = &cp
	return nil
}

func (s *MemoryStore) ListUsers(limit int) ([]*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

// Surveys

// copySurvey clones the record including its question slice, so callers can
// mutate what they get back without touching store state.
func copySurvey(sv *services.Survey) *services.Survey {
	cp := *sv
	cp.Questions = append([]services.Question(nil), sv.Questions...)
	return &cp
}

func copyResponse(r *services.Response) *services.Response {
	cp := *r
	cp.Answers = append([]services.Answer(nil), r.Answers...)
	return &cp
}

func (s *MemoryStore) AddSurvey(sv *services.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[sv.ID] = copySurvey(sv)
	return nil
}

func (s *MemoryStore) GetSurvey(id string) (*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sv, ok := s.surveys[id]
	if !ok {
		return nil, nil
	}
	return copySurvey(sv), nil
}

func (s *MemoryStore) ListSurveys(limit int) ([]*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Survey, 0, len(s.surveys))
	for _, sv := range s.surveys {
		out = append(out, copySurvey(sv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) DeleteSurvey(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.surveys, id)
	return nil
}

// IncrementResponseCount bumps the denormalized counter under the store
// lock, mirroring a single-document atomic increment.
func (s *MemoryStore) IncrementResponseCount(surveyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv, ok := s.surveys[surveyID]; ok {
		sv.ResponseCount++
	}
	return nil
}

func (s *MemoryStore) SetSurveyFeatured(id string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sv, ok := s.surveys[id]; ok {
		sv.Featured = featured
	}
	return nil
}

func (s *MemoryStore) ListFeaturedSurveys(limit int) ([]*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Survey{}
	for _, sv := range s.surveys {
		if sv.Featured {
			out = append(out, copySurvey(sv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) CountFeaturedSurveys() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sv := range s.surveys {
		if sv.Featured {
			n++
		}
	}
	return n, nil
}

// Responses

func (s *MemoryStore) AddResponse(r *services.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, copyResponse(r))
	return nil
}

func (s *MemoryStore) FindResponse(surveyID, userID string) (*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.responses {
		if r.SurveyID == surveyID && r.UserID == userID {
			return copyResponse(r), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListResponsesBySurvey(surveyID string, limit int) ([]*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Response{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			out = append(out, copyResponse(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) ListResponsesByUser(userID string, limit int) ([]*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Response{}
	for _, r := range s.responses {
		if r.UserID == userID {
			out = append(out, copyResponse(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) DeleteResponsesBySurvey(surveyID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	kept := make([]*services.Response, 0, len(s.responses))
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.responses = kept
	return removed, nil
}

// News

func (s *MemoryStore) AddNews(n *services.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.news[cp.ID] = &cp
	return nil
}

func (s *MemoryStore) GetNews(id string) (*services.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.news[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (s *MemoryStore) ListNews(limit int) ([]*services.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.News, 0, len(s.news))
	for _, n := range s.news {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) DeleteNews(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.news, id)
	return nil
}

func (s *MemoryStore) SetNewsFeatured(id string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.news[id]; ok {
		n.Featured = featured
	}
	return nil
}

func (s *MemoryStore) ListFeaturedNews(limit int) ([]*services.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.News{}
	for _, n := range s.news {
		if n.Featured {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) CountFeaturedNews() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.news {
		if item.Featured {
			n++
		}
	}
	return n, nil
}

// Suggestions and team applications

func (s *MemoryStore) AddSuggestion(sg *services.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sg
	s.suggestions[cp.ID] = &cp
	return nil
}

func (s *MemoryStore) GetSuggestion(id string) (*services.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sg, ok := s.suggestions[id]
	if !ok {
		return nil, nil
	}
	cp := *sg
	return &cp, nil
}

func (s *MemoryStore) ListSuggestions(limit int) ([]*services.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.Suggestion, 0, len(s.suggestions))
	for _, sg := range s.suggestions {
		cp := *sg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

func (s *MemoryStore) DeleteSuggestion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.suggestions, id)
	return nil
}

func (s *MemoryStore) AddTeamApplication(app *services.TeamApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *app
	s.applications = append(s.applications, &cp)
	return nil
}

func (s *MemoryStore) ListTeamApplications(limit int) ([]*services.TeamApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*services.TeamApplication, 0, len(s.applications))
	for _, app := range s.applications {
		cp := *app
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capList(out, limit), nil
}

func capList[T any](in []T, limit int) []T {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
