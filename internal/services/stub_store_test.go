package services

import (
	"fmt"
	"sort"
	"time"
)

// stubStore is a minimal in-memory backend for service tests. Unlike the
// real stores it does no copying or locking; tests are single-goroutine.
type stubStore struct {
	users        []*User
	surveys      []*Survey
	responses    []*Response
	news         []*News
	suggestions  []*Suggestion
	applications []*TeamApplication
}

func newStubStore() *stubStore { return &stubStore{} }

func (s *stubStore) FindUserByEmail(email string) (*User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindUserByID(id string) (*User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubStore) AddUser(u *User) error {
	s.users = append(s.users, u)
	return nil
}

func (s *stubStore) UpdateUser(u *User) error {
	for i, old := range s.users {
		if old.ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	return fmt.Errorf("no such user %s", u.ID)
}

func (s *stubStore) ListUsers(limit int) ([]*User, error) {
	out := append([]*User(nil), s.users...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) AddSurvey(sv *Survey) error {
	s.surveys = append(s.surveys, sv)
	return nil
}

func (s *stubStore) GetSurvey(id string) (*Survey, error) {
	for _, sv := range s.surveys {
		if sv.ID == id {
			return sv, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListSurveys(limit int) ([]*Survey, error) {
	out := append([]*Survey(nil), s.surveys...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) DeleteSurvey(id string) error {
	for i, sv := range s.surveys {
		if sv.ID == id {
			s.surveys = append(s.surveys[:i], s.surveys[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *stubStore) SetSurveyFeatured(id string, featured bool) error {
	for _, sv := range s.surveys {
		if sv.ID == id {
			sv.Featured = featured
			return nil
		}
	}
	return fmt.Errorf("no such survey %s", id)
}

func (s *stubStore) ListFeaturedSurveys(limit int) ([]*Survey, error) {
	out := []*Survey{}
	for _, sv := range s.surveys {
		if sv.Featured {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) CountFeaturedSurveys() (int, error) {
	n := 0
	for _, sv := range s.surveys {
		if sv.Featured {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) AddResponse(r *Response) error {
	s.responses = append(s.responses, r)
	return nil
}

func (s *stubStore) FindResponse(surveyID, userID string) (*Response, error) {
	for _, r := range s.responses {
		if r.SurveyID == surveyID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubStore) IncrementResponseCount(surveyID string) error {
	for _, sv := range s.surveys {
		if sv.ID == surveyID {
			sv.ResponseCount++
			return nil
		}
	}
	return fmt.Errorf("no such survey %s", surveyID)
}

func (s *stubStore) ListResponsesBySurvey(surveyID string, limit int) ([]*Response, error) {
	out := []*Response{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) ListResponsesByUser(userID string, limit int) ([]*Response, error) {
	out := []*Response{}
	for _, r := range s.responses {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) DeleteResponsesBySurvey(surveyID string) (int, error) {
	kept := s.responses[:0]
	n := 0
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.responses = kept
	return n, nil
}

func (s *stubStore) AddNews(n *News) error {
	s.news = append(s.news, n)
	return nil
}

func (s *stubStore) GetNews(id string) (*News, error) {
	for _, n := range s.news {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListNews(limit int) ([]*News, error) {
	out := append([]*News(nil), s.news...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) DeleteNews(id string) error {
	for i, n := range s.news {
		if n.ID == id {
			s.news = append(s.news[:i], s.news[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *stubStore) SetNewsFeatured(id string, featured bool) error {
	for _, n := range s.news {
		if n.ID == id {
			n.Featured = featured
			return nil
		}
	}
	return fmt.Errorf("no such news %s", id)
}

func (s *stubStore) ListFeaturedNews(limit int) ([]*News, error) {
	out := []*News{}
	for _, n := range s.news {
		if n.Featured {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) CountFeaturedNews() (int, error) {
	n := 0
	for _, item := range s.news {
		if item.Featured {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) AddSuggestion(sg *Suggestion) error {
	s.suggestions = append(s.suggestions, sg)
	return nil
}

func (s *stubStore) GetSuggestion(id string) (*Suggestion, error) {
	for _, sg := range s.suggestions {
		if sg.ID == id {
			return sg, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListSuggestions(limit int) ([]*Suggestion, error) {
	out := append([]*Suggestion(nil), s.suggestions...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) DeleteSuggestion(id string) error {
	for i, sg := range s.suggestions {
		if sg.ID == id {
			s.suggestions = append(s.suggestions[:i], s.suggestions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *stubStore) AddTeamApplication(app *TeamApplication) error {
	s.applications = append(s.applications, app)
	return nil
}

func (s *stubStore) ListTeamApplications(limit int) ([]*TeamApplication, error) {
	out := append([]*TeamApplication(nil), s.applications...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Shared test fixtures.

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func testOwner() *User {
	return &User{ID: "owner1", Email: "owner@example.com", Name: "Owner", Role: RoleOwner}
}

func testUser(id, name string) *User {
	return &User{ID: id, Email: id + "@example.com", Name: name, Role: RoleUser}
}

// Interface checks: the stub must satisfy every per-service store.
var (
	_ AuthStore       = (*stubStore)(nil)
	_ SurveyStore     = (*stubStore)(nil)
	_ ResponseStore   = (*stubStore)(nil)
	_ ResultsStore    = (*stubStore)(nil)
	_ FeatureStore    = (*stubStore)(nil)
	_ NewsStore       = (*stubStore)(nil)
	_ SuggestionStore = (*stubStore)(nil)
	_ UserStore       = (*stubStore)(nil)
)
