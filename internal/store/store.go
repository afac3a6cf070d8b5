// Package store provides the persistence layer: a Store interface consumed
// by the services, with in-memory and sqlite implementations.
package store

import "github.com/imparlab/impar/internal/services"

// Store aggregates every persistence operation the services need. Document
// collections with single-record atomicity; no multi-step transactions.
type Store interface {
	// Users
	AddUser(u *services.User) error
	FindUserByEmail(email string) (*services.User, error)
	FindUserByID(id string) (*services.User, error)
	UpdateUser(u *services.User) error
	ListUsers(limit int) ([]*services.User, error)

	// Surveys
	AddSurvey(sv *services.Survey) error
	GetSurvey(id string) (*services.Survey, error)
	ListSurveys(limit int) ([]*services.Survey, error)
	DeleteSurvey(id string) error
	IncrementResponseCount(surveyID string) error
	SetSurveyFeatured(id string, featured bool) error
	ListFeaturedSurveys(limit int) ([]*services.Survey, error)
	CountFeaturedSurveys() (int, error)

	// Responses
	AddResponse(r *services.Response) error
	FindResponse(surveyID, userID string) (*services.Response, error)
	ListResponsesBySurvey(surveyID string, limit int) ([]*services.Response, error)
	ListResponsesByUser(userID string, limit int) ([]*services.Response, error)
	DeleteResponsesBySurvey(surveyID string) (int, error)

	// News
	AddNews(n *services.News) error
	GetNews(id string) (*services.News, error)
	ListNews(limit int) ([]*services.News, error)
	DeleteNews(id string) error
	SetNewsFeatured(id string, featured bool) error
	ListFeaturedNews(limit int) ([]*services.News, error)
	CountFeaturedNews() (int, error)

	// Suggestions and team applications
	AddSuggestion(sg *services.Suggestion) error
	GetSuggestion(id string) (*services.Suggestion, error)
	ListSuggestions(limit int) ([]*services.Suggestion, error)
	DeleteSuggestion(id string) error
	AddTeamApplication(app *services.TeamApplication) error
	ListTeamApplications(limit int) ([]*services.TeamApplication, error)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Compile-time checks that both implementations satisfy the per-service
// interfaces the services actually depend on.
var (
	_ services.AuthStore       = (Store)(nil)
	_ services.UserStore       = (Store)(nil)
	_ services.SurveyStore     = (Store)(nil)
	_ services.ResponseStore   = (Store)(nil)
	_ services.ResultsStore    = (Store)(nil)
	_ services.FeatureStore    = (Store)(nil)
	_ services.NewsStore       = (Store)(nil)
	_ services.SuggestionStore = (Store)(nil)
)
