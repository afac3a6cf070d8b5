package api

import (
	"net/http"

	"github.com/imparlab/impar/internal/middleware"
	"github.com/imparlab/impar/internal/services"
	"github.com/imparlab/impar/internal/store"
)

// Router wires every service onto a plain ServeMux. Path segments under
// /api/surveys/ and /api/news/ are parsed by hand.
type Router struct {
	auth        *services.AuthService
	surveys     *services.SurveyService
	responses   *services.ResponseService
	results     *services.ResultsService
	features    *services.FeatureService
	news        *services.NewsService
	suggestions *services.SuggestionService
	users       *services.UserService
}

func NewRouter(st store.Store) *Router {
	return &Router{
		auth:        services.NewAuthService(st, middleware.SignToken),
		surveys:     services.NewSurveyService(st),
		responses:   services.NewResponseService(st),
		results:     services.NewResultsService(st),
		features:    services.NewFeatureService(st),
		news:        services.NewNewsService(st),
		suggestions: services.NewSuggestionService(st),
		users:       services.NewUserService(st),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", rt.handleHealth)
	mux.HandleFunc("/api/auth/register", rt.handleRegister)     // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)           // POST
	mux.HandleFunc("/api/auth/me", rt.handleMe)                 // GET
	mux.HandleFunc("/api/profile", rt.handleProfile)            // GET, PUT
	mux.HandleFunc("/api/admin/users", rt.handleAdminUsers)     // GET
	mux.HandleFunc("/api/surveys", rt.handleSurveys)            // GET, POST
	mux.HandleFunc("/api/surveys/", rt.handleSurveyScoped)      // {id}, {id}/respond, {id}/results, {id}/responses, {id}/responses.csv, {id}/feature
	mux.HandleFunc("/api/my-responses", rt.handleMyResponses)   // GET
	mux.HandleFunc("/api/news", rt.handleNews)                  // GET, POST
	mux.HandleFunc("/api/news/", rt.handleNewsScoped)           // {id}, {id}/feature
	mux.HandleFunc("/api/featured", rt.handleFeatured)          // GET, no auth
	mux.HandleFunc("/api/suggestions", rt.handleSuggestions)    // GET, POST
	mux.HandleFunc("/api/suggestions/", rt.handleSuggestionScoped)
	mux.HandleFunc("/api/team-application", rt.handleTeamApply) // POST
	mux.HandleFunc("/api/team-applications", rt.handleTeamApplications)
}

// requireActor resolves the authenticated user or writes a 401. The user is
// loaded from the store on every call so tokens for deleted accounts fail.
func (rt *Router) requireActor(w http.ResponseWriter, r *http.Request) (*services.User, bool) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, services.NewUnauthorizedError("authentication required"))
		return nil, false
	}
	u, err := rt.auth.Resolve(uid)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return u, true
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
