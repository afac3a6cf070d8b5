package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imparlab/impar/internal/middleware"
	"github.com/imparlab/impar/internal/services"
	"github.com/imparlab/impar/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("IMPAR_JWT_SECRET", "router-test-secret")
	st := store.NewMemoryStore()
	auth := services.NewAuthService(st, middleware.SignToken)
	require.NoError(t, auth.EnsureOwner("owner@example.com", "ownerpass", "Owner"))

	mux := http.NewServeMux()
	NewRouter(st).Register(mux)
	return middleware.WithAuth(mux)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, h http.Handler, email, name string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "secret123", "name": name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["token"].(string)
}

func loginOwner(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "owner@example.com", "password": "ownerpass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["token"].(string)
}

func createSurvey(t *testing.T, h http.Handler, ownerToken string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/surveys", ownerToken, map[string]any{
		"title":       "Mobility",
		"description": "Getting around",
		"questions": []map[string]any{
			{"type": "multiple_choice_single", "text": "Pick one", "options": []string{"A", "B", "C"}},
			{"type": "rating", "text": "Rate it"},
			{"type": "text_short", "text": "Thoughts?"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func TestAuthFlow(t *testing.T) {
	h := newTestServer(t)

	token := registerUser(t, h, "ana@example.com", "Ana")

	rec := doJSON(t, h, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody(t, rec)
	assert.Equal(t, "ana@example.com", me["email"])
	assert.Equal(t, "user", me["role"])
	assert.NotContains(t, rec.Body.String(), "pass_hash")

	// Duplicate email registers with 409.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "ana@example.com", "password": "secret123", "name": "Clone",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Bad credentials are a 401.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed payload is a 400.
	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "not-an-email", "password": "secret123", "name": "X",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSurveyRespondAndResults(t *testing.T) {
	h := newTestServer(t)
	ownerToken := loginOwner(t, h)
	surveyID := createSurvey(t, h, ownerToken)
	anaToken := registerUser(t, h, "ana@example.com", "Ana")
	brunoToken := registerUser(t, h, "bruno@example.com", "Bruno")

	// Results are forbidden before answering.
	rec := doJSON(t, h, http.MethodGet, "/api/surveys/"+surveyID+"/results", anaToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	answers := map[string]any{"answers": []map[string]any{
		{"question_index": 0, "answer": "A"},
		{"question_index": 1, "answer": 5},
		{"question_index": 2, "answer": "more parks"},
	}}
	rec = doJSON(t, h, http.MethodPost, "/api/surveys/"+surveyID+"/respond", anaToken, answers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Second submission conflicts.
	rec = doJSON(t, h, http.MethodPost, "/api/surveys/"+surveyID+"/respond", anaToken, answers)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/surveys/"+surveyID+"/respond", brunoToken, map[string]any{
		"answers": []map[string]any{
			{"question_index": 0, "answer": "B"},
			{"question_index": 1, "answer": 4},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Respondent sees aggregates with redacted texts.
	rec = doJSON(t, h, http.MethodGet, "/api/surveys/"+surveyID+"/results", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decodeBody(t, rec)
	assert.EqualValues(t, 2, results["total_responses"])
	aggregated := results["aggregated_results"].([]any)
	choice := aggregated[0].(map[string]any)["results"].(map[string]any)
	assert.EqualValues(t, 1, choice["A"])
	assert.EqualValues(t, 1, choice["B"])
	assert.EqualValues(t, 0, choice["C"])
	texts := aggregated[2].(map[string]any)["results"].(map[string]any)
	assert.EqualValues(t, 1, texts["count"])
	assert.Empty(t, texts["responses"])

	// Owner sees the literal texts and the rating distribution.
	rec = doJSON(t, h, http.MethodGet, "/api/surveys/"+surveyID+"/results", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ownerResults := decodeBody(t, rec)
	ownerAgg := ownerResults["aggregated_results"].([]any)
	rating := ownerAgg[1].(map[string]any)["results"].(map[string]any)
	assert.InDelta(t, 4.5, rating["average"].(float64), 1e-9)
	dist := rating["distribution"].(map[string]any)
	assert.EqualValues(t, 1, dist["5"])
	assert.EqualValues(t, 1, dist["4"])
	ownerTexts := ownerAgg[2].(map[string]any)["results"].(map[string]any)
	assert.Len(t, ownerTexts["responses"], 1)

	// Survey list carries has_answered per caller.
	rec = doJSON(t, h, http.MethodGet, "/api/surveys", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	surveys := decodeBody(t, rec)["surveys"].([]any)
	require.Len(t, surveys, 1)
	assert.Equal(t, true, surveys[0].(map[string]any)["has_answered"])

	// my-responses links back to the survey.
	rec = doJSON(t, h, http.MethodGet, "/api/my-responses", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	own := decodeBody(t, rec)["responses"].([]any)
	require.Len(t, own, 1)
	assert.Equal(t, "Mobility", own[0].(map[string]any)["survey_title"])

	// Owner-only raw listing and CSV export.
	rec = doJSON(t, h, http.MethodGet, "/api/surveys/"+surveyID+"/responses", anaToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/surveys/"+surveyID+"/responses", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	raw := decodeBody(t, rec)["responses"].([]any)
	assert.Len(t, raw, 2)

	rec = doJSON(t, h, http.MethodGet, "/api/surveys/"+surveyID+"/responses.csv", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "response_id,user_name,question_index,answer,submitted_at"))
}

func TestAccessControlStatusCodes(t *testing.T) {
	h := newTestServer(t)
	ownerToken := loginOwner(t, h)
	surveyID := createSurvey(t, h, ownerToken)
	userToken := registerUser(t, h, "ana@example.com", "Ana")

	// No token at all: 401.
	rec := doJSON(t, h, http.MethodGet, "/api/surveys", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated but not owner: 403.
	rec = doJSON(t, h, http.MethodPost, "/api/surveys", userToken, map[string]any{
		"title": "Nope", "questions": []map[string]any{{"type": "text_short", "text": "Q"}},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, "/api/surveys/"+surveyID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown survey: 404.
	rec = doJSON(t, h, http.MethodGet, "/api/surveys/missing", userToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Owner delete cascades; the survey disappears from my-responses.
	rec = doJSON(t, h, http.MethodPost, "/api/surveys/"+surveyID+"/respond", userToken, map[string]any{
		"answers": []map[string]any{{"question_index": 0, "answer": "A"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, "/api/surveys/"+surveyID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/my-responses", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["responses"])
}

func TestFeatureEndpoints(t *testing.T) {
	h := newTestServer(t)
	ownerToken := loginOwner(t, h)
	userToken := registerUser(t, h, "ana@example.com", "Ana")

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		ids = append(ids, createSurvey(t, h, ownerToken))
	}
	rec := doJSON(t, h, http.MethodPost, "/api/news", ownerToken, map[string]any{
		"title": "Works start", "content": "Monday morning.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	newsID := decodeBody(t, rec)["id"].(string)

	// Non-owner cannot toggle.
	rec = doJSON(t, h, http.MethodPut, "/api/surveys/"+ids[0]+"/feature", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for _, id := range ids[:2] {
		rec = doJSON(t, h, http.MethodPut, "/api/surveys/"+id+"/feature", ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = doJSON(t, h, http.MethodPut, "/api/news/"+newsID+"/feature", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Cap reached: fourth ON attempt conflicts.
	rec = doJSON(t, h, http.MethodPut, "/api/surveys/"+ids[2]+"/feature", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Featured view is public.
	rec = doJSON(t, h, http.MethodGet, "/api/featured", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	featured := decodeBody(t, rec)["featured"].([]any)
	assert.Len(t, featured, 3)

	// Toggling one off frees a slot.
	rec = doJSON(t, h, http.MethodPut, "/api/news/"+newsID+"/feature", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["featured"])
	rec = doJSON(t, h, http.MethodPut, "/api/surveys/"+ids[2]+"/feature", ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	h := newTestServer(t)
	token := registerUser(t, h, "ana@example.com", "Ana")

	rec := doJSON(t, h, http.MethodPut, "/api/profile", token, map[string]any{
		"district": "Lisboa", "profession": "teacher",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/api/profile", token, map[string]any{
		"profession": "engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["profile"].(map[string]any)
	assert.Equal(t, "engineer", profile["profession"])
	assert.Equal(t, "Lisboa", profile["district"], "absent field must survive the second update")
}

func TestSuggestionsAndTeamApplications(t *testing.T) {
	h := newTestServer(t)
	ownerToken := loginOwner(t, h)
	userToken := registerUser(t, h, "ana@example.com", "Ana")

	rec := doJSON(t, h, http.MethodPost, "/api/suggestions", userToken, map[string]any{
		"category": "mobility", "question_type": "multiple_choice_single",
		"question_text": "More bike lanes?", "options": []string{"yes", "no"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	suggestionID := decodeBody(t, rec)["id"].(string)

	// Listing is owner-only.
	rec = doJSON(t, h, http.MethodGet, "/api/suggestions", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/suggestions", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["suggestions"], 1)

	rec = doJSON(t, h, http.MethodDelete, "/api/suggestions/"+suggestionID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/team-application", userToken, map[string]any{
		"message": "I want to help",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/team-applications", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := decodeBody(t, rec)["applications"].([]any)
	require.Len(t, apps, 1)
	assert.Equal(t, "pending", apps[0].(map[string]any)["status"])
}

func TestAdminUserList(t *testing.T) {
	h := newTestServer(t)
	ownerToken := loginOwner(t, h)
	userToken := registerUser(t, h, "ana@example.com", "Ana")

	rec := doJSON(t, h, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/admin/users", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody(t, rec)["users"].([]any)
	assert.Len(t, users, 2)
	assert.NotContains(t, rec.Body.String(), "$2a$", "bcrypt hashes must not leak")
}
