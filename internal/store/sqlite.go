package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/imparlab/impar/internal/services"
)

// SQLiteStore persists the document collections in sqlite. Open the database
// with the mattn/go-sqlite3 driver before handing it here.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if err := CreateSchema(db); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// JSON column helpers.

func encodeJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeJSON(ns sql.NullString, out any) {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return
	}
	if err := json.Unmarshal([]byte(ns.String), out); err != nil {
		log.Printf("sqlite store: decode json column: %v", err)
	}
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

// Users

func (s *SQLiteStore) AddUser(u *services.User) error {
	profile, err := encodeJSON(u.Profile)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, name, role, profile, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.PassHash, u.Name, u.Role, profile, u.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(
		`SELECT id, email, pass_hash, name, role, profile, created_at FROM users WHERE email = ?`,
		strings.ToLower(email),
	)
	return scanUser(row)
}

func (s *SQLiteStore) FindUserByID(id string) (*services.User, error) {
	row := s.db.QueryRow(
		`SELECT id, email, pass_hash, name, role, profile, created_at FROM users WHERE id = ?`, id,
	)
	return scanUser(row)
}

func (s *SQLiteStore) UpdateUser(u *services.User) error {
	profile, err := encodeJSON(u.Profile)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE users SET email = ?, pass_hash = ?, name = ?, role = ?, profile = ? WHERE id = ?`,
		strings.ToLower(u.Email), u.PassHash, u.Name, u.Role, profile, u.ID,
	)
	return err
}

func (s *SQLiteStore) ListUsers(limit int) ([]*services.User, error) {
	rows, err := s.db.Query(
		`SELECT id, email, pass_hash, name, role, profile, created_at FROM users ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*services.User, error) {
	var u services.User
	var profile sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.Name, &u.Role, &profile, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	decodeJSON(profile, &u.Profile)
	return &u, nil
}

// Surveys

func (s *SQLiteStore) AddSurvey(sv *services.Survey) error {
	questions, err := encodeJSON(sv.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO surveys (id, title, description, questions, created_by, created_at, end_date, response_count, featured)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sv.ID, sv.Title, sv.Description, questions, sv.CreatedBy, sv.CreatedAt,
		toNullTime(sv.EndDate), sv.ResponseCount, boolToInt64(sv.Featured),
	)
	return err
}

func (s *SQLiteStore) GetSurvey(id string) (*services.Survey, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, questions, created_by, created_at, end_date, response_count, featured
		 FROM surveys WHERE id = ?`, id,
	)
	return scanSurvey(row)
}

func (s *SQLiteStore) ListSurveys(limit int) ([]*services.Survey, error) {
	return s.querySurveys(
		`SELECT id, title, description, questions, created_by, created_at, end_date, response_count, featured
		 FROM surveys ORDER BY created_at DESC LIMIT ?`, limit,
	)
}

func (s *SQLiteStore) DeleteSurvey(id string) error {
	_, err := s.db.Exec(`DELETE FROM surveys WHERE id = ?`, id)
	return err
}

// IncrementResponseCount is a single statement, so the counter update is
// atomic per survey row.
func (s *SQLiteStore) IncrementResponseCount(surveyID string) error {
	_, err := s.db.Exec(`UPDATE surveys SET response_count = response_count + 1 WHERE id = ?`, surveyID)
	return err
}

func (s *SQLiteStore) SetSurveyFeatured(id string, featured bool) error {
	_, err := s.db.Exec(`UPDATE surveys SET featured = ? WHERE id = ?`, boolToInt64(featured), id)
	return err
}

func (s *SQLiteStore) ListFeaturedSurveys(limit int) ([]*services.Survey, error) {
	return s.querySurveys(
		`SELECT id, title, description, questions, created_by, created_at, end_date, response_count, featured
		 FROM surveys WHERE featured = 1 ORDER BY created_at DESC LIMIT ?`, limit,
	)
}

func (s *SQLiteStore) CountFeaturedSurveys() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM surveys WHERE featured = 1`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) querySurveys(query string, args ...any) ([]*services.Survey, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.Survey{}
	for rows.Next() {
		sv, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

func scanSurvey(row rowScanner) (*services.Survey, error) {
	var sv services.Survey
	var questions sql.NullString
	var endDate sql.NullTime
	var featured int64
	err := row.Scan(&sv.ID, &sv.Title, &sv.Description, &questions, &sv.CreatedBy, &sv.CreatedAt,
		&endDate, &sv.ResponseCount, &featured)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	decodeJSON(questions, &sv.Questions)
	sv.EndDate = fromNullTime(endDate)
	sv.Featured = int64ToBool(featured)
	return &sv, nil
}

// Responses

func (s *SQLiteStore) AddResponse(r *services.Response) error {
	answers, err := encodeJSON(r.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO responses (id, survey_id, user_id, user_name, answers, submitted_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.SurveyID, r.UserID, r.UserName, answers, r.SubmittedAt,
	)
	return err
}

func (s *SQLiteStore) FindResponse(surveyID, userID string) (*services.Response, error) {
	row := s.db.QueryRow(
		`SELECT id, survey_id, user_id, user_name, answers, submitted_at
		 FROM responses WHERE survey_id = ? AND user_id = ?`, surveyID, userID,
	)
	return scanResponse(row)
}

func (s *SQLiteStore) ListResponsesBySurvey(surveyID string, limit int) ([]*services.Response, error) {
	return s.queryResponses(
		`SELECT id, survey_id, user_id, user_name, answers, submitted_at
		 FROM responses WHERE survey_id = ? ORDER BY submitted_at DESC LIMIT ?`, surveyID, limit,
	)
}

func (s *SQLiteStore) ListResponsesByUser(userID string, limit int) ([]*services.Response, error) {
	return s.queryResponses(
		`SELECT id, survey_id, user_id, user_name, answers, submitted_at
		 FROM responses WHERE user_id = ? ORDER BY submitted_at DESC LIMIT ?`, userID, limit,
	)
}

func (s *SQLiteStore) DeleteResponsesBySurvey(surveyID string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM responses WHERE survey_id = ?`, surveyID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) queryResponses(query string, args ...any) ([]*services.Response, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.Response{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanResponse(row rowScanner) (*services.Response, error) {
	var r services.Response
	var answers sql.NullString
	err := row.Scan(&r.ID, &r.SurveyID, &r.UserID, &r.UserName, &answers, &r.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	decodeJSON(answers, &r.Answers)
	return &r, nil
}

// News

func (s *SQLiteStore) AddNews(n *services.News) error {
	_, err := s.db.Exec(
		`INSERT INTO news (id, title, content, created_by, created_at, featured) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, n.CreatedBy, n.CreatedAt, boolToInt64(n.Featured),
	)
	return err
}

func (s *SQLiteStore) GetNews(id string) (*services.News, error) {
	row := s.db.QueryRow(
		`SELECT id, title, content, created_by, created_at, featured FROM news WHERE id = ?`, id,
	)
	return scanNews(row)
}

func (s *SQLiteStore) ListNews(limit int) ([]*services.News, error) {
	return s.queryNews(
		`SELECT id, title, content, created_by, created_at, featured FROM news ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
}

func (s *SQLiteStore) DeleteNews(id string) error {
	_, err := s.db.Exec(`DELETE FROM news WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) SetNewsFeatured(id string, featured bool) error {
	_, err := s.db.Exec(`UPDATE news SET featured = ? WHERE id = ?`, boolToInt64(featured), id)
	return err
}

func (s *SQLiteStore) ListFeaturedNews(limit int) ([]*services.News, error) {
	return s.queryNews(
		`SELECT id, title, content, created_by, created_at, featured
		 FROM news WHERE featured = 1 ORDER BY created_at DESC LIMIT ?`, limit,
	)
}

func (s *SQLiteStore) CountFeaturedNews() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM news WHERE featured = 1`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) queryNews(query string, args ...any) ([]*services.News, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNews(row rowScanner) (*services.News, error) {
	var n services.News
	var featured int64
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedBy, &n.CreatedAt, &featured)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.Featured = int64ToBool(featured)
	return &n, nil
}

// Suggestions and team applications

func (s *SQLiteStore) AddSuggestion(sg *services.Suggestion) error {
	options := sql.NullString{}
	if len(sg.Options) > 0 {
		var err error
		options, err = encodeJSON(sg.Options)
		if err != nil {
			return err
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO suggestions (id, user_id, user_name, category, question_type, question_text, options, notes, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sg.ID, sg.UserID, sg.UserName, toNullString(sg.Category), toNullString(sg.QuestionType),
		sg.QuestionText, options, toNullString(sg.Notes), sg.Status, sg.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) GetSuggestion(id string) (*services.Suggestion, error) {
	row := s.db.QueryRow(
		`SELECT id, user_id, user_name, category, question_type, question_text, options, notes, status, created_at
		 FROM suggestions WHERE id = ?`, id,
	)
	return scanSuggestion(row)
}

func (s *SQLiteStore) ListSuggestions(limit int) ([]*services.Suggestion, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, user_name, category, question_type, question_text, options, notes, status, created_at
		 FROM suggestions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.Suggestion{}
	for rows.Next() {
		sg, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteSuggestion(id string) error {
	_, err := s.db.Exec(`DELETE FROM suggestions WHERE id = ?`, id)
	return err
}

func scanSuggestion(row rowScanner) (*services.Suggestion, error) {
	var sg services.Suggestion
	var category, questionType, options, notes sql.NullString
	err := row.Scan(&sg.ID, &sg.UserID, &sg.UserName, &category, &questionType, &sg.QuestionText,
		&options, &notes, &sg.Status, &sg.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sg.Category = category.String
	sg.QuestionType = questionType.String
	sg.Notes = notes.String
	decodeJSON(options, &sg.Options)
	return &sg, nil
}

func (s *SQLiteStore) AddTeamApplication(app *services.TeamApplication) error {
	_, err := s.db.Exec(
		`INSERT INTO team_applications (id, user_id, user_name, message, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		app.ID, app.UserID, app.UserName, app.Message, app.Status, app.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) ListTeamApplications(limit int) ([]*services.TeamApplication, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, user_name, message, status, created_at FROM team_applications ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.TeamApplication{}
	for rows.Next() {
		var app services.TeamApplication
		if err := rows.Scan(&app.ID, &app.UserID, &app.UserName, &app.Message, &app.Status, &app.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &app)
	}
	return out, rows.Err()
}
