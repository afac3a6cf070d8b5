package store

import "database/sql"

// Schema is applied at startup; every statement is idempotent. Question
// sequences, answer lists and profile attributes are stored as JSON text,
// keeping the document shape the services work with.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	pass_hash BLOB NOT NULL,
	name TEXT NOT NULL,
	role TEXT NOT NULL,
	profile TEXT,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS surveys (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	questions TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	end_date TIMESTAMP,
	response_count INTEGER NOT NULL DEFAULT 0,
	featured INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS responses (
	id TEXT PRIMARY KEY,
	survey_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	user_name TEXT NOT NULL,
	answers TEXT NOT NULL,
	submitted_at TIMESTAMP NOT NULL
);

-- Storage-level backstop for the one-response-per-user rule. The service
-- still performs its own pre-insert check and classifies the failure.
CREATE UNIQUE INDEX IF NOT EXISTS idx_responses_survey_user
	ON responses(survey_id, user_id);

CREATE TABLE IF NOT EXISTS news (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	featured INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS suggestions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_name TEXT NOT NULL,
	category TEXT,
	question_type TEXT,
	question_text TEXT NOT NULL,
	options TEXT,
	notes TEXT,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS team_applications (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	user_name TEXT NOT NULL,
	message TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// CreateSchema creates all tables and indexes if they do not exist yet.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
