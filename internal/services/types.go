package services

import "time"

// Roles. Role is assigned at registration and never changed through the API.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// Question types as stored in survey documents.
const (
	QuestionSingleChoice = "multiple_choice_single"
	QuestionMultiChoice  = "multiple_choice_multiple"
	QuestionShortText    = "text_short"
	QuestionLongText     = "text_long"
	QuestionRating       = "rating"
)

// ListCap bounds every collection read. Not a pagination cursor; reads past
// the cap are simply not served.
const ListCap = 1000

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile carries the optional demographic attributes collected at
// registration. All fields are free-form.
type Profile struct {
	Phone              string `json:"phone,omitempty"`
	BirthDate          string `json:"birth_date,omitempty"`
	Gender             string `json:"gender,omitempty"`
	Nationality        string `json:"nationality,omitempty"`
	District           string `json:"district,omitempty"`
	Municipality       string `json:"municipality,omitempty"`
	Parish             string `json:"parish,omitempty"`
	MaritalStatus      string `json:"marital_status,omitempty"`
	Religion           string `json:"religion,omitempty"`
	EducationLevel     string `json:"education_level,omitempty"`
	Profession         string `json:"profession,omitempty"`
	LivedAbroad        bool   `json:"lived_abroad,omitempty"`
	AbroadDuration     string `json:"abroad_duration,omitempty"`
	EmailNotifications bool   `json:"email_notifications,omitempty"`
}

// ProfileUpdate applies only the fields present in the request. Absent
// pointers leave the stored value untouched (last write wins, no version
// token).
type ProfileUpdate struct {
	Name               *string `json:"name,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	BirthDate          *string `json:"birth_date,omitempty"`
	Gender             *string `json:"gender,omitempty"`
	Nationality        *string `json:"nationality,omitempty"`
	District           *string `json:"district,omitempty"`
	Municipality       *string `json:"municipality,omitempty"`
	Parish             *string `json:"parish,omitempty"`
	MaritalStatus      *string `json:"marital_status,omitempty"`
	Religion           *string `json:"religion,omitempty"`
	EducationLevel     *string `json:"education_level,omitempty"`
	Profession         *string `json:"profession,omitempty"`
	LivedAbroad        *bool   `json:"lived_abroad,omitempty"`
	AbroadDuration     *string `json:"abroad_duration,omitempty"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
}

// Question lives inside its survey; its position in the sequence is its
// identity (answers reference it by index).
type Question struct {
	Type      string   `json:"type"`
	Text      string   `json:"text"`
	Options   []string `json:"options,omitempty"`
	MaxRating int      `json:"max_rating,omitempty"`
}

type Survey struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Questions     []Question `json:"questions"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ResponseCount int        `json:"response_count"`
	Featured      bool       `json:"featured"`
}

// Closed reports whether the survey no longer accepts responses.
func (s *Survey) Closed(now time.Time) bool {
	return s.EndDate != nil && !now.Before(*s.EndDate)
}

type Answer struct {
	QuestionIndex int         `json:"question_index"`
	Answer        AnswerValue `json:"answer"`
}

type Response struct {
	ID          string    `json:"id"`
	SurveyID    string    `json:"survey_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type News struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	Featured  bool      `json:"featured"`
}

type Suggestion struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Category     string    `json:"category,omitempty"`
	QuestionType string    `json:"question_type,omitempty"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type TeamApplication struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
