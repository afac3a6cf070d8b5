package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByEmail(email string) (*User, error)
	FindUserByID(id string) (*User, error)
	AddUser(u *User) error
}

// TokenSigner issues a signed bearer token for a user id.
type TokenSigner func(uid string, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func() string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token string
	User  *User
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func() string { return shortID(12) },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

// Register creates a user with role "user". There is no path to the owner
// role through the API; the owner account is provisioned at startup.
func (s *AuthService) Register(email, password, name string, profile Profile) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email and password required")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:        s.idGen(),
		Email:     email,
		PassHash:  hash,
		Name:      strings.TrimSpace(name),
		Role:      RoleUser,
		Profile:   profile,
		CreatedAt: s.now(),
	}
	if err := s.store.AddUser(u); err != nil {
		return nil, err
	}
	token, err := s.signToken(u.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email and password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.signToken(u.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Resolve loads the identity a verified token refers to. A token for a
// deleted user fails here even though its signature is still valid.
func (s *AuthService) Resolve(uid string) (*User, error) {
	if uid == "" {
		return nil, ErrUserNotFound
	}
	u, err := s.store.FindUserByID(uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// EnsureOwner provisions the owner account at startup. Idempotent: an
// existing user with the given email is left untouched, whatever its role.
func (s *AuthService) EnsureOwner(email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return NewInvalidError("owner email and password required")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.AddUser(&User{
		ID:        s.idGen(),
		Email:     email,
		PassHash:  hash,
		Name:      name,
		Role:      RoleOwner,
		CreatedAt: s.now(),
	})
}
