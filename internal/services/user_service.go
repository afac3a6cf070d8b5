package services

import "strings"

type UserStore interface {
	FindUserByID(id string) (*User, error)
	UpdateUser(u *User) error
	ListUsers(limit int) ([]*User, error)
}

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Profile(actor *User) (*User, error) {
	if actor == nil {
		return nil, NewUnauthorizedError("authentication required")
	}
	return actor, nil
}

// UpdateProfile applies the fields present in the update and persists the
// whole record. Last write wins; there is no optimistic concurrency token.
func (s *UserService) UpdateProfile(actor *User, upd ProfileUpdate) (*User, error) {
	if actor == nil {
		return nil, NewUnauthorizedError("authentication required")
	}
	u, err := s.store.FindUserByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		u.Name = strings.TrimSpace(*upd.Name)
	}
	applyProfile(&u.Profile, upd)
	if err := s.store.UpdateUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListAll returns every user record for the admin view, owner only.
func (s *UserService) ListAll(actor *User) ([]*User, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	return s.store.ListUsers(ListCap)
}

func applyProfile(p *Profile, upd ProfileUpdate) {
	if upd.Phone != nil {
		p.Phone = *upd.Phone
	}
	if upd.BirthDate != nil {
		p.BirthDate = *upd.BirthDate
	}
	if upd.Gender != nil {
		p.Gender = *upd.Gender
	}
	if upd.Nationality != nil {
		p.Nationality = *upd.Nationality
	}
	if upd.District != nil {
		p.District = *upd.District
	}
	if upd.Municipality != nil {
		p.Municipality = *upd.Municipality
	}
	if upd.Parish != nil {
		p.Parish = *upd.Parish
	}
	if upd.MaritalStatus != nil {
		p.MaritalStatus = *upd.MaritalStatus
	}
	if upd.Religion != nil {
		p.Religion = *upd.Religion
	}
	if upd.EducationLevel != nil {
		p.EducationLevel = *upd.EducationLevel
	}
	if upd.Profession != nil {
		p.Profession = *upd.Profession
	}
	if upd.LivedAbroad != nil {
		p.LivedAbroad = *upd.LivedAbroad
	}
	if upd.AbroadDuration != nil {
		p.AbroadDuration = *upd.AbroadDuration
	}
	if upd.EmailNotifications != nil {
		p.EmailNotifications = *upd.EmailNotifications
	}
}
