package services

import (
	"strings"
	"time"
)

type NewsStore interface {
	AddNews(n *News) error
	GetNews(id string) (*News, error)
	ListNews(limit int) ([]*News, error)
	DeleteNews(id string) error
}

type NewsService struct {
	store NewsStore
	now   func() time.Time
	idGen func() string
}

func NewNewsService(store NewsStore) *NewsService {
	return &NewsService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

func (s *NewsService) Create(actor *User, title, content string) (*News, error) {
	if actor == nil || actor.Role != RoleOwner {
		return nil, ErrOwnerOnly
	}
	if strings.TrimSpace(title) == "" {
		return nil, NewInvalidError("title required")
	}
	n := &News{
		ID:        s.idGen(),
		Title:     title,
		Content:   content,
		CreatedBy: actor.ID,
		CreatedAt: s.now(),
	}
	if err := s.store.AddNews(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NewsService) List() ([]*News, error) {
	return s.store.ListNews(ListCap)
}

func (s *NewsService) Delete(actor *User, id string) error {
	if actor == nil || actor.Role != RoleOwner {
		return ErrOwnerOnly
	}
	n, err := s.store.GetNews(id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNewsNotFound
	}
	return s.store.DeleteNews(id)
}
