package services

import (
	"sort"
	"time"
)

// FeaturedLimit caps simultaneously featured surveys + news items.
const FeaturedLimit = 3

type FeatureStore interface {
	GetSurvey(id string) (*Survey, error)
	SetSurveyFeatured(id string, featured bool) error
	ListFeaturedSurveys(limit int) ([]*Survey, error)
	CountFeaturedSurveys() (int, error)
	GetNews(id string) (*News, error)
	SetNewsFeatured(id string, featured bool) error
	ListFeaturedNews(limit int) ([]*News, error)
	CountFeaturedNews() (int, error)
}

// FeatureService toggles featured flags under a global cap. The cap check is
// check-then-act with no cross-request lock; concurrent toggles from
// different actors can race past the limit.
type FeatureService struct {
	store FeatureStore
}

func NewFeatureService(store FeatureStore) *FeatureService {
	return &FeatureService{store: store}
}

// FeaturedItem is one entry of the public featured view.
type FeaturedItem struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // "survey" or "news"
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToggleSurvey flips a survey's featured flag. Turning the flag on is gated
// by the cap; turning it off always succeeds.
func (s *FeatureService) ToggleSurvey(actor *User, id string) (bool, error) {
	if actor == nil || actor.Role != RoleOwner {
		return false, ErrOwnerOnly
	}
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return false, err
	}
	if sv == nil {
		return false, ErrSurveyNotFound
	}
	next := !sv.Featured
	if next {
		if err := s.checkCap(); err != nil {
			return false, err
		}
	}
	if err := s.store.SetSurveyFeatured(id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *FeatureService) ToggleNews(actor *User, id string) (bool, error) {
	if actor == nil || actor.Role != RoleOwner {
		return false, ErrOwnerOnly
	}
	n, err := s.store.GetNews(id)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, ErrNewsNotFound
	}
	next := !n.Featured
	if next {
		if err := s.checkCap(); err != nil {
			return false, err
		}
	}
	if err := s.store.SetNewsFeatured(id, next); err != nil {
		return false, err
	}
	return next, nil
}

// Featured merges up to 3 featured surveys and up to 3 featured news items,
// newest first, truncated to 3. The per-kind fetch limit is redundant while
// the global cap holds; it stays as defense in depth.
func (s *FeatureService) Featured() ([]FeaturedItem, error) {
	svs, err := s.store.ListFeaturedSurveys(FeaturedLimit)
	if err != nil {
		return nil, err
	}
	news, err := s.store.ListFeaturedNews(FeaturedLimit)
	if err != nil {
		return nil, err
	}
	items := make([]FeaturedItem, 0, len(svs)+len(news))
	for _, sv := range svs {
		items = append(items, FeaturedItem{ID: sv.ID, Kind: "survey", Title: sv.Title, Description: sv.Description, CreatedAt: sv.CreatedAt})
	}
	for _, n := range news {
		items = append(items, FeaturedItem{ID: n.ID, Kind: "news", Title: n.Title, Description: n.Content, CreatedAt: n.CreatedAt})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > FeaturedLimit {
		items = items[:FeaturedLimit]
	}
	return items, nil
}

func (s *FeatureService) checkCap() error {
	ns, err := s.store.CountFeaturedSurveys()
	if err != nil {
		return err
	}
	nn, err := s.store.CountFeaturedNews()
	if err != nil {
		return err
	}
	if ns+nn >= FeaturedLimit {
		return ErrFeatureLimit
	}
	return nil
}
