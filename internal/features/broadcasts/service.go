package broadcasts

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/store"
	"github.com/keralakitchen/kitchen-backend/internal/validation"
)

const (
	KindBanner       = "banner"
	KindNotification = "notification"
)

type Service struct {
	banners       *store.Repository[Banner]
	notifications *store.Repository[Notification]
	events        events.Publisher
}

func NewService(db *gorm.DB, publisher events.Publisher) *Service {
	return &Service{
		banners:       store.New[Banner](db, "banner"),
		notifications: store.New[Notification](db, "notification"),
		events:        publisher,
	}
}

// Active returns the switched-on banners and notifications, newest first.
func (s *Service) Active() (*Active, error) {
	banners, err := s.banners.Where("is_active", true)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifications.Where("is_active", true)
	if err != nil {
		return nil, err
	}
	return &Active{Banners: banners, Notifications: notifications}, nil
}

func (s *Service) Banners() ([]Banner, error) { return s.banners.All() }

func (s *Service) CreateBanner(req BannerRequest) (*Banner, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	b := Banner{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Type:     req.Type,
		IsActive: req.IsActive,
	}
	if err := s.banners.Insert(&b); err != nil {
		return nil, err
	}
	if b.IsActive {
		s.announceBanner(&b)
	}
	return &b, nil
}

func (s *Service) UpdateBanner(id uuid.UUID, req BannerRequest) (*Banner, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	before, err := s.banners.ByID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.banners.Update(id, map[string]any{
		"title":     strings.TrimSpace(req.Title),
		"content":   strings.TrimSpace(req.Content),
		"type":      req.Type,
		"is_active": req.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if b.IsActive && !before.IsActive {
		s.announceBanner(b)
	}
	return b, nil
}

// ToggleBanner flips a banner on or off.
func (s *Service) ToggleBanner(id uuid.UUID) (*Banner, error) {
	before, err := s.banners.ByID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.banners.Update(id, map[string]any{"is_active": !before.IsActive})
	if err != nil {
		return nil, err
	}
	if b.IsActive {
		s.announceBanner(b)
	}
	return b, nil
}

func (s *Service) DeleteBanner(id uuid.UUID) error { return s.banners.Delete(id) }

func (s *Service) Notifications() ([]Notification, error) { return s.notifications.All() }

func (s *Service) CreateNotification(req NotificationRequest) (*Notification, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	n := Notification{
		Title:    strings.TrimSpace(req.Title),
		Message:  strings.TrimSpace(req.Message),
		Type:     req.Type,
		IsActive: req.IsActive,
	}
	if err := s.notifications.Insert(&n); err != nil {
		return nil, err
	}
	if n.IsActive {
		s.announceNotification(&n)
	}
	return &n, nil
}

func (s *Service) UpdateNotification(id uuid.UUID, req NotificationRequest) (*Notification, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	before, err := s.notifications.ByID(id)
	if err != nil {
		return nil, err
	}
	n, err := s.notifications.Update(id, map[string]any{
		"title":     strings.TrimSpace(req.Title),
		"message":   strings.TrimSpace(req.Message),
		"type":      req.Type,
		"is_active": req.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if n.IsActive && !before.IsActive {
		s.announceNotification(n)
	}
	return n, nil
}

func (s *Service) ToggleNotification(id uuid.UUID) (*Notification, error) {
	before, err := s.notifications.ByID(id)
	if err != nil {
		return nil, err
	}
	n, err := s.notifications.Update(id, map[string]any{"is_active": !before.IsActive})
	if err != nil {
		return nil, err
	}
	if n.IsActive {
		s.announceNotification(n)
	}
	return n, nil
}

func (s *Service) DeleteNotification(id uuid.UUID) error { return s.notifications.Delete(id) }

func (s *Service) announceBanner(b *Banner) {
	events.Fire(s.events, events.BroadcastActivated, Event{
		ID: b.ID, Kind: KindBanner, Title: b.Title, Type: string(b.Type), Body: b.Content,
	})
}

func (s *Service) announceNotification(n *Notification) {
	events.Fire(s.events, events.BroadcastActivated, Event{
		ID: n.ID, Kind: KindNotification, Title: n.Title, Type: string(n.Type), Body: n.Message,
	})
}
