package services

import (
	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/dto"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/rules"
	"github.com/keralakitchen/kitchen-backend/internal/store"
)

type AnalyticsService struct {
	users    *store.Repository[models.User]
	payments *store.Repository[models.Payment]
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		users:    store.New[models.User](db, "user"),
		payments: store.New[models.Payment](db, "payment"),
	}
}

// Dashboard aggregates every subscriber and payment record.
func (s *AnalyticsService) Dashboard() (*dto.AnalyticsResponse, error) {
	users, err := s.users.Where("role", models.RoleUser)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.All()
	if err != nil {
		return nil, err
	}
	return &dto.AnalyticsResponse{
		Currency: rules.Currency,
		Users:    rules.Aggregate(users),
		Payments: rules.SummarizePayments(payments),
	}, nil
}
