package repository

import (
	"context"

	"github.com/odwoodruff/pet-training-service/internal/models"
	"gorm.io/gorm"
)

type AuthSessionRepository interface {
	Create(ctx context.Context, session *models.AuthSession) error
	FindByToken(ctx context.Context, token string) (*models.AuthSession, error)
	DeleteByToken(ctx context.Context, token string) error
}

type authSessionRepository struct {
	db *gorm.DB
}

func NewAuthSessionRepository(db *gorm.DB) AuthSessionRepository {
	return &authSessionRepository{db: db}
}

func (r *authSessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *authSessionRepository) FindByToken(ctx context.Context, token string) (*models.AuthSession, error) {
	var session models.AuthSession
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *authSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.AuthSession{}).Error
}
