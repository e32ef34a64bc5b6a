package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ADat1304/Project-cafe/entity"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps admin sessions in the sessions table.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	var s entity.Session
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete is a no-op for unknown ids.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.Session{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expires_at <= ?", now).Delete(&entity.Session{})
	return res.RowsAffected, res.Error
}
