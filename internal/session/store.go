package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Record is the persisted row behind a session id.
type Record struct {
	ID          string `gorm:"primaryKey;size:64"`
	Token       string `gorm:"not null"`
	PartnerName string `gorm:"size:200;not null"`
	Username    string `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Record) TableName() string { return "sessions" }

// GormStore keeps sessions in the sessions table.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (g *GormStore) Get(ctx context.Context, id string) (Session, error) {
	var rec Record
	err := g.DB.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	return Session{Token: rec.Token, PartnerName: rec.PartnerName, Username: rec.Username}, nil
}

func (g *GormStore) Save(ctx context.Context, id string, s Session) error {
	rec := Record{ID: id, Token: s.Token, PartnerName: s.PartnerName, Username: s.Username}
	return g.DB.WithContext(ctx).Save(&rec).Error
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	return g.DB.WithContext(ctx).Delete(&Record{}, "id = ?", id).Error
}
