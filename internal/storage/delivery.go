// Package storage keeps the delivery log.
// Entries are written once per delivered pick and only read back for statistics.
package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"
	"gorm.io/gorm"
)

type Delivery struct {
	ID        string `gorm:"primaryKey"`
	ChannelID string `gorm:"index;not null"`
	Source    string `gorm:"not null"`
	PostID    string `gorm:"not null"`
	Kind      string `gorm:"not null"`
	URL       string `gorm:"not null"`
	Permalink null.String
	Filename  null.String
	Size      null.Int
	Sensitive bool
	CreatedAt time.Time `gorm:"index"`
}

type SourceStat struct {
	Source string
	Count  int64
}

type Log interface {
	Save(ctx context.Context, delivery *Delivery) error
	Stats(ctx context.Context, channelID string) ([]SourceStat, error)
}

type SQL gorm.DB

func (s *SQL) Unmask() *gorm.DB {
	return (*gorm.DB)(s)
}

func (s *SQL) Init(ctx context.Context) error {
	return s.Unmask().WithContext(ctx).AutoMigrate(new(Delivery))
}

func (s *SQL) Save(ctx context.Context, delivery *Delivery) error {
	return s.Unmask().WithContext(ctx).Create(delivery).Error
}

// Stats counts deliveries per source in the channel, most delivered first.
func (s *SQL) Stats(ctx context.Context, channelID string) ([]SourceStat, error) {
	stats := make([]SourceStat, 0)
	if err := s.Unmask().WithContext(ctx).
		Model(new(Delivery)).
		Select("source, count(*) as count").
		Where("channel_id = ?", channelID).
		Group("source").
		Order("count desc, source").
		Scan(&stats).
		Error; err != nil {
		return nil, errors.Wrap(err, "select stats")
	}

	return stats, nil
}
