package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pollpulse/internal/domain/poll"
	pollpulse_errors "pollpulse/pkg/errors"
)

type PostgresPollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) PollRepository {
	return &PostgresPollRepository{db: db}
}

func (r *PostgresPollRepository) Create(ctx context.Context, p *poll.Poll, options []poll.Option) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if err := tx.Create(&options).Error; err != nil {
			if isUniqueViolation(err) {
				return pollpulse_errors.ErrValidation
			}
			return err
		}
		return nil
	})
}

func (r *PostgresPollRepository) GetByID(ctx context.Context, id uuid.UUID) (poll.Poll, error) {
	var p poll.Poll
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index, id")
		}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return poll.Poll{}, pollpulse_errors.ErrNotFound
		}
		return poll.Poll{}, err
	}
	return p, nil
}

func (r *PostgresPollRepository) List(ctx context.Context, filter PollFilter) ([]poll.Poll, error) {
	var polls []poll.Poll

	q := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index, id")
		})
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	if err := q.Order("created_at DESC").Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

func (r *PostgresPollRepository) Update(ctx context.Context, p poll.Poll) error {
	res := r.db.WithContext(ctx).Omit("Options").Save(&p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pollpulse_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Explicit cascade inside one transaction; the FK constraints also
	// cascade on postgres, but the tests run on sqlite without FK
	// enforcement, so the repository does not rely on them.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&poll.Vote{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&poll.Option{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&poll.Poll{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pollpulse_errors.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresPollRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&poll.Poll{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pollpulse_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresPollRepository) GetOption(ctx context.Context, optionID uuid.UUID) (poll.Option, error) {
	var o poll.Option
	err := r.db.WithContext(ctx).
		Where("id = ?", optionID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return poll.Option{}, pollpulse_errors.ErrOptionNotFound
		}
		return poll.Option{}, err
	}
	return o, nil
}
