package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pollpulse/internal/domain/poll"
	pollpulse_errors "pollpulse/pkg/errors"
)

type PostgresVoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &PostgresVoteRepository{db: db}
}

// Create inserts the vote in a single statement. The unique index on
// (poll_id, dedup_key) is the authoritative dedup mechanism; a
// constraint rejection here means the voter already voted.
func (r *PostgresVoteRepository) Create(ctx context.Context, v *poll.Vote) error {
	res := r.db.WithContext(ctx).Create(v)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return pollpulse_errors.ErrDuplicateVote
		}
		return res.Error
	}
	return nil
}

func (r *PostgresVoteRepository) CountByPoll(ctx context.Context, pollID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&poll.Vote{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresVoteRepository) CountsByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		OptionID uuid.UUID
		N        int64
	}
	err := r.db.WithContext(ctx).
		Model(&poll.Vote{}).
		Select("option_id, COUNT(*) AS n").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.OptionID] = row.N
	}
	return counts, nil
}
