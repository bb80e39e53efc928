package repository

import (
	"context"

	"github.com/google/uuid"

	"pollpulse/internal/domain/poll"
	"pollpulse/internal/domain/user"
)

// PollFilter narrows List results. Active filters on the stored flag;
// callers that need live votability recompute it against ExpiresAt.
type PollFilter struct {
	Active *bool
}

type PollRepository interface {
	// Create persists the poll and its option batch atomically.
	Create(ctx context.Context, p *poll.Poll, options []poll.Option) error
	GetByID(ctx context.Context, id uuid.UUID) (poll.Poll, error)
	List(ctx context.Context, filter PollFilter) ([]poll.Poll, error)
	Update(ctx context.Context, p poll.Poll) error
	// Delete removes the poll together with its options and votes.
	Delete(ctx context.Context, id uuid.UUID) error
	// Deactivate clears the stored active flag (lazy expiry write-back).
	Deactivate(ctx context.Context, id uuid.UUID) error
	GetOption(ctx context.Context, optionID uuid.UUID) (poll.Option, error)
}

type VoteRepository interface {
	// Create inserts the vote, returning ErrDuplicateVote when the
	// unique_vote_per_poll constraint rejects it.
	Create(ctx context.Context, v *poll.Vote) error
	CountByPoll(ctx context.Context, pollID uuid.UUID) (int64, error)
	CountsByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}
