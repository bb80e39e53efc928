package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"pollpulse/internal/domain/poll"
	"pollpulse/internal/repository"
	pollpulse_errors "pollpulse/pkg/errors"
	"pollpulse/pkg/logger"
)

type PollService struct {
	pollRepo repository.PollRepository
	log      *logger.Logger
}

func NewPollService(pollRepo repository.PollRepository, log *logger.Logger) *PollService {
	return &PollService{pollRepo: pollRepo, log: log}
}

type CreatePollInput struct {
	Title              string
	Description        string
	AllowMultipleVotes bool
	ExpiresAt          *time.Time
	Options            []string
}

type UpdatePollInput struct {
	Title       *string
	Description *string
	IsActive    *bool
	ExpiresAt   *time.Time
}

func (s *PollService) Create(ctx context.Context, ownerID uuid.NullUUID, in CreatePollInput) (poll.Poll, error) {
	now := time.Now()

	if strings.TrimSpace(in.Title) == "" || len(in.Title) > 200 {
		return poll.Poll{}, pollpulse_errors.ErrValidation
	}
	if len(in.Options) < 2 {
		return poll.Poll{}, pollpulse_errors.ErrValidation
	}
	for _, text := range in.Options {
		if strings.TrimSpace(text) == "" || len(text) > 200 {
			return poll.Poll{}, pollpulse_errors.ErrValidation
		}
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return poll.Poll{}, pollpulse_errors.ErrValidation
	}

	p := poll.Poll{
		ID:                 uuid.New(),
		Title:              in.Title,
		Description:        in.Description,
		OwnerID:            ownerID,
		IsActive:           true,
		AllowMultipleVotes: in.AllowMultipleVotes,
		CreatedAt:          now,
	}
	if in.ExpiresAt != nil {
		p.ExpiresAt = sql.NullTime{Time: *in.ExpiresAt, Valid: true}
	}

	options := make([]poll.Option, 0, len(in.Options))
	for i, text := range in.Options {
		options = append(options, poll.Option{
			ID:         uuid.New(),
			PollID:     p.ID,
			Text:       text,
			OrderIndex: i,
			CreatedAt:  now,
		})
	}

	if err := s.pollRepo.Create(ctx, &p, options); err != nil {
		return poll.Poll{}, err
	}
	p.Options = options
	return p, nil
}

// Get returns the poll, lazily writing back the active flag if the
// poll expired since the last write.
func (s *PollService) Get(ctx context.Context, pollID uuid.UUID) (poll.Poll, error) {
	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return poll.Poll{}, err
	}
	return s.lazyDeactivate(ctx, p), nil
}

// List returns polls newest first. The active filter is applied to the
// live votable state, not the stored flag: a poll whose expiry passed
// without a write counts as inactive here.
func (s *PollService) List(ctx context.Context, active *bool) ([]poll.Poll, error) {
	polls, err := s.pollRepo.List(ctx, repository.PollFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]poll.Poll, 0, len(polls))
	for _, p := range polls {
		p = s.lazyDeactivate(ctx, p)
		if active != nil && p.Votable(now) != *active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *PollService) Update(ctx context.Context, userID, pollID uuid.UUID, in UpdatePollInput) (poll.Poll, error) {
	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return poll.Poll{}, err
	}
	if !p.OwnedBy(userID) {
		return poll.Poll{}, pollpulse_errors.ErrForbidden
	}

	now := time.Now()
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" || len(*in.Title) > 200 {
			return poll.Poll{}, pollpulse_errors.ErrValidation
		}
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.ExpiresAt != nil {
		// Must be strictly in the future at the time of the edit.
		if !in.ExpiresAt.After(now) {
			return poll.Poll{}, pollpulse_errors.ErrValidation
		}
		p.ExpiresAt = sql.NullTime{Time: *in.ExpiresAt, Valid: true}
	}
	if p.IsExpired(now) {
		p.IsActive = false
	}

	if err := s.pollRepo.Update(ctx, p); err != nil {
		return poll.Poll{}, err
	}
	return p, nil
}

func (s *PollService) Delete(ctx context.Context, userID, pollID uuid.UUID) error {
	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if !p.OwnedBy(userID) {
		return pollpulse_errors.ErrForbidden
	}
	return s.pollRepo.Delete(ctx, pollID)
}

// lazyDeactivate writes the active flag back for an expired poll.
// Best effort: the computed state is what callers rely on.
func (s *PollService) lazyDeactivate(ctx context.Context, p poll.Poll) poll.Poll {
	if !p.IsActive || !p.IsExpired(time.Now()) {
		return p
	}
	if err := s.pollRepo.Deactivate(ctx, p.ID); err != nil && s.log != nil {
		s.log.Warnf("lazy deactivate of poll %s failed: %v", p.ID, err)
	}
	p.IsActive = false
	return p
}
