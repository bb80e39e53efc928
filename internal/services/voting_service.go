package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pollpulse/internal/domain/poll"
	"pollpulse/internal/repository"
	pollpulse_errors "pollpulse/pkg/errors"
	"pollpulse/pkg/logger"
)

// VotingService validates vote attempts and commits them. Duplicate
// detection is delegated entirely to the storage-level unique
// constraint: concurrent submissions from the same voter race on the
// insert, and exactly one wins.
type VotingService struct {
	pollRepo repository.PollRepository
	voteRepo repository.VoteRepository
	log      *logger.Logger
}

func NewVotingService(pollRepo repository.PollRepository, voteRepo repository.VoteRepository, log *logger.Logger) *VotingService {
	return &VotingService{pollRepo: pollRepo, voteRepo: voteRepo, log: log}
}

// CastVote records voterID's vote for optionID on pollID.
//
// Failure modes, in check order: ErrNotFound (poll), ErrPollInactive
// (deactivated or expired, compared against the clock on every
// attempt), ErrOptionNotFound, ErrOptionMismatch (option belongs to
// another poll), ErrDuplicateVote (constraint rejection on a
// single-vote poll). The vote is either fully recorded or not at all.
func (s *VotingService) CastVote(ctx context.Context, pollID, optionID uuid.UUID, voterID string) (poll.Vote, error) {
	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return poll.Vote{}, err
	}

	now := time.Now()
	if !p.Votable(now) {
		if p.IsActive && p.IsExpired(now) {
			// Expiry happened since the last write; sync the flag so
			// subsequent reads observe is_active=false.
			if derr := s.pollRepo.Deactivate(ctx, p.ID); derr != nil && s.log != nil {
				s.log.Warnf("lazy deactivate of poll %s failed: %v", p.ID, derr)
			}
		}
		return poll.Vote{}, pollpulse_errors.ErrPollInactive
	}

	opt, err := s.pollRepo.GetOption(ctx, optionID)
	if err != nil {
		return poll.Vote{}, err
	}
	if opt.PollID != p.ID {
		return poll.Vote{}, pollpulse_errors.ErrOptionMismatch
	}

	v := poll.NewVote(p, opt.ID, voterID, now)
	if err := s.voteRepo.Create(ctx, &v); err != nil {
		return poll.Vote{}, err
	}
	return v, nil
}
