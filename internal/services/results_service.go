package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"pollpulse/internal/domain/poll"
	"pollpulse/internal/repository"
)

// ResultsService computes per-option tallies on demand. Every call
// recomputes from the vote store; there is no cache, so results always
// reflect the committed state at call time.
type ResultsService struct {
	pollRepo repository.PollRepository
	voteRepo repository.VoteRepository
}

func NewResultsService(pollRepo repository.PollRepository, voteRepo repository.VoteRepository) *ResultsService {
	return &ResultsService{pollRepo: pollRepo, voteRepo: voteRepo}
}

type OptionResult struct {
	OptionID   uuid.UUID
	Text       string
	Votes      int64
	Percentage float64
}

type PollResults struct {
	Poll       poll.Poll
	IsExpired  bool
	TotalVotes int64
	Options    []OptionResult
}

// Results returns tallies for every option of the poll, ordered by
// order index (ties broken by id). Results remain viewable for
// inactive and expired polls.
func (s *ResultsService) Results(ctx context.Context, pollID uuid.UUID) (PollResults, error) {
	p, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return PollResults{}, err
	}

	total, err := s.voteRepo.CountByPoll(ctx, pollID)
	if err != nil {
		return PollResults{}, err
	}
	counts, err := s.voteRepo.CountsByOption(ctx, pollID)
	if err != nil {
		return PollResults{}, err
	}

	// Options arrive pre-ordered from the repository.
	options := make([]OptionResult, 0, len(p.Options))
	for _, opt := range p.Options {
		n := counts[opt.ID]
		percentage := 0.0
		if total > 0 {
			percentage = round2(float64(n) / float64(total) * 100)
		}
		options = append(options, OptionResult{
			OptionID:   opt.ID,
			Text:       opt.Text,
			Votes:      n,
			Percentage: percentage,
		})
	}

	return PollResults{
		Poll:       p,
		IsExpired:  p.IsExpired(time.Now()),
		TotalVotes: total,
		Options:    options,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
