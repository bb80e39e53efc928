package httpdto

import (
	"time"

	"pollpulse/internal/domain/poll"
)

// CreatePollRequest is used for POST /polls
type CreatePollRequest struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description,omitempty"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	Options            []string   `json:"options" binding:"required"`
}

// UpdatePollRequest is used for PUT /polls/:id
type UpdatePollRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// PollDTO represents a poll in API responses
type PollDTO struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	OwnerID            string      `json:"owner_id,omitempty"`
	IsActive           bool        `json:"is_active"`
	AllowMultipleVotes bool        `json:"allow_multiple_votes"`
	CreatedAt          string      `json:"created_at"`
	ExpiresAt          string      `json:"expires_at,omitempty"`
	Options            []OptionDTO `json:"options"`
}

// OptionDTO represents a poll option in API responses
type OptionDTO struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	OrderIndex int    `json:"order_index"`
}

// ListPollsResponse is returned by GET /polls
type ListPollsResponse struct {
	Polls []PollDTO `json:"polls"`
	Total int       `json:"total"`
}

func FromPoll(p poll.Poll) PollDTO {
	dto := PollDTO{
		ID:                 p.ID.String(),
		Title:              p.Title,
		Description:        p.Description,
		IsActive:           p.IsActive,
		AllowMultipleVotes: p.AllowMultipleVotes,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		Options:            make([]OptionDTO, 0, len(p.Options)),
	}
	if p.OwnerID.Valid {
		dto.OwnerID = p.OwnerID.UUID.String()
	}
	if p.ExpiresAt.Valid {
		dto.ExpiresAt = p.ExpiresAt.Time.Format(time.RFC3339)
	}
	for _, opt := range p.Options {
		dto.Options = append(dto.Options, OptionDTO{
			ID:         opt.ID.String(),
			Text:       opt.Text,
			OrderIndex: opt.OrderIndex,
		})
	}
	return dto
}

func FromPollSlice(polls []poll.Poll) []PollDTO {
	out := make([]PollDTO, 0, len(polls))
	for _, p := range polls {
		out = append(out, FromPoll(p))
	}
	return out
}
