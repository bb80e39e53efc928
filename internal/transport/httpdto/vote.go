package httpdto

import "pollpulse/internal/services"

// VoteRequest is used for POST /polls/:id/vote
type VoteRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

// VoteResponse echoes the committed vote back to the caller
type VoteResponse struct {
	Message  string `json:"message"`
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
}

// ResultsPollDTO summarizes the poll inside a results response
type ResultsPollDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TotalVotes int64  `json:"total_votes"`
	IsActive   bool   `json:"is_active"`
	IsExpired  bool   `json:"is_expired"`
}

// OptionResultDTO is one row of a results response
type OptionResultDTO struct {
	Option     string  `json:"option"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// ResultsResponse is returned by GET /polls/:id/results
type ResultsResponse struct {
	Poll    ResultsPollDTO    `json:"poll"`
	Results []OptionResultDTO `json:"results"`
}

func FromResults(r services.PollResults) ResultsResponse {
	res := ResultsResponse{
		Poll: ResultsPollDTO{
			ID:         r.Poll.ID.String(),
			Title:      r.Poll.Title,
			TotalVotes: r.TotalVotes,
			IsActive:   r.Poll.IsActive && !r.IsExpired,
			IsExpired:  r.IsExpired,
		},
		Results: make([]OptionResultDTO, 0, len(r.Options)),
	}
	for _, opt := range r.Options {
		res.Results = append(res.Results, OptionResultDTO{
			Option:     opt.Text,
			Votes:      opt.Votes,
			Percentage: opt.Percentage,
		})
	}
	return res
}
