package poll

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Poll represents the polls table. Votability is always computed from
// (IsActive, ExpiresAt, now) at the moment of use; the stored IsActive
// flag alone may be stale between the expiry instant and the next write.
type Poll struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Title              string        `gorm:"size:200;not null"`
	Description        string        `gorm:"type:text"`
	OwnerID            uuid.NullUUID `gorm:"type:uuid;index"`
	IsActive           bool          `gorm:"not null;default:true;index"`
	AllowMultipleVotes bool          `gorm:"not null;default:false"`
	CreatedAt          time.Time     `gorm:"not null;index"`
	ExpiresAt          sql.NullTime  `gorm:"index"`

	Options []Option `gorm:"constraint:OnDelete:CASCADE"`
}

// Option represents the options table. PollID is immutable after
// creation; options are only created in the poll-creation batch.
type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PollID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:options_poll_order,priority:1"`
	Text       string    `gorm:"size:200;not null"`
	OrderIndex int       `gorm:"not null;uniqueIndex:options_poll_order,priority:2"`
	CreatedAt  time.Time `gorm:"not null"`
}

// Vote represents the votes table.
//
// DedupKey is the storage-level uniqueness handle: it equals VoterID
// when the poll enforces one vote per identity, and the vote's own ID
// when the poll allows multiple votes. The unique_vote_per_poll index
// on (poll_id, dedup_key) is the sole dedup mechanism under concurrent
// submission; there is no check-then-insert anywhere.
type Vote struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PollID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:unique_vote_per_poll,priority:1;index:idx_votes_poll"`
	OptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	VoterID  string    `gorm:"size:255;not null"`
	DedupKey string    `gorm:"size:255;not null;uniqueIndex:unique_vote_per_poll,priority:2"`
	VotedAt  time.Time `gorm:"not null"`
}

func (Poll) TableName() string {
	return "polls"
}

func (Option) TableName() string {
	return "options"
}

func (Vote) TableName() string {
	return "votes"
}

// IsExpired reports whether the poll's expiry timestamp has passed.
// Polls without an expiry never expire.
func (p Poll) IsExpired(now time.Time) bool {
	return p.ExpiresAt.Valid && now.After(p.ExpiresAt.Time)
}

// Votable reports whether the poll accepts votes at the given instant.
func (p Poll) Votable(now time.Time) bool {
	return p.IsActive && !p.IsExpired(now)
}

// OwnedBy reports whether userID owns the poll. Anonymous polls have no
// owner and are owned by nobody.
func (p Poll) OwnedBy(userID uuid.UUID) bool {
	return p.OwnerID.Valid && p.OwnerID.UUID == userID
}

// NewVote builds a vote for the given poll and option, choosing the
// dedup key according to the poll's multiple-votes flag.
func NewVote(p Poll, optionID uuid.UUID, voterID string, now time.Time) Vote {
	v := Vote{
		ID:       uuid.New(),
		PollID:   p.ID,
		OptionID: optionID,
		VoterID:  voterID,
		VotedAt:  now,
	}
	if p.AllowMultipleVotes {
		v.DedupKey = v.ID.String()
	} else {
		v.DedupKey = voterID
	}
	return v
}
