package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"pollpulse/internal/domain/poll"
	pollpulse_errors "pollpulse/pkg/errors"
)

func TestCreatePollValidation(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()
	owner := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	past := time.Now().Add(-time.Minute)

	cases := []struct {
		name string
		in   CreatePollInput
	}{
		{"blank title", CreatePollInput{Title: "  ", Options: []string{"A", "B"}}},
		{"one option", CreatePollInput{Title: "Poll", Options: []string{"A"}}},
		{"no options", CreatePollInput{Title: "Poll"}},
		{"blank option", CreatePollInput{Title: "Poll", Options: []string{"A", " "}}},
		{"past expiry", CreatePollInput{Title: "Poll", Options: []string{"A", "B"}, ExpiresAt: &past}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.polls.Create(ctx, owner, tc.in)
			if !errors.Is(err, pollpulse_errors.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreatePoll(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()

	expiry := time.Now().Add(24 * time.Hour)
	p, err := f.polls.Create(ctx, uuid.NullUUID{UUID: uuid.New(), Valid: true}, CreatePollInput{
		Title:       "Favorite language?",
		Description: "Pick one.",
		ExpiresAt:   &expiry,
		Options:     []string{"Python", "Go", "Rust"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !p.IsActive {
		t.Error("new poll should be active")
	}
	if len(p.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(p.Options))
	}
	for i, o := range p.Options {
		if o.OrderIndex != i {
			t.Errorf("option %d order index = %d", i, o.OrderIndex)
		}
	}

	got, err := f.polls.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Favorite language?" || len(got.Options) != 3 {
		t.Errorf("stored poll mismatch: %+v", got)
	}
}

func TestCreatePollAnonymousOwner(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()

	p, err := f.polls.Create(ctx, uuid.NullUUID{}, CreatePollInput{
		Title:   "Anonymous poll",
		Options: []string{"Yes", "No"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Nobody owns an anonymous poll, so nobody may edit it.
	title := "Renamed"
	_, err = f.polls.Update(ctx, uuid.New(), p.ID, UpdatePollInput{Title: &title})
	if !errors.Is(err, pollpulse_errors.ErrForbidden) {
		t.Errorf("update error = %v, want ErrForbidden", err)
	}
}

func TestGetLazyDeactivation(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()

	expiry := time.Now().Add(time.Hour)
	p := f.createPoll(t, CreatePollInput{
		Title:     "Soon expired",
		ExpiresAt: &expiry,
		Options:   []string{"A", "B"},
	})
	f.expirePoll(t, p.ID)

	got, err := f.polls.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IsActive {
		t.Error("expired poll reported active")
	}

	var stored poll.Poll
	if err := f.db.First(&stored, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload poll: %v", err)
	}
	if stored.IsActive {
		t.Error("expired flag not written back")
	}
}

func TestListFiltersOnLiveState(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()

	active := f.createPoll(t, CreatePollInput{Title: "Active", Options: []string{"A", "B"}})

	expiry := time.Now().Add(time.Hour)
	stale := f.createPoll(t, CreatePollInput{
		Title:     "Expired but flagged active",
		ExpiresAt: &expiry,
		Options:   []string{"A", "B"},
	})
	f.expirePoll(t, stale.ID)

	wantActive := true
	got, err := f.polls.List(ctx, &wantActive)
	if err != nil {
		t.Fatalf("List(active) error = %v", err)
	}
	if len(got) != 1 || got[0].ID != active.ID {
		t.Errorf("active list = %d polls, want only the active one", len(got))
	}

	wantActive = false
	got, err = f.polls.List(ctx, &wantActive)
	if err != nil {
		t.Fatalf("List(inactive) error = %v", err)
	}
	if len(got) != 1 || got[0].ID != stale.ID {
		t.Errorf("inactive list = %d polls, want only the expired one", len(got))
	}

	got, err = f.polls.List(ctx, nil)
	if err != nil {
		t.Fatalf("List(all) error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("unfiltered list = %d polls, want 2", len(got))
	}
}

func TestUpdatePoll(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()

	owner := uuid.New()
	p, err := f.polls.Create(ctx, uuid.NullUUID{UUID: owner, Valid: true},
		CreatePollInput{Title: "Original", Options: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}

	title := "Renamed"
	inactive := false
	got, err := f.polls.Update(ctx, owner, p.ID, UpdatePollInput{Title: &title, IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Title != "Renamed" || got.IsActive {
		t.Errorf("updated poll = %+v", got)
	}

	past := time.Now().Add(-time.Minute)
	if _, err := f.polls.Update(ctx, owner, p.ID, UpdatePollInput{ExpiresAt: &past}); !errors.Is(err, pollpulse_errors.ErrValidation) {
		t.Errorf("past expiry error = %v, want ErrValidation", err)
	}

	if _, err := f.polls.Update(ctx, uuid.New(), p.ID, UpdatePollInput{Title: &title}); !errors.Is(err, pollpulse_errors.ErrForbidden) {
		t.Errorf("non-owner error = %v, want ErrForbidden", err)
	}
}

func TestDeletePoll(t *testing.T) {
	f := newVotingFixture(t)
	ctx := context.Background()

	owner := uuid.New()
	p, err := f.polls.Create(ctx, uuid.NullUUID{UUID: owner, Valid: true},
		CreatePollInput{Title: "Doomed", Options: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	if _, err := f.voting.CastVote(ctx, p.ID, p.Options[0].ID, "user-a"); err != nil {
		t.Fatalf("vote: %v", err)
	}

	if err := f.polls.Delete(ctx, uuid.New(), p.ID); !errors.Is(err, pollpulse_errors.ErrForbidden) {
		t.Errorf("non-owner delete error = %v, want ErrForbidden", err)
	}

	if err := f.polls.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := f.polls.Get(ctx, p.ID); !errors.Is(err, pollpulse_errors.ErrNotFound) {
		t.Errorf("get after delete error = %v, want ErrNotFound", err)
	}

	var votes int64
	if err := f.db.Model(&poll.Vote{}).Where("poll_id = ?", p.ID).Count(&votes).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if votes != 0 {
		t.Errorf("votes left behind after delete: %d", votes)
	}
	var options int64
	if err := f.db.Model(&poll.Option{}).Where("poll_id = ?", p.ID).Count(&options).Error; err != nil {
		t.Fatalf("count options: %v", err)
	}
	if options != 0 {
		t.Errorf("options left behind after delete: %d", options)
	}
}
