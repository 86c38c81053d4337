package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/cosmos-order/trial-engine/internal/errors"
	"github.com/cosmos-order/trial-engine/internal/model"
)

func TestCreateAndGet(t *testing.T) {
	s := NewTrialStore(nil)

	trial := &model.TrialUser{InvitationID: "INV-1", CompanyName: "Aphrodite Suites"}
	require.NoError(t, s.Create(trial))

	assert.Equal(t, trial, s.Get("INV-1"))
	assert.Nil(t, s.Get("INV-2"))
	assert.Equal(t, 1, s.Len())
}

func TestCreateDuplicateIsRejected(t *testing.T) {
	s := NewTrialStore(nil)

	require.NoError(t, s.Create(&model.TrialUser{InvitationID: "INV-1", CompanyName: "first"}))
	err := s.Create(&model.TrialUser{InvitationID: "INV-1", CompanyName: "second"})

	var exists *appErrors.ErrTrialExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "first", s.Get("INV-1").CompanyName)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewTrialStore(nil)
	require.NoError(t, s.Create(&model.TrialUser{
		InvitationID:  "INV-1",
		CampaignsSent: []string{"welcome"},
	}))

	got := s.Get("INV-1")
	got.CompanyName = "scribbled over"
	got.CampaignsSent = append(got.CampaignsSent, "final_72h")

	fresh := s.Get("INV-1")
	assert.Empty(t, fresh.CompanyName)
	assert.Equal(t, []string{"welcome"}, fresh.CampaignsSent)
}

func TestViewUnknownReturnsFalse(t *testing.T) {
	s := NewTrialStore(nil)
	require.NoError(t, s.Create(&model.TrialUser{InvitationID: "INV-1", TrialDays: 30}))

	var days int
	ok := s.View("INV-1", func(trial *model.TrialUser) { days = trial.TrialDays })
	assert.True(t, ok)
	assert.Equal(t, 30, days)

	assert.False(t, s.View("INV-GHOST", func(*model.TrialUser) { t.Fatal("fn ran for unknown id") }))
}

func TestWithUnknownReturnsFalse(t *testing.T) {
	s := NewTrialStore(nil)

	called := false
	ok := s.With("INV-GHOST", func(*model.TrialUser) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
}

func TestForEachVisitsAll(t *testing.T) {
	s := NewTrialStore(nil)
	require.NoError(t, s.Create(&model.TrialUser{InvitationID: "INV-1"}))
	require.NoError(t, s.Create(&model.TrialUser{InvitationID: "INV-2"}))

	seen := map[string]bool{}
	s.ForEach(func(trial *model.TrialUser) { seen[trial.InvitationID] = true })

	assert.Equal(t, map[string]bool{"INV-1": true, "INV-2": true}, seen)
}

func TestInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewTrialStore(func() time.Time { return fixed })

	assert.Equal(t, fixed, s.Now())
}
