package match

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"foodshare/internal/database"
	"foodshare/internal/domain"
	"foodshare/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc           *Service
	donations     *repository.DonationRepository
	matches       *repository.MatchRepository
	notifications *repository.NotificationRepository

	donor     domain.User
	recipient domain.User
	donation  domain.Donation
	match     domain.Match
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := database.Connect(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))

	f := &fixture{
		donations:     repository.NewDonationRepository(db),
		matches:       repository.NewMatchRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
	f.svc = NewService(f.matches, f.donations, f.notifications)

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	requests := repository.NewRequestRepository(db)

	f.donor = domain.User{Role: domain.RoleDonor, Name: "Donor", Email: name + "-donor@test.local", PasswordHash: "x"}
	f.recipient = domain.User{Role: domain.RoleRecipient, Name: "Recipient", Email: name + "-r@test.local", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, &f.donor))
	require.NoError(t, users.Create(ctx, &f.recipient))

	category := domain.Category{Name: "Dairy"}
	require.NoError(t, categories.Create(ctx, &category))

	f.donation = domain.Donation{
		DonorID:    f.donor.ID,
		CategoryID: category.ID,
		Title:      "Milk crates",
		ExpiryDate: time.Now().Add(24 * time.Hour),
		Status:     domain.DonationClaimed,
	}
	require.NoError(t, f.donations.Create(ctx, &f.donation))

	req := domain.Request{
		RequesterID: f.recipient.ID,
		DonationID:  f.donation.ID,
		Status:      domain.RequestAccepted,
	}
	require.NoError(t, requests.Create(ctx, &req))

	now := time.Now()
	f.match = domain.Match{
		DonationID:  f.donation.ID,
		RequestID:   req.ID,
		DonorID:     f.donor.ID,
		RecipientID: f.recipient.ID,
		PickupDate:  now,
		Status:      domain.MatchScheduled,
		MatchDate:   now,
	}
	require.NoError(t, f.matches.CreateTx(f.matches.DB(), &f.match))

	return f
}

func TestUpdateStatus_CompletedCompletesDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.svc.UpdateStatus(ctx, f.match.ID, f.recipient.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCompleted, m.Status)

	d, err := f.donations.GetByID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationCompleted, d.Status)

	// Both parties get the same message
	for _, userID := range []int64{f.donor.ID, f.recipient.ID} {
		list, err := f.notifications.GetByUserID(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, domain.NotifMatch, list[0].Type)
		assert.Contains(t, list[0].Message, "completed")
	}
}

func TestUpdateStatus_CanceledReleasesDonation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.svc.UpdateStatus(ctx, f.match.ID, f.donor.ID, "canceled")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCanceled, m.Status)

	d, err := f.donations.GetByID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationAvailable, d.Status)
}

func TestUpdateStatus_NotParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.match.ID, 9999, "completed")
	assert.ErrorIs(t, err, ErrForbidden)

	// No state change
	m, err := f.matches.GetByID(ctx, f.match.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchScheduled, m.Status)
	d, err := f.donations.GetByID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationClaimed, d.Status)
}

func TestUpdateStatus_AlreadyResolved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, f.match.ID, f.donor.ID, "completed")
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.match.ID, f.donor.ID, "canceled")
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestUpdateStatus_InvalidTarget(t *testing.T) {
	f := newFixture(t)

	for _, status := range []string{"pending", "done", ""} {
		_, err := f.svc.UpdateStatus(context.Background(), f.match.ID, f.donor.ID, status)
		assert.ErrorIs(t, err, ErrValidation, "status %q", status)
	}
}

func TestUpdateStatus_RescheduleKeepsDonationClaimed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, err := f.svc.UpdateStatus(ctx, f.match.ID, f.donor.ID, "scheduled")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchScheduled, m.Status)

	// Donation untouched, both parties still notified
	d, err := f.donations.GetByID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationClaimed, d.Status)

	for _, userID := range []int64{f.donor.ID, f.recipient.ID} {
		list, err := f.notifications.GetByUserID(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, domain.NotifMatch, list[0].Type)
		assert.Contains(t, list[0].Message, "updated")
	}
}

func TestUpdateStatus_UnknownMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), 9999, f.donor.ID, "completed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForUser_BothSidesSeeMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, userID := range []int64{f.donor.ID, f.recipient.ID} {
		list, err := f.svc.ListForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Milk crates", list[0].DonationTitle)
	}

	other, err := f.svc.ListForUser(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, other)
}
