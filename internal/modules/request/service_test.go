package request

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
	requests      *repository.RequestRepository
	matches       *repository.MatchRepository
	notifications *repository.NotificationRepository

	donor      domain.User
	recipient1 domain.User
	recipient2 domain.User
	donation   domain.Donation
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
		requests:      repository.NewRequestRepository(db),
		matches:       repository.NewMatchRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
	f.svc = NewService(f.requests, f.donations, f.matches, f.notifications)

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)

	f.donor = domain.User{Role: domain.RoleDonor, Name: "Donor", Email: name + "-donor@test.local", PasswordHash: "x"}
	f.recipient1 = domain.User{Role: domain.RoleRecipient, Name: "Recipient One", Email: name + "-r1@test.local", PasswordHash: "x"}
	f.recipient2 = domain.User{Role: domain.RoleRecipient, Name: "Recipient Two", Email: name + "-r2@test.local", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, &f.donor))
	require.NoError(t, users.Create(ctx, &f.recipient1))
	require.NoError(t, users.Create(ctx, &f.recipient2))

	category := domain.Category{Name: "Bakery"}
	require.NoError(t, categories.Create(ctx, &category))

	f.donation = domain.Donation{
		DonorID:    f.donor.ID,
		CategoryID: category.ID,
		Title:      "Day-old bread",
		ExpiryDate: time.Now().Add(24 * time.Hour),
		Status:     domain.DonationAvailable,
	}
	require.NoError(t, f.donations.Create(ctx, &f.donation))

	return f
}

func (f *fixture) pendingRequest(t *testing.T, requesterID int64) *domain.Request {
	t.Helper()
	r, err := f.svc.Create(context.Background(), CreateRequest{
		RequesterID: requesterID,
		DonationID:  f.donation.ID,
	})
	require.NoError(t, err)
	return r
}

func TestCreate_PendingOnAvailableDonation(t *testing.T) {
	f := newFixture(t)

	r := f.pendingRequest(t, f.recipient1.ID)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.NotZero(t, r.ID)
}

func TestCreate_OwnDonationRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateRequest{
		RequesterID: f.donor.ID,
		DonationID:  f.donation.ID,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_ClaimedDonationUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.donations.UpdateStatus(ctx, f.donation.ID, domain.DonationClaimed))

	_, err := f.svc.Create(ctx, CreateRequest{
		RequesterID: f.recipient1.ID,
		DonationID:  f.donation.ID,
	})
	assert.ErrorIs(t, err, ErrDonationUnavailable)
}

func TestCreate_UnknownDonation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateRequest{
		RequesterID: f.recipient1.ID,
		DonationID:  9999,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccept_FullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.pendingRequest(t, f.recipient1.ID)
	r2 := f.pendingRequest(t, f.recipient2.ID)

	result, err := f.svc.UpdateStatus(ctx, r1.ID, f.donor.ID, "accepted")
	require.NoError(t, err)

	assert.Equal(t, domain.RequestAccepted, result.Request.Status)
	require.NotNil(t, result.Match)
	assert.Equal(t, domain.MatchScheduled, result.Match.Status)
	assert.Equal(t, f.donor.ID, result.Match.DonorID)
	assert.Equal(t, f.recipient1.ID, result.Match.RecipientID)
	assert.Equal(t, f.donation.ID, result.Match.DonationID)

	// Donation is claimed
	d, err := f.donations.GetByID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationClaimed, d.Status)

	// Sibling request auto-rejected, nothing left pending
	sibling, err := f.requests.GetByID(ctx, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, sibling.Status)

	pending, err := f.requests.PendingForDonation(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Exactly one match exists for the donation
	m, err := f.matches.GetByDonationID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Match.ID, m.ID)

	// Both parties notified
	toRecipient, err := f.notifications.GetByUserID(ctx, f.recipient1.ID, 10)
	require.NoError(t, err)
	require.Len(t, toRecipient, 1)
	assert.Equal(t, domain.NotifRequestAccepted, toRecipient[0].Type)
	assert.Contains(t, toRecipient[0].Message, "Day-old bread")

	toDonor, err := f.notifications.GetByUserID(ctx, f.donor.ID, 10)
	require.NoError(t, err)
	require.Len(t, toDonor, 1)
	assert.Equal(t, domain.NotifMatch, toDonor[0].Type)
}

func TestAccept_SecondAcceptConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.pendingRequest(t, f.recipient1.ID)
	r2 := f.pendingRequest(t, f.recipient2.ID)

	_, err := f.svc.UpdateStatus(ctx, r1.ID, f.donor.ID, "accepted")
	require.NoError(t, err)

	// The sibling is already rejected, so a second accept fails fast.
	_, err = f.svc.UpdateStatus(ctx, r2.ID, f.donor.ID, "accepted")
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestAccept_NotDonor(t *testing.T) {
	f := newFixture(t)

	r1 := f.pendingRequest(t, f.recipient1.ID)

	_, err := f.svc.UpdateStatus(context.Background(), r1.ID, f.recipient2.ID, "accepted")
	assert.ErrorIs(t, err, ErrForbidden)

	// No state change
	r, err := f.requests.GetByID(context.Background(), r1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, r.Status)
}

func TestAccept_ClaimedDonationConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.pendingRequest(t, f.recipient1.ID)

	require.NoError(t, f.donations.UpdateStatus(ctx, f.donation.ID, domain.DonationClaimed))

	_, err := f.svc.UpdateStatus(ctx, r1.ID, f.donor.ID, "accepted")
	assert.ErrorIs(t, err, ErrDonationUnavailable)

	// Rolled back: request stays pending
	r, err := f.requests.GetByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, r.Status)
}

func TestReject_NotifiesRequesterOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1 := f.pendingRequest(t, f.recipient1.ID)

	result, err := f.svc.UpdateStatus(ctx, r1.ID, f.donor.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, result.Request.Status)
	assert.Nil(t, result.Match)

	// Donation stays available
	d, err := f.donations.GetByID(ctx, f.donation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DonationAvailable, d.Status)

	toRecipient, err := f.notifications.GetByUserID(ctx, f.recipient1.ID, 10)
	require.NoError(t, err)
	require.Len(t, toRecipient, 1)
	assert.Equal(t, domain.NotifRequestRejected, toRecipient[0].Type)

	toDonor, err := f.notifications.GetByUserID(ctx, f.donor.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, toDonor)
}

func TestUpdateStatus_InvalidTarget(t *testing.T) {
	f := newFixture(t)

	r1 := f.pendingRequest(t, f.recipient1.ID)

	for _, status := range []string{"pending", "done", ""} {
		_, err := f.svc.UpdateStatus(context.Background(), r1.ID, f.donor.ID, status)
		assert.ErrorIs(t, err, ErrValidation, "status %q", status)
	}
}

func TestListForUser_IncludesBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.pendingRequest(t, f.recipient1.ID)

	asRequester, err := f.svc.ListForUser(ctx, f.recipient1.ID)
	require.NoError(t, err)
	require.Len(t, asRequester, 1)
	assert.Equal(t, "Day-old bread", asRequester[0].DonationTitle)

	asDonor, err := f.svc.ListForUser(ctx, f.donor.ID)
	require.NoError(t, err)
	assert.Len(t, asDonor, 1)

	other, err := f.svc.ListForUser(ctx, f.recipient2.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}
