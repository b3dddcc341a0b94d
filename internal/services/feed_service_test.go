package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexttalent/nexttalent/internal/database/testutil"
	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
)

func TestPublishFansOutToAudience(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	admin := seedAdmin(t, db, "admin@example.com")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewFeedService(db, notifier)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = svc.Publish(ctx, adminActor(admin), PublishNewsInput{
		Title:    "New career workshops",
		Body:     "Sign up for the upcoming sessions.",
		Audience: models.AudienceUsers,
	})
	require.NoError(t, err)

	require.Len(t, inboxMessages(t, db, seeker.ID, models.RoleUser), 1)
	require.Empty(t, inboxMessages(t, db, employer.ID, models.RoleEmployer))
}

func TestPublishToAllReachesEveryAccount(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")
	employer := seedEmployer(t, db, "acme@example.com", "Acme")
	admin := seedAdmin(t, db, "admin@example.com")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewFeedService(db, notifier)
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), adminActor(admin), PublishNewsInput{
		Title:    "Platform maintenance",
		Body:     "Expect downtime this weekend.",
		Audience: models.AudienceAll,
	})
	require.NoError(t, err)

	require.Len(t, inboxMessages(t, db, seeker.ID, models.RoleUser), 1)
	require.Len(t, inboxMessages(t, db, employer.ID, models.RoleEmployer), 1)
	require.Len(t, inboxMessages(t, db, admin.ID, models.RoleAdmin), 1)
}

func TestFeedListFilteredByRole(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")
	admin := seedAdmin(t, db, "admin@example.com")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewFeedService(db, notifier)
	require.NoError(t, err)

	ctx := context.Background()
	for _, spec := range []struct {
		title    string
		audience models.NewsAudience
	}{
		{"For seekers", models.AudienceUsers},
		{"For employers", models.AudienceEmployers},
		{"For everyone", models.AudienceAll},
	} {
		_, err := svc.Publish(ctx, adminActor(admin), PublishNewsInput{
			Title:    spec.title,
			Body:     "body",
			Audience: spec.audience,
		})
		require.NoError(t, err)
	}

	seekerPosts, err := svc.List(ctx, seekerActor(seeker))
	require.NoError(t, err)
	require.Len(t, seekerPosts, 2)

	adminPosts, err := svc.List(ctx, adminActor(admin))
	require.NoError(t, err)
	require.Len(t, adminPosts, 3)
}

func TestPublishAdminOnly(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	seeker := seedSeeker(t, db, "alice@example.com", "Alice Tan")

	notifier, err := NewNotificationService(db)
	require.NoError(t, err)
	svc, err := NewFeedService(db, notifier)
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), seekerActor(seeker), PublishNewsInput{
		Title:    "Spam",
		Body:     "body",
		Audience: models.AudienceAll,
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
