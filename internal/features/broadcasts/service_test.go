package broadcasts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/events"
	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/testutil"
)

func setup(t *testing.T) (*Service, *testutil.Recorder) {
	db := testutil.NewDB(t, New().Models()...)
	rec := &testutil.Recorder{}
	return NewService(db, rec), rec
}

func TestActiveListsOnlySwitchedOn(t *testing.T) {
	svc, rec := setup(t)

	_, err := svc.CreateBanner(BannerRequest{Title: "Eid timings", Content: "Deliveries start 2pm", Type: models.BannerInfo, IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateBanner(BannerRequest{Title: "Draft", Content: "not yet", Type: models.BannerSuccess})
	require.NoError(t, err)
	_, err = svc.CreateNotification(NotificationRequest{Title: "Rain", Message: "Expect delays", Type: models.NotificationWarning})
	require.NoError(t, err)

	active, err := svc.Active()
	require.NoError(t, err)
	require.Len(t, active.Banners, 1)
	assert.Equal(t, "Eid timings", active.Banners[0].Title)
	assert.Empty(t, active.Notifications)

	assert.Equal(t, []string{events.BroadcastActivated}, rec.Keys())
	ev, ok := rec.Events()[0].Data.(Event)
	require.True(t, ok)
	assert.Equal(t, KindBanner, ev.Kind)
}

func TestToggleFlipsAndAnnouncesActivation(t *testing.T) {
	svc, rec := setup(t)
	n, err := svc.CreateNotification(NotificationRequest{Title: "Holiday", Message: "Closed Friday", Type: models.NotificationEmergency})
	require.NoError(t, err)
	assert.False(t, n.IsActive)

	on, err := svc.ToggleNotification(n.ID)
	require.NoError(t, err)
	assert.True(t, on.IsActive)

	off, err := svc.ToggleNotification(n.ID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	assert.Equal(t, []string{events.BroadcastActivated}, rec.Keys())

	_, err = svc.ToggleBanner(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateAnnouncesOnlyOnActivation(t *testing.T) {
	svc, rec := setup(t)
	b, err := svc.CreateBanner(BannerRequest{Title: "Menu", Content: "New dishes", Type: models.BannerInfo})
	require.NoError(t, err)

	_, err = svc.UpdateBanner(b.ID, BannerRequest{Title: "Menu", Content: "New dishes soon", Type: models.BannerInfo, IsActive: true})
	require.NoError(t, err)
	_, err = svc.UpdateBanner(b.ID, BannerRequest{Title: "Menu!", Content: "New dishes now", Type: models.BannerWarning, IsActive: true})
	require.NoError(t, err)
	assert.Len(t, rec.Keys(), 1)

	require.NoError(t, svc.DeleteBanner(b.ID))
	list, err := svc.Banners()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBroadcastValidation(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.CreateNotification(NotificationRequest{Title: "x", Message: "y", Type: "success"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, apperr.Fields(err), "type")

	_, err = svc.CreateBanner(BannerRequest{Type: models.BannerEmergency})
	require.ErrorIs(t, err, apperr.ErrValidation)
	fields := apperr.Fields(err)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "content")
}
