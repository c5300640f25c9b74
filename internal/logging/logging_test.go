package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/keralakitchen/kitchen-backend/internal/testutil"
)

func TestDBHandlerPersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour, 50)

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored")
	logger.Error("payment update failed", "action", "payments.advance", "user_id", "u-1", "error", "boom", "plan", "monthly")
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "ERROR", logs[0].Level)
	assert.Equal(t, "req-1", logs[0].RequestID)
	assert.Equal(t, "payments.advance", logs[0].Action)
	assert.Equal(t, "boom", logs[0].Error)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "u-1", *logs[0].UserID)
	assert.JSONEq(t, `{"plan":"monthly"}`, string(logs[0].Extra))
}

func TestMultiHandlerEnabled(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour, 50)
	defer h.Stop()

	m := NewMultiHandler(h)
	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))
}

type failingSink struct{ slog.Handler }

func (failingSink) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandlerKeepsGoingPastFailingSink(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiHandler(failingSink{newStdout(&buf)}, newStdout(&buf))

	rec := slog.NewRecord(time.Now(), slog.LevelWarn, "menu missing", 0)
	rec.AddAttrs(slog.String("request_id", "req-9"))
	err := m.Handle(context.Background(), rec)
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), `"msg":"menu missing"`)
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.Add(-40 * 24 * time.Hour), Level: "ERROR"},
		{ID: uuid.New(), Timestamp: now, Level: "ERROR"},
	}).Error)

	n, err := PurgeOlderThan(db, now.Add(-Retention))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
