package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keralakitchen/kitchen-backend/internal/apperr"
	"github.com/keralakitchen/kitchen-backend/internal/models"
)

type sample struct {
	Email string                `json:"email" validate:"required,email"`
	Pass  string                `json:"password" validate:"required,min=6"`
	Pref  models.TimePreference `json:"time_preference" validate:"required,enum"`
	At    string                `json:"time" validate:"omitempty,clock"`
	Day   string                `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Cut   string                `json:"cutoff" validate:"omitempty,datetime=15:04"`
	Stars int                   `json:"rating" validate:"gte=1,lte=5"`
}

func TestStructValid(t *testing.T) {
	s := sample{Email: "a@b.ae", Pass: "secret", Pref: models.PreferBoth, At: "01:15 PM", Day: "2026-04-01", Cut: "18:00", Stars: 5}
	assert.NoError(t, Struct(s))
}

func TestStructCollectsFields(t *testing.T) {
	s := sample{Email: "nope", Pass: "123", Pref: "morning", At: "1:15", Day: "01/04/2026", Cut: "ab:cd", Stars: 0}
	err := Struct(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	fields := apperr.Fields(err)
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 6 characters", fields["password"])
	assert.Equal(t, `unknown value "morning"`, fields["time_preference"])
	assert.Equal(t, "must look like 01:30 PM", fields["time"])
	assert.Equal(t, "must be a date like 2026-01-31", fields["date"])
	assert.Equal(t, "must be a 24-hour time like 12:00", fields["cutoff"])
	assert.Equal(t, "must be 1 or more", fields["rating"])
}

func TestDatetimeRejectsImpossibleValues(t *testing.T) {
	for _, s := range []sample{
		{Email: "a@b.ae", Pass: "secret", Pref: models.PreferBoth, Day: "2026-02-30", Stars: 1},
		{Email: "a@b.ae", Pass: "secret", Pref: models.PreferBoth, Day: "2026-13-01", Stars: 1},
		{Email: "a@b.ae", Pass: "secret", Pref: models.PreferBoth, Cut: "24:30", Stars: 1},
	} {
		err := Struct(s)
		require.ErrorIs(t, err, apperr.ErrValidation, "%+v", s)
	}
}

func TestStructNested(t *testing.T) {
	type item struct {
		Name string `json:"name" validate:"required"`
	}
	type menu struct {
		Items []item `json:"items" validate:"required,min=1,dive"`
	}
	err := Struct(menu{Items: []item{{Name: "Sadya"}, {}}})
	require.Error(t, err)
	assert.Equal(t, "is required", apperr.Fields(err)["items[1].name"])
}
