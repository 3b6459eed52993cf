//go:build unit

package commands_test

import (
	"context"
	"testing"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("autosave applies the edit and schedules one save", func(t *testing.T) {
		f := newFixture(t, nil)
		uc := commands.NewDraftUseCase(f.autosaver, f.b.Rules, f.clock)

		res, err := uc.Autosave(ctx, f.draftKey(), f.b.Payload, commands.FieldEdit{Field: testdrive.FieldAdditionalNotes, Value: "Highway please"})
		require.NoError(t, err)
		assert.True(t, res.Pending)
		assert.Nil(t, res.FieldError)
		assert.Equal(t, "Highway please", res.Payload.AdditionalNotes)
		assert.True(t, f.autosaver.Pending(f.draftKey()))

		// load sees the pending edit
		d, ok := uc.Load(ctx, f.draftKey())
		require.True(t, ok)
		assert.Equal(t, "Highway please", d.Payload.AdditionalNotes)
		assert.False(t, f.autosaver.Pending(f.draftKey()))
	})

	t.Run("changing the date clears the time", func(t *testing.T) {
		f := newFixture(t, nil)
		uc := commands.NewDraftUseCase(f.autosaver, f.b.Rules, f.clock)

		newDate := f.b.Now.AddDate(0, 0, 6).Format(testdrive.DateLayout)
		res, err := uc.Autosave(ctx, f.draftKey(), f.b.Payload, commands.FieldEdit{Field: testdrive.FieldPreferredDate, Value: newDate})
		require.NoError(t, err)
		assert.Equal(t, newDate, res.Payload.PreferredDate)
		assert.Empty(t, res.Payload.PreferredTime)
		assert.Nil(t, res.FieldError)
	})

	t.Run("edited field is validated", func(t *testing.T) {
		f := newFixture(t, nil)
		uc := commands.NewDraftUseCase(f.autosaver, f.b.Rules, f.clock)

		res, err := uc.Autosave(ctx, f.draftKey(), f.b.Payload, commands.FieldEdit{Field: testdrive.FieldEmail, Value: "not-an-email"})
		require.NoError(t, err)
		require.NotNil(t, res.FieldError)
		assert.Equal(t, testdrive.CodeInvalidFormat, res.FieldError.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		f := newFixture(t, nil)
		uc := commands.NewDraftUseCase(f.autosaver, f.b.Rules, f.clock)

		_, err := uc.Autosave(ctx, f.draftKey(), f.b.Payload, commands.FieldEdit{Field: "favouriteColour", Value: "red"})
		assert.ErrorIs(t, err, commands.ErrUnknownField)
	})

	t.Run("explicit save supersedes the pending autosave and discard removes both", func(t *testing.T) {
		f := newFixture(t, nil)
		uc := commands.NewDraftUseCase(f.autosaver, f.b.Rules, f.clock)

		_, err := uc.Autosave(ctx, f.draftKey(), f.b.Payload, commands.FieldEdit{Field: testdrive.FieldName, Value: "Old"})
		require.NoError(t, err)
		assert.True(t, uc.Save(ctx, f.draftKey(), f.b.Payload))
		assert.False(t, f.autosaver.Pending(f.draftKey()))
		assert.False(t, uc.Flush(ctx, f.draftKey()))

		uc.Discard(ctx, f.draftKey())
		_, ok := uc.Load(ctx, f.draftKey())
		assert.False(t, ok)
	})
}
