package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"roompush/internal/model"
)

func TestSanitizeUUID(t *testing.T) {
	t.Run("strips quotes and whitespace", func(t *testing.T) {
		require.Equal(t, "11111111-1111-1111-1111-111111111111",
			SanitizeUUID(` "11111111-1111-1111-1111-111111111111" `))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Equal(t, "", SanitizeUUID(`""`))
		require.Equal(t, "", SanitizeUUID("   "))
	})
}

func TestIsValidUUID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		valid := []string{
			"11111111-1111-1111-1111-111111111111",
			"a3bb189e-8bf9-3888-9912-ace4e6543002",
			"A3BB189E-8BF9-3888-9912-ACE4E6543002",
		}
		for _, v := range valid {
			require.True(t, IsValidUUID(v), "expected valid uuid: %s", v)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"",
			"not-a-uuid",
			"11111111111111111111111111111111",
			"11111111-1111-1111-1111-11111111111",
			"11111111-1111-1111-1111-1111111111111",
			"g1111111-1111-1111-1111-111111111111",
			"urn:uuid:11111111-1111-1111-1111-111111111111",
		}
		for _, v := range invalid {
			require.False(t, IsValidUUID(v), "expected invalid uuid: %s", v)
		}
	})
}

func TestValidateEvent(t *testing.T) {
	t.Run("missing room id", func(t *testing.T) {
		err := ValidateEvent(model.RoomEvent{SenderID: "11111111-1111-1111-1111-111111111111"})
		require.ErrorIs(t, err, ErrMissingIdentifiers)
	})

	t.Run("missing sender id", func(t *testing.T) {
		err := ValidateEvent(model.RoomEvent{RoomID: "r1"})
		require.ErrorIs(t, err, ErrMissingIdentifiers)
	})

	t.Run("malformed sender id", func(t *testing.T) {
		err := ValidateEvent(model.RoomEvent{RoomID: "r1", SenderID: "not-a-uuid"})
		require.ErrorIs(t, err, ErrInvalidSenderID)
	})

	t.Run("valid", func(t *testing.T) {
		err := ValidateEvent(model.RoomEvent{
			RoomID:   "r1",
			SenderID: "11111111-1111-1111-1111-111111111111",
		})
		require.NoError(t, err)
	})
}

func TestNormalize(t *testing.T) {
	event := Normalize(model.RoomEvent{
		RoomID:     ` "r1" `,
		SenderID:   `"11111111-1111-1111-1111-111111111111"`,
		SenderName: "  Aisha ",
		Content:    " hello ",
	})
	require.Equal(t, "r1", event.RoomID)
	require.Equal(t, "11111111-1111-1111-1111-111111111111", event.SenderID)
	require.Equal(t, "Aisha", event.SenderName)
	require.Equal(t, "hello", event.Content)
}
