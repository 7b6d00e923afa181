package storylog_test

import (
	"testing"

	"github.com/serroba/storylog/internal/storylog"
	"github.com/stretchr/testify/assert"
)

func TestParseSubmission(t *testing.T) {
	t.Run("reads string fields", func(t *testing.T) {
		sub := storylog.ParseSubmission([]byte(`{"token_id":"abc","story":"hello"}`))

		assert.Equal(t, "abc", sub.Get(storylog.FieldTokenID))
		assert.Equal(t, "hello", sub.Get(storylog.FieldStory))
	})

	t.Run("malformed json yields an empty submission", func(t *testing.T) {
		sub := storylog.ParseSubmission([]byte(`{"token_id":`))

		assert.Empty(t, sub.Get(storylog.FieldTokenID))
		assert.False(t, sub.Honeypot())
	})

	t.Run("non-object documents yield an empty submission", func(t *testing.T) {
		for _, raw := range []string{`null`, `[1,2]`, `"text"`, `42`, ``} {
			sub := storylog.ParseSubmission([]byte(raw))

			assert.Empty(t, sub.Get(storylog.FieldTokenID), raw)
		}
	})

	t.Run("stringifies numbers and booleans", func(t *testing.T) {
		sub := storylog.ParseSubmission([]byte(`{"token_id":12345,"consent_public":true,"batch":1.5}`))

		assert.Equal(t, "12345", sub.Get(storylog.FieldTokenID))
		assert.Equal(t, "true", sub.Get(storylog.FieldConsentPublic))
		assert.Equal(t, "1.5", sub.Get(storylog.FieldBatch))
	})

	t.Run("falsy values read as empty", func(t *testing.T) {
		sub := storylog.ParseSubmission([]byte(`{"channel":"","batch":0,"consent_public":false,"story":null}`))

		assert.Empty(t, sub.Get(storylog.FieldChannel))
		assert.Empty(t, sub.Get(storylog.FieldBatch))
		assert.Empty(t, sub.Get(storylog.FieldConsentPublic))
		assert.Empty(t, sub.Get(storylog.FieldStory))
		assert.Equal(t, "card", sub.GetOr(storylog.FieldChannel, storylog.DefaultChannel))
	})
}

func TestSubmission_Honeypot(t *testing.T) {
	t.Run("absent honey is not a trip", func(t *testing.T) {
		assert.False(t, storylog.NewSubmission(nil).Honeypot())
	})

	t.Run("blank honey is not a trip", func(t *testing.T) {
		sub := storylog.NewSubmission(map[string]any{"honey": "   \t"})

		assert.False(t, sub.Honeypot())
	})

	t.Run("non-blank honey trips", func(t *testing.T) {
		sub := storylog.NewSubmission(map[string]any{"honey": " gotcha "})

		assert.True(t, sub.Honeypot())
	})
}
