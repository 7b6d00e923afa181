package storylog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/serroba/storylog/internal/storylog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 8, 30, 15, 123_000_000, time.UTC)

func fixedID() string { return "00000000-0000-4000-8000-000000000000" }

func TestBuild(t *testing.T) {
	t.Run("requires a token id", func(t *testing.T) {
		rec, err := storylog.Build(storylog.NewSubmission(nil), storylog.Context{}, fixedNow, fixedID)

		assert.Nil(t, rec)
		require.ErrorIs(t, err, storylog.ErrTokenRequired)
		assert.Equal(t, "TOKEN_ID_REQUIRED", err.Error())
	})

	t.Run("token that normalizes to empty is rejected", func(t *testing.T) {
		sub := storylog.NewSubmission(map[string]any{"token_id": "\x00\x01"})

		_, err := storylog.Build(sub, storylog.Context{}, fixedNow, fixedID)

		assert.ErrorIs(t, err, storylog.ErrTokenRequired)
	})

	t.Run("shapes core fields", func(t *testing.T) {
		sub := storylog.NewSubmission(map[string]any{
			"token_id":       "abc123",
			"story":          "hello",
			"consent_public": "TRUE",
			"batch":          "spring",
		})
		reqCtx := storylog.Context{Geo: storylog.Geo{City: "Lisbon", Country: "PT"}}

		rec, err := storylog.Build(sub, reqCtx, fixedNow, fixedID)

		require.NoError(t, err)
		assert.Equal(t, fixedID(), rec.Core.EventID)
		assert.Equal(t, "2026-10-19T08:30:15.123Z", rec.Core.TimestampISO)
		assert.Equal(t, "ABC123", rec.Core.TokenID)
		assert.Equal(t, "hello", rec.Core.Story)
		assert.Equal(t, "Lisbon", rec.Core.City)
		assert.Equal(t, "PT", rec.Core.Country)
		assert.Equal(t, "card", rec.Core.Channel)
		assert.Equal(t, "spring", rec.Core.Batch)
		assert.True(t, rec.Core.ConsentPublic)
	})

	t.Run("consent is false unless exactly true", func(t *testing.T) {
		for _, v := range []any{"yes", "1", "true ", nil, false} {
			sub := storylog.NewSubmission(map[string]any{"token_id": "t", "consent_public": v})

			rec, err := storylog.Build(sub, storylog.Context{}, fixedNow, fixedID)

			require.NoError(t, err)
			assert.False(t, rec.Core.ConsentPublic, v)
		}
	})

	t.Run("bounds every field", func(t *testing.T) {
		long := strings.Repeat("z", 5000)
		sub := storylog.NewSubmission(map[string]any{
			"token_id":   long,
			"story":      long,
			"channel":    long,
			"utm_source": long,
			"qr_id":      long,
		})
		reqCtx := storylog.Context{
			ClientIP:       long,
			UserAgent:      long,
			AcceptLanguage: long,
			Geo:            storylog.Geo{City: long, Country: long, Timezone: long},
		}

		rec, err := storylog.Build(sub, reqCtx, fixedNow, fixedID)

		require.NoError(t, err)
		assert.Len(t, rec.Core.TokenID, storylog.MaxTokenID)
		assert.Len(t, rec.Core.Story, storylog.MaxStory)
		assert.Len(t, rec.Core.Channel, storylog.MaxChannel)
		assert.Len(t, rec.Core.City, storylog.MaxCity)
		assert.Len(t, rec.Core.Country, storylog.MaxCountry)
		assert.Len(t, rec.Meta.TimezoneEdge, storylog.MaxTimezone)
		assert.Len(t, rec.Meta.IP, storylog.MaxIP)
		assert.Len(t, rec.Meta.UserAgent, storylog.MaxUserAgent)
		assert.Len(t, rec.Meta.AcceptLanguage, storylog.MaxAcceptLanguage)
		assert.Len(t, rec.Meta.UTMSource, storylog.MaxUTM)
		assert.Len(t, rec.Meta.QRID, storylog.MaxCorrelationID)
	})

	t.Run("enriches meta from request context", func(t *testing.T) {
		sub := storylog.NewSubmission(map[string]any{
			"token_id":        "t1",
			"timezone_client": "Europe/Lisbon",
			"utm_campaign":    "launch",
			"drop_id":         "d-9",
		})
		reqCtx := storylog.Context{
			ClientIP:       "1.2.3.4, 10.0.0.1",
			UserAgent:      "TestAgent/1.0",
			Referer:        "https://example.com/",
			AcceptLanguage: "pt-PT,pt;q=0.9",
			Geo: storylog.Geo{
				Timezone:  "Europe/Lisbon",
				Latitude:  "38.7223",
				Longitude: "-9.1393",
			},
		}

		rec, err := storylog.Build(sub, reqCtx, fixedNow, fixedID)

		require.NoError(t, err)
		assert.Equal(t, "1.2.3.4", rec.Meta.IP)
		assert.Equal(t, "38.72", rec.Meta.Lat)
		assert.Equal(t, "-9.14", rec.Meta.Lon)
		assert.Equal(t, "Europe/Lisbon", rec.Meta.TimezoneEdge)
		assert.Equal(t, "Europe/Lisbon", rec.Meta.TimezoneClient)
		assert.Equal(t, "TestAgent/1.0", rec.Meta.UserAgent)
		assert.Equal(t, "https://example.com/", rec.Meta.Referer)
		assert.Equal(t, "pt-PT,pt;q=0.9", rec.Meta.AcceptLanguage)
		assert.Equal(t, "launch", rec.Meta.UTMCampaign)
		assert.Equal(t, "d-9", rec.Meta.DropID)
	})

	t.Run("missing context degrades to empty strings", func(t *testing.T) {
		sub := storylog.NewSubmission(map[string]any{"token_id": "t1"})

		rec, err := storylog.Build(sub, storylog.Context{}, fixedNow, fixedID)

		require.NoError(t, err)
		assert.Empty(t, rec.Meta.Lat)
		assert.Empty(t, rec.Meta.Lon)
		assert.Empty(t, rec.Meta.IP)
		assert.Empty(t, rec.Core.City)
	})
}

func TestFirstHop(t *testing.T) {
	assert.Equal(t, "1.2.3.4", storylog.FirstHop("1.2.3.4"))
	assert.Equal(t, "1.2.3.4", storylog.FirstHop(" 1.2.3.4 , 10.0.0.1"))
	assert.Empty(t, storylog.FirstHop(""))
}
