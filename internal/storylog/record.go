package storylog

import (
	"errors"
	"strings"
	"time"
)

// ErrTokenRequired is returned when a submission carries no usable token id.
var ErrTokenRequired = errors.New("TOKEN_ID_REQUIRED")

// TimestampLayout renders UTC instants with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// IDGenerator produces a fresh event id.
type IDGenerator func() string

// Geo is the edge network's view of where a request came from. Values are kept
// as received; bounding happens when a record is built.
type Geo struct {
	City      string
	Country   string
	Timezone  string
	Latitude  string
	Longitude string
}

// Context carries everything derived from the transport rather than the body.
type Context struct {
	ClientIP       string
	UserAgent      string
	Referer        string
	AcceptLanguage string
	Geo            Geo
}

// Core holds the fields stored as individual sink columns.
type Core struct {
	EventID       string `json:"event_id"`
	TimestampISO  string `json:"timestamp_iso"`
	TokenID       string `json:"token_id"`
	Story         string `json:"story"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Channel       string `json:"channel"`
	Batch         string `json:"batch"`
	ConsentPublic bool   `json:"consent_public"`
}

// Meta holds contextual fields bundled into a single serialized column.
type Meta struct {
	TimezoneEdge   string `json:"timezone_edge"`
	TimezoneClient string `json:"timezone_client"`
	Lat            string `json:"lat"`
	Lon            string `json:"lon"`
	IP             string `json:"ip"`
	UserAgent      string `json:"user_agent"`
	UTMSource      string `json:"utm_source"`
	UTMMedium      string `json:"utm_medium"`
	UTMCampaign    string `json:"utm_campaign"`
	UTMContent     string `json:"utm_content"`
	UTMTerm        string `json:"utm_term"`
	QRID           string `json:"qr_id"`
	DropID         string `json:"drop_id"`
	Referer        string `json:"referer"`
	AcceptLanguage string `json:"accept_language"`
}

// Record is one normalized event ready to forward.
type Record struct {
	Core Core
	Meta Meta
}

// NormalizeToken upper-cases and bounds a raw token id.
func NormalizeToken(raw string) string {
	return Clamp(strings.ToUpper(raw), MaxTokenID)
}

// FirstHop returns the first address of a comma-separated forwarded-for chain.
func FirstHop(chain string) string {
	if idx := strings.Index(chain, ","); idx != -1 {
		chain = chain[:idx]
	}

	return strings.TrimSpace(chain)
}

// Build validates a submission and shapes it, together with the request context,
// into a record. The only failure is a missing token id.
func Build(sub Submission, reqCtx Context, now time.Time, newID IDGenerator) (*Record, error) {
	tokenID := NormalizeToken(sub.Get(FieldTokenID))
	if tokenID == "" {
		return nil, ErrTokenRequired
	}

	core := Core{
		EventID:       newID(),
		TimestampISO:  now.UTC().Format(TimestampLayout),
		TokenID:       tokenID,
		Story:         Clamp(sub.Get(FieldStory), MaxStory),
		City:          Clamp(reqCtx.Geo.City, MaxCity),
		Country:       Clamp(reqCtx.Geo.Country, MaxCountry),
		Channel:       Clamp(sub.GetOr(FieldChannel, DefaultChannel), MaxChannel),
		Batch:         Clamp(sub.Get(FieldBatch), MaxBatch),
		ConsentPublic: strings.EqualFold(sub.Get(FieldConsentPublic), "true"),
	}

	meta := Meta{
		TimezoneEdge:   Clamp(reqCtx.Geo.Timezone, MaxTimezone),
		TimezoneClient: Clamp(sub.Get(FieldTimezoneClient), MaxTimezone),
		Lat:            Round2(reqCtx.Geo.Latitude),
		Lon:            Round2(reqCtx.Geo.Longitude),
		IP:             Clamp(FirstHop(reqCtx.ClientIP), MaxIP),
		UserAgent:      Clamp(reqCtx.UserAgent, MaxUserAgent),
		UTMSource:      Clamp(sub.Get(FieldUTMSource), MaxUTM),
		UTMMedium:      Clamp(sub.Get(FieldUTMMedium), MaxUTM),
		UTMCampaign:    Clamp(sub.Get(FieldUTMCampaign), MaxUTM),
		UTMContent:     Clamp(sub.Get(FieldUTMContent), MaxUTM),
		UTMTerm:        Clamp(sub.Get(FieldUTMTerm), MaxUTM),
		QRID:           Clamp(sub.Get(FieldQRID), MaxCorrelationID),
		DropID:         Clamp(sub.Get(FieldDropID), MaxCorrelationID),
		Referer:        Clamp(reqCtx.Referer, MaxReferer),
		AcceptLanguage: Clamp(reqCtx.AcceptLanguage, MaxAcceptLanguage),
	}

	return &Record{Core: core, Meta: meta}, nil
}
