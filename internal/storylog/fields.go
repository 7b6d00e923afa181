package storylog

// Submission field names.
const (
	FieldTokenID        = "token_id"
	FieldStory          = "story"
	FieldChannel        = "channel"
	FieldBatch          = "batch"
	FieldConsentPublic  = "consent_public"
	FieldTimezoneClient = "timezone_client"
	FieldUTMSource      = "utm_source"
	FieldUTMMedium      = "utm_medium"
	FieldUTMCampaign    = "utm_campaign"
	FieldUTMContent     = "utm_content"
	FieldUTMTerm        = "utm_term"
	FieldQRID           = "qr_id"
	FieldDropID         = "drop_id"
	FieldHoney          = "honey"
)

// Field bounds, in characters.
const (
	MaxTokenID        = 32
	MaxStory          = 4000
	MaxCity           = 120
	MaxCountry        = 8
	MaxChannel        = 64
	MaxBatch          = 64
	MaxTimezone       = 64
	MaxIP             = 64
	MaxUserAgent      = 512
	MaxReferer        = 512
	MaxAcceptLanguage = 128
	MaxUTM            = 120
	MaxCorrelationID  = 64
)

// DefaultChannel is used when the client does not name one.
const DefaultChannel = "card"
