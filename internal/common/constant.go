package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound requests to the backend.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the access token in the Authorization header.
const BearerPrefix = "Bearer "

// Well-known paid stage keys. The backend understands exactly these two.
const (
	StageAnalysis    = "stage3"
	StageApplication = "stage4"
)
