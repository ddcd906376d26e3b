package constants

// HTTP Headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"
	HeaderContentType   = "Content-Type"
)

// Authorization scheme
const (
	BearerScheme = "Bearer"
)

// Gin context keys set by the auth middleware
const (
	GinKeyAccountID = "account_id"
	GinKeyEmail     = "email"
	GinKeyRole      = "role"
)
