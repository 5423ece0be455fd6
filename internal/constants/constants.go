package constants

// Session and context keys
const (
	SessionCookieName    = "tm_session"
	ContextKeyUserID     = "user_id"
	ContextKeySession    = "session"
	ContextKeyRequestID  = "request_id"
	ContextKeyResourceID = "resource_id"
	HeaderRequestID      = "X-Request-ID"
	AuthorizationScheme  = "Bearer"
	SessionMaxAgeSeconds = 86400 * 7
	MinPasswordLength    = 8
)

// FilterAll is the sentinel a client sends to mean "no restriction on this field".
const FilterAll = "all"

// DateLayout is the calendar-date format accepted by date range filters.
const DateLayout = "2006-01-02"

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Display fallbacks for denormalized names
const (
	NoManagerName  = "None"
	UnassignedName = "Unassigned"
)
