package errors

// Generic error codes
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
	ErrStore          = "ERR_STORE"
)

// Auth and user error codes
const (
	ErrEmptyID            = "ERR_EMPTY_ID"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrUnauthorized       = "ERR_UNAUTHORIZED"
)

// Video catalog error codes
const (
	ErrValidation       = "ERR_VALIDATION"
	ErrUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA"
	ErrPayloadTooLarge  = "ERR_PAYLOAD_TOO_LARGE"
	ErrVideoNotFound    = "ERR_VIDEO_NOT_FOUND"
)
