package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries authenticated user info extracted from the
// identity provider's token.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
