package domain

type UserID string

// UserIdentity is the server-confirmed identity carried by the session.
type UserIdentity struct {
	ID       UserID
	Username string
	Email    string
}
