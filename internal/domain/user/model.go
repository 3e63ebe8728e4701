package user

// Principal identifies the authenticated player attached to a request.
// Authentication itself is owned by the account service; only the verified
// shape crosses into this module.
type Principal struct {
	UserID string
	Email  string
}
