package domain

// Identity is the verified, request-scoped result of resolving a bearer
// token. It is rebuilt from the user store on every request and never cached
// across requests. The zero value means anonymous.
type Identity struct {
	UserID     string
	Username   string
	Role       Role
	ClassLevel ClassLevel
}

// IsAnonymous reports whether no authenticated user backs this identity.
func (id Identity) IsAnonymous() bool {
	return id.UserID == ""
}
