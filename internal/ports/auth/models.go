package auth

// Claims representa la identidad extraída del bearer token.
type Claims struct {
	UserID string
	Email  string
}
