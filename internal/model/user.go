package model

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// AuthClaims is the verified identity carried by an access token.
type AuthClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type LoginResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}
