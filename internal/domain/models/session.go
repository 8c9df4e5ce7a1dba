package models

import "time"

// Session identifies the operator behind a request. It is built by the auth
// check at the entry of every protected route and passed along explicitly.
type Session struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issuedAt"`
}
