package identityprovider

import (
	"errors"
)

// SessionData is the payload the federated auth provider returns for a
// verified OAuth session.
type SessionData struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

func (d *SessionData) Validate() error {
	if d.Email == "" {
		return errors.New("email is required")
	}
	if d.SessionToken == "" {
		return errors.New("session_token is required")
	}
	return nil
}
