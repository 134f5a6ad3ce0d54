// Package user implements account administration: listing, creating,
// updating and removing accounts. Identity resolution itself lives in
// the auth package; this package operates on the same users table
// through its own repository.
package user

import (
	"github.com/lawateaditya/Stock-Management/internal/auth"
)

type UsersResponse struct {
	Users []*auth.User `json:"users"`
}
