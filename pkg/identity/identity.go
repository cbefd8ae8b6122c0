// Package identity supplies the acting identity to the rest of the service.
// Authentication itself happens upstream; this package only carries the
// resolved identity and the ownership predicate.
package identity

import "errors"

// ErrUnauthenticated indicates no acting identity could be resolved.
var ErrUnauthenticated = errors.New("no authenticated identity")

// User is the acting identity: who is editing, and how they appear on the
// social preview.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Owns reports whether the user may edit a document owned by ownerID. A
// document is editable only by its owner.
func (u *User) Owns(ownerID string) bool {
	return u != nil && u.ID != "" && u.ID == ownerID
}
