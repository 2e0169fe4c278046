// Package scope restricts Post and Comment queries to rows owned by the acting user.
//
// Every repository call that reads, updates or deletes owned rows takes an Actor.
// The package lives under pkg/core/internal so only core code can build the
// System actor; web handlers can only pass a user id down to the services.
package scope

import (
	"gorm.io/gorm"
)

// Actor identifies who a query runs on behalf of.
type Actor struct {
	userID int64
	system bool
}

// As returns the actor for an authenticated user. Non-positive ids yield Anonymous.
func As(userID int64) Actor {
	if userID <= 0 {
		return Anonymous()
	}
	return Actor{userID: userID}
}

// Anonymous is the actor of a request without a valid token.
func Anonymous() Actor {
	return Actor{}
}

// System bypasses the ownership filter. Integrity checks only.
func System() Actor {
	return Actor{system: true}
}

func (a Actor) UserID() int64 {
	return a.userID
}

func (a Actor) Authenticated() bool {
	return a.userID > 0
}

func (a Actor) IsSystem() bool {
	return a.system
}

// Owns reports whether the actor is the owner recorded in ownerID.
func (a Actor) Owns(ownerID int64) bool {
	return a.Authenticated() && a.userID == ownerID
}

// Owned returns a GORM scope adding "<table>.user_id = actor" when the actor is an
// authenticated user. Anonymous and System actors leave the query untouched.
func Owned(a Actor, table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if a.system || !a.Authenticated() {
			return db
		}
		return db.Where(table+".user_id = ?", a.userID)
	}
}
