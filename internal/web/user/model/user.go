// Package model defines the portal's user accounts, kept in mongo.
package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStatus user status
type UserStatus string

const (
	// UserStatusActive active user
	UserStatusActive UserStatus = "active"
	// UserStatusDisabled account blocked by the owner
	UserStatusDisabled UserStatus = "disabled"
)

// User portal account
type User struct {
	// ID unique identifier for the user
	ID primitive.ObjectID `bson:"_id,omitempty" json:"mongo_id"`
	// CreatedAt account creation time
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// ModifiedAt last modified time
	ModifiedAt time.Time `bson:"modified_at" json:"modified_at"`
	// DisplayName name shown on the site and as blog author
	DisplayName string `bson:"display_name" json:"display_name"`
	// Account login account, should be email
	Account string `bson:"account" json:"account"`
	// Password hashed password
	//
	//  `gcrypto.VerifyHashedPassword`
	Password string `bson:"password" json:"-"`
	// GoogleID subject claim of the Google account, set on Google sign-in
	GoogleID string `bson:"google_id,omitempty" json:"-"`
	// Status user status
	Status UserStatus `bson:"status" json:"status"`
}

// GetID get id
func (u *User) GetID() string {
	return u.ID.Hex()
}

// Name returns the display name, falling back to the account email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Account
}

// NewUser create a new active user
func NewUser() *User {
	now := gutils.Clock.GetUTCNow()
	return &User{
		ID:         primitive.NewObjectID(),
		CreatedAt:  now,
		ModifiedAt: now,
		Status:     UserStatusActive,
	}
}
