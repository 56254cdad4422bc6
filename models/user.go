package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// User is the identity record. The password hash and the reset/soft-delete
// bookkeeping never serialize to JSON.
type User struct {
	ID                   bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name                 string        `json:"name" bson:"name" validate:"required"`
	Email                string        `json:"email" bson:"email" validate:"required,email"`
	Photo                string        `json:"photo,omitempty" bson:"photo,omitempty"`
	Role                 Role          `json:"role" bson:"role" validate:"omitempty,oneof=user guide lead-guide admin"`
	Password             string        `json:"-" bson:"password"`
	PasswordChangedAt    time.Time     `json:"-" bson:"passwordChangedAt,omitempty"`
	PasswordResetToken   string        `json:"-" bson:"passwordResetToken,omitempty"`
	PasswordResetExpires time.Time     `json:"-" bson:"passwordResetExpires,omitempty"`
	Active               bool          `json:"-" bson:"active"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change must be
// rejected.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

// ActiveFilter adds the soft-delete guard to a query filter: records with
// active=false never show up in default reads, login lookups included.
func ActiveFilter(filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["active"] = bson.M{"$ne": false}
	return filter
}

// SignupInput is the signup request body. PasswordConfirm is write-only
// and discarded after the equality check.
type SignupInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Role            Role   `json:"role" validate:"omitempty,oneof=user guide lead-guide admin"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordUpdate struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type PasswordReset struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}
