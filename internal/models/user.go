package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// UserTable is the storage name of the user record.
const UserTable = "user"

// Column names of the user table. Other components bind to these exact names.
const (
	ColumnID          = "id"
	ColumnUsername    = "username"
	ColumnPassword    = "password"
	ColumnAuthKey     = "authkey"
	ColumnAccessToken = "accessToken"
)

// Maximum lengths of the user table's string columns.
const (
	MaxUsernameLen    = 24
	MaxPasswordLen    = 128
	MaxAuthKeyLen     = 255
	MaxAccessTokenLen = 255
)

// User is a single row of the user table.
// ID is zero until the record has been persisted.
type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username" validate:"required,max=24"`
	PasswordHash string  `json:"-" validate:"required,max=128"` // never plaintext
	AuthKey      string  `json:"-" validate:"required,max=255"`
	AccessToken  *string `json:"-" validate:"omitempty,max=255"` // reserved, never issued
}

// Ensure implementation of Identity interface at compile time.
var _ Identity = (*User)(nil)

var validate = validator.New(validator.WithRequiredStructEnabled())

// GetID returns the primary key, or 0 for a transient record.
func (u *User) GetID() int64 {
	return u.ID
}

// GetAuthKey returns the stored authkey verbatim.
func (u *User) GetAuthKey() string {
	return u.AuthKey
}

// ValidateAuthKey reports whether key is exactly the stored authkey.
func (u *User) ValidateAuthKey(key string) bool {
	return u.AuthKey == key
}

// IsNew reports whether the record has not been persisted yet.
func (u *User) IsNew() bool {
	return u.ID == 0
}

// Validate checks the field rules required for create and update.
// It returns a *ValidationError listing every failing field, or nil.
func (u *User) Validate() error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: columnByField[fe.StructField()],
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

var columnByField = map[string]string{
	"ID":           ColumnID,
	"Username":     ColumnUsername,
	"PasswordHash": ColumnPassword,
	"AuthKey":      ColumnAuthKey,
	"AccessToken":  ColumnAccessToken,
}

// Labels are the human-readable names of the user columns.
var Labels = map[string]string{
	ColumnID:          "ID",
	ColumnUsername:    "Username",
	ColumnPassword:    "Password",
	ColumnAuthKey:     "Authkey",
	ColumnAccessToken: "Access Token",
}
