package models

import "github.com/go-playground/validator/v10"

// UserTableName is the logical table name; deployments prepend "<ENVIRONMENT>-".
const UserTableName = "User"

// User is the stored record, keyed by email. Writes overwrite; last write wins.
type User struct {
	Email     string `json:"email" dynamodbav:"email" validate:"required"`
	FirstName string `json:"firstName" dynamodbav:"firstName" validate:"required"`
	LastName  string `json:"lastName" dynamodbav:"lastName" validate:"required"`
}

var validate = validator.New()

// NewUser creates a user record from its three fields
func NewUser(email, firstName, lastName string) *User {
	return &User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
}

// Validate checks the required tags on every field
func (u *User) Validate() error {
	return validate.Struct(u)
}

// String renders the record the way traces print it: email,firstName,lastName
func (u *User) String() string {
	return u.Email + "," + u.FirstName + "," + u.LastName
}

// UserTable returns the physical table name for a deployment environment
func UserTable(environment string) string {
	return environment + "-" + UserTableName
}
