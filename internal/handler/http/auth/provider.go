package auth

import (
	"crypto/subtle"
)

// Operator holds the single account allowed to use the API.
type Operator struct {
	user     []byte
	password []byte
}

// NewOperator creates an Operator. Call ValidateCredentials first.
func NewOperator(user, password string) *Operator {
	return &Operator{user: []byte(user), password: []byte(password)}
}

// Authenticate compares both values in constant time.
func (o *Operator) Authenticate(user, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(user), o.user) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), o.password) == 1
	return userMatch && passMatch
}

// User returns the operator name.
func (o *Operator) User() string {
	return string(o.user)
}
