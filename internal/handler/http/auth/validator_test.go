package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		pass    string
		wantErr string
	}{
		{name: "strong", user: "operator", pass: "Tr0ub4dor&3-horse"},
		{name: "long weak prefix allowed", user: "operator", pass: "password-but-much-longer-than-that"},
		{name: "empty user", user: "", pass: "Tr0ub4dor&3-horse", wantErr: "ADMIN_USER must not be empty"},
		{name: "empty password", user: "operator", pass: "", wantErr: "ADMIN_USER_PASSWORD must not be empty"},
		{name: "short", user: "operator", pass: "Sh0rt!", wantErr: "at least 12 characters"},
		{name: "same as user", user: "operator1234", pass: "OPERATOR1234", wantErr: "must not equal ADMIN_USER"},
		{name: "repeated digits", user: "operator", pass: "111111111111", wantErr: "simple numeric pattern"},
		{name: "ascending digits", user: "operator", pass: "123456789012", wantErr: "simple numeric pattern"},
		{name: "descending digits", user: "operator", pass: "987654321098", wantErr: "simple numeric pattern"},
		{name: "keyboard", user: "operator", pass: "xxQWERTYxxxx", wantErr: "keyboard pattern"},
		{name: "reversed keyboard", user: "operator", pass: "mnbvcxz12345", wantErr: "keyboard pattern"},
		{name: "weak prefix", user: "operator", pass: "Admin1234567", wantErr: "common weak passwords"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.user, tt.pass)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
				if tt.pass != "" {
					assert.NotContains(t, err.Error(), tt.pass, "password must not leak")
				}
			}
		})
	}
}

func TestValidateJWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{name: "strong", secret: "q8V2m0xR7tLw4nZb9eKc1yHs6pJd3uAf"},
		{name: "empty", secret: "", wantErr: "must be set"},
		{name: "short", secret: "short-secret", wantErr: "at least 32"},
		{name: "repeated char", secret: strings.Repeat("x", 40), wantErr: "single repeated character"},
		{name: "repeated weak word", secret: strings.Repeat("Secret", 6), wantErr: "common weak value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJWTSecret(tt.secret)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
