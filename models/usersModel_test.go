package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfileComplete(t *testing.T) {
	full := User{
		Name:                     "Maria Souza",
		Phone:                    "11988887777",
		RoleID:                   2,
		ProfessionalRegistration: "CRF-12345",
	}
	assert.True(t, full.ProfileComplete())

	tests := []struct {
		name   string
		mutate func(u *User)
	}{
		{"missing name", func(u *User) { u.Name = "" }},
		{"missing phone", func(u *User) { u.Phone = "" }},
		{"missing role", func(u *User) { u.RoleID = 0 }},
		{"missing professional registration", func(u *User) { u.ProfessionalRegistration = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := full
			tt.mutate(&u)
			assert.False(t, u.ProfileComplete())
		})
	}
}
