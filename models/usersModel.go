package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user role
type Role struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// SeedRoles inserts initial roles into the database
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: "Administrator", Description: "Full access, including user management"},
		{Name: "Pharmacist", Description: "Can manage batches, patients and dispensings"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// User represents a pharmacy staff account
type User struct {
	ID                       int64     `gorm:"primaryKey;column:id" json:"id"`
	Name                     string    `gorm:"size:100;not null;column:name" json:"name"`
	Email                    string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Phone                    string    `gorm:"size:30;unique;column:phone" json:"phone"`
	Password                 string    `gorm:"size:255;column:password" json:"-"`
	RoleID                   int64     `gorm:"index;column:role_id" json:"role_id"`
	Role                     Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role"`
	ProfessionalRegistration string    `gorm:"size:50;column:professional_registration" json:"professional_registration"`
	RegistrationComplete     bool      `gorm:"column:registration_complete" json:"registration_complete"`
	CreatedAt                time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// ProfileComplete reports whether every field required to finish registration
// is populated. Accounts created through Google sign-in start incomplete.
func (u *User) ProfileComplete() bool {
	return u.Name != "" &&
		u.Phone != "" &&
		u.RoleID != 0 &&
		u.ProfessionalRegistration != ""
}
