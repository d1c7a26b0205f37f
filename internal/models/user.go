package models

import "time"

// Account types a user can register as. Only owners may manage listings.
const (
	AccountTypeTenant = "tenant"
	AccountTypeOwner  = "owner"
)

// User represents an account holder. Identity is the email or the mobile
// number; at least one must be present and each is unique across all
// users when set (enforced by the auth service at registration).
type User struct {
	ID               string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FullName         string `json:"full_name" validate:"required,min=2,max=100"`
	Email            string `json:"email,omitempty" gorm:"type:varchar(255);index" validate:"omitempty,email"`
	Mobile           string `json:"mobile,omitempty" gorm:"type:varchar(20);index" validate:"omitempty,min=6,max=20"`
	Password         string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	AccountType      string `json:"account_type" gorm:"type:varchar(10)" validate:"required,oneof=tenant owner"`
	IsActive         bool   `json:"is_active" gorm:"default:true"`
	SubscriptionTier string `json:"subscription_tier" gorm:"type:varchar(20);default:'free'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwner reports whether the user may create and manage listings.
func (u *User) IsOwner() bool {
	return u.AccountType == AccountTypeOwner
}
