package admin

import "time"

// Admin is a back-office account. Passwords are stored as bcrypt hashes
// only; the hash never leaves the service layer.
type Admin struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Admin) TableName() string { return "admins" }
