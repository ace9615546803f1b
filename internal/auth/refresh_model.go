package auth

import "time"

// RefreshToken guarda apenas o hash do token entregue no cookie.
// Tokens da mesma família nascem de rotações sucessivas de um login.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	FamilyID  string    `gorm:"size:64;index"`
	Hash      string    `gorm:"size:64;uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
