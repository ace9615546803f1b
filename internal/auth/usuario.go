package auth

import (
	"context"
	"strings"
	"time"

	"github.com/KromaEnergia/painel-comissoes/internal/utils"
	"gorm.io/gorm"
)

// Usuario é quem acessa o painel. Administradores gerenciam usuários.
type Usuario struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Nome                  string    `gorm:"size:255;not null" json:"nome"`
	Email                 string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	SenhaHash             string    `gorm:"size:255;not null" json:"-"`
	IsAdmin               bool      `gorm:"not null;default:false" json:"is_admin"`
	PrecisaRedefinirSenha bool      `gorm:"not null;default:false" json:"precisa_redefinir_senha"`
	CreatedAt             time.Time `json:"created_at"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{}, &RefreshToken{})
}

// CriarUsuario grava o usuário com a senha já transformada em hash.
func CriarUsuario(ctx context.Context, db *gorm.DB, nome, email, senha string, admin bool) (*Usuario, error) {
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return nil, err
	}
	u := &Usuario{
		Nome:      nome,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		SenhaHash: hash,
		IsAdmin:   admin,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func buscarPorEmail(ctx context.Context, db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
