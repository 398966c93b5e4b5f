package entity

import "time"

// Roles fijos (id_rol). Se siembran en la migración inicial.
const (
	RoleCoordinator = 1
	RoleStudent     = 2
	RoleCompany     = 3
)

// Role rol del sistema (coordinador, estudiante, empresa).
type Role struct {
	ID          int
	Name        string
	Description string
}

// User representa un usuario de la plataforma. RoleID es nil si el rol fue eliminado (SET NULL).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Phone        string
	Github       string
	Technologies string
	Photo        string // URL de la foto de perfil
	CV           string // URL de la hoja de vida (PDF)
	Bio          string
	Website      string
	Address      string
	TaxID        string // identificador fiscal (empresas)
	RoleID       *int
	CreatedAt    time.Time
}

// Role devuelve el id de rol o 0 si no tiene.
func (u *User) Role() int {
	if u == nil || u.RoleID == nil {
		return 0
	}
	return *u.RoleID
}

// Token registro de un token emitido en login.
type Token struct {
	ID        int64
	UserID    int64
	Token     string
	Type      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenTypeAuth tipo de token emitido por login.
const TokenTypeAuth = "auth"
