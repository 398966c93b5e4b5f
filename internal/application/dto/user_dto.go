package dto

import "time"

// RegisterRequest entrada para registro (auth). El password se hashea en el caso de uso.
type RegisterRequest struct {
	Name         string `json:"nombre" validate:"required,min=1,max=100"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	Phone        string `json:"telefono" validate:"omitempty,max=20"`
	Github       string `json:"github" validate:"omitempty,max=255"`
	Technologies string `json:"tecnologias"`
	Bio          string `json:"bio"`
	Website      string `json:"sitio_web" validate:"omitempty,max=255"`
	Address      string `json:"direccion" validate:"omitempty,max=255"`
	TaxID        string `json:"identificador_fiscal" validate:"omitempty,max=50"`
	RoleID       int    `json:"id_rol" validate:"required,oneof=1 2 3"`
}

// UpdateUserRequest actualización parcial del perfil: solo se tocan los campos enviados.
type UpdateUserRequest struct {
	Name         *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email" validate:"omitempty,email,max=100"`
	Password     *string `json:"password" validate:"omitempty,min=6,max=72"`
	Phone        *string `json:"telefono" validate:"omitempty,max=20"`
	Github       *string `json:"github" validate:"omitempty,max=255"`
	Technologies *string `json:"tecnologias"`
	Photo        *string `json:"foto" validate:"omitempty,max=255"`
	CV           *string `json:"hoja_vida" validate:"omitempty,max=255"`
	Bio          *string `json:"bio"`
	Website      *string `json:"sitio_web" validate:"omitempty,max=255"`
	Address      *string `json:"direccion" validate:"omitempty,max=255"`
	TaxID        *string `json:"identificador_fiscal" validate:"omitempty,max=50"`
	RoleID       *int    `json:"id_rol" validate:"omitempty,oneof=1 2 3"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           int64     `json:"id_usuario"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	Phone        string    `json:"telefono"`
	Github       string    `json:"github"`
	Technologies string    `json:"tecnologias"`
	Photo        string    `json:"foto"`
	CV           string    `json:"hoja_vida"`
	Bio          string    `json:"bio"`
	Website      string    `json:"sitio_web"`
	Address      string    `json:"direccion"`
	TaxID        string    `json:"identificador_fiscal"`
	RoleID       *int      `json:"id_rol"`
	CreatedAt    time.Time `json:"fecha_registro"`
}

// LoginRequest acepta JSON {email, password} o formulario username/password.
type LoginRequest struct {
	Email    string `json:"email" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse token bearer + rol + usuario.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	RoleID      int          `json:"id_rol"`
	User        UserResponse `json:"user"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          int    `json:"id_rol"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// UploadResponse archivo guardado y su URL pública.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// DashboardStatsResponse métricas del panel del coordinador.
type DashboardStatsResponse struct {
	TotalStudents           int                  `json:"total_students"`
	TotalCompanies          int                  `json:"total_companies"`
	PendingInitiativesCount int                  `json:"pending_initiatives_count"`
	PendingInitiatives      []InitiativeResponse `json:"pending_initiatives"`
}
