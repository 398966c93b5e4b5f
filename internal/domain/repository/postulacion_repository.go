package repository

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// PostulacionFilter filtros opcionales; vacío lista todo.
type PostulacionFilter struct {
	StudentID    *int64
	InitiativeID *int64
	Status       string
}

// PostulacionRepository define el puerto de persistencia para Postulacion (DIP).
type PostulacionRepository interface {
	Create(ctx context.Context, p *entity.Postulacion) error
	GetByID(ctx context.Context, id int64) (*entity.Postulacion, error)
	GetByStudentAndInitiative(ctx context.Context, studentID, initiativeID int64) (*entity.Postulacion, error)
	List(ctx context.Context, f PostulacionFilter, limit, offset int) ([]*entity.Postulacion, error)
	Update(ctx context.Context, p *entity.Postulacion) error
	Delete(ctx context.Context, id int64) (*entity.Postulacion, error)
}
