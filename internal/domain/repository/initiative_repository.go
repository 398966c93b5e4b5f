package repository

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// InitiativeFilter filtros opcionales del listado de iniciativas.
type InitiativeFilter struct {
	Status string
	UserID *int64
}

// InitiativeRepository define el puerto de persistencia para Initiative (DIP).
type InitiativeRepository interface {
	Create(ctx context.Context, in *entity.Initiative) error
	GetByID(ctx context.Context, id int64) (*entity.Initiative, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Initiative, error)
	List(ctx context.Context, f InitiativeFilter, limit, offset int) ([]*entity.Initiative, error)
	Update(ctx context.Context, in *entity.Initiative) error
	Delete(ctx context.Context, id int64) (*entity.Initiative, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// DocumentRepository documentos adjuntos a iniciativas.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.InitiativeDocument) error
	GetByID(ctx context.Context, id int64) (*entity.InitiativeDocument, error)
	ListByInitiative(ctx context.Context, initiativeID int64, limit, offset int) ([]*entity.InitiativeDocument, error)
	Update(ctx context.Context, d *entity.InitiativeDocument) error
	Delete(ctx context.Context, id int64) (*entity.InitiativeDocument, error)
}
