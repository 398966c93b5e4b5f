package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.MilestoneRepository = (*MilestoneRepo)(nil)
	_ repository.DeliveryRepository  = (*DeliveryRepo)(nil)
)

const (
	milestoneColumns = `id_hito, id_proyecto, titulo, descripcion, fecha_entrega, estado`
	deliveryColumns  = `id_entrega, id_hito, id_estudiante, archivo_url, comentario, fecha_entrega`
)

// MilestoneRepo hitos de proyecto.
type MilestoneRepo struct {
	q Querier
}

func NewMilestoneRepository(q Querier) *MilestoneRepo {
	return &MilestoneRepo{q: q}
}

func scanMilestone(r rowScanner) (*entity.Milestone, error) {
	var m entity.Milestone
	if err := r.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.DueDate, &m.Status); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MilestoneRepo) Create(ctx context.Context, m *entity.Milestone) error {
	query := `
		INSERT INTO hitos (id_proyecto, titulo, descripcion, fecha_entrega, estado)
		VALUES ($1, $2, $3, $4, $5) RETURNING id_hito`
	if err := r.q.QueryRow(ctx, query, m.ProjectID, m.Title, m.Description, m.DueDate, m.Status).Scan(&m.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert milestone: %w", err)
	}
	return nil
}

func (r *MilestoneRepo) GetByID(ctx context.Context, id int64) (*entity.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM hitos WHERE id_hito = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanMilestone, "get milestone")
}

func (r *MilestoneRepo) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.Milestone, error) {
	query := `
		SELECT ` + milestoneColumns + ` FROM hitos
		WHERE id_proyecto = $1 ORDER BY fecha_entrega NULLS LAST, id_hito LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return collect(rows, scanMilestone, "list milestones")
}

func (r *MilestoneRepo) Update(ctx context.Context, m *entity.Milestone) error {
	query := `UPDATE hitos SET titulo = $2, descripcion = $3, fecha_entrega = $4, estado = $5 WHERE id_hito = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Title, m.Description, m.DueDate, m.Status)
	if err != nil {
		return fmt.Errorf("update milestone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MilestoneRepo) Delete(ctx context.Context, id int64) (*entity.Milestone, error) {
	query := `DELETE FROM hitos WHERE id_hito = $1 RETURNING ` + milestoneColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanMilestone, "delete milestone")
}

// DeliveryRepo entregas sobre hitos.
type DeliveryRepo struct {
	q Querier
}

func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

func scanDelivery(r rowScanner) (*entity.Delivery, error) {
	var d entity.Delivery
	if err := r.Scan(&d.ID, &d.MilestoneID, &d.StudentID, &d.FileURL, &d.Comment, &d.DeliveredAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO entregas (id_hito, id_estudiante, archivo_url, comentario)
		VALUES ($1, $2, $3, $4) RETURNING id_entrega, fecha_entrega`
	err := r.q.QueryRow(ctx, query, d.MilestoneID, d.StudentID, d.FileURL, d.Comment).Scan(&d.ID, &d.DeliveredAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, id int64) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM entregas WHERE id_entrega = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanDelivery, "get delivery")
}

func (r *DeliveryRepo) ListByMilestone(ctx context.Context, milestoneID int64, limit, offset int) ([]*entity.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + ` FROM entregas
		WHERE id_hito = $1 ORDER BY id_entrega LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, milestoneID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return collect(rows, scanDelivery, "list deliveries")
}

func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	tag, err := r.q.Exec(ctx, `UPDATE entregas SET archivo_url = $2, comentario = $3 WHERE id_entrega = $1`,
		d.ID, d.FileURL, d.Comment)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeliveryRepo) Delete(ctx context.Context, id int64) (*entity.Delivery, error) {
	query := `DELETE FROM entregas WHERE id_entrega = $1 RETURNING ` + deliveryColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanDelivery, "delete delivery")
}
