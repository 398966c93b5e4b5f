package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// DeliveryUseCase entregas de estudiantes sobre hitos.
type DeliveryUseCase struct {
	deliveries repository.DeliveryRepository
	milestones repository.MilestoneRepository
	links      repository.ProjectStudentRepository
	store      FileStore
}

func NewDeliveryUseCase(deliveries repository.DeliveryRepository, milestones repository.MilestoneRepository, links repository.ProjectStudentRepository, store FileStore) *DeliveryUseCase {
	return &DeliveryUseCase{deliveries: deliveries, milestones: milestones, links: links, store: store}
}

// Submit registra una entrega. El estudiante debe estar vinculado al proyecto del hito.
// Se acepta un archivo adjunto o una archivo_url ya publicada.
func (uc *DeliveryUseCase) Submit(ctx context.Context, actor entity.Principal, projectID, milestoneID int64, in dto.CreateDeliveryRequest, file *FileUpload) (*dto.DeliveryResponse, error) {
	m, err := found(uc.milestones.GetByID(ctx, milestoneID))
	if err != nil {
		return nil, err
	}
	if projectID != 0 && m.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	link, err := uc.links.Get(ctx, m.ProjectID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domain.ErrForbidden
	}

	url := in.FileURL
	stored := false
	if file != nil && file.Reader != nil {
		url, err = uc.store.Save(ctx, uc.store.UniqueName(file.Name), file.Reader)
		if err != nil {
			return nil, fmt.Errorf("guardar entrega: %w", err)
		}
		stored = true
	}
	if url == "" {
		return nil, domain.ErrInvalidInput
	}

	d := &entity.Delivery{
		MilestoneID: milestoneID,
		StudentID:   actor.UserID,
		FileURL:     url,
		Comment:     in.Comment,
	}
	if err := uc.deliveries.Create(ctx, d); err != nil {
		if stored {
			if rmErr := uc.store.Remove(ctx, url); rmErr != nil {
				log.Warn().Err(rmErr).Str("url", url).Msg("no se pudo borrar archivo huérfano")
			}
		}
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// ListByMilestone entregas de un hito; projectID 0 omite la verificación de pertenencia.
func (uc *DeliveryUseCase) ListByMilestone(ctx context.Context, projectID, milestoneID int64, limit, offset int) ([]dto.DeliveryResponse, error) {
	m, err := found(uc.milestones.GetByID(ctx, milestoneID))
	if err != nil {
		return nil, err
	}
	if projectID != 0 && m.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.deliveries.ListByMilestone(ctx, milestoneID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toDeliveryResponse), nil
}

func (uc *DeliveryUseCase) GetByID(ctx context.Context, id int64) (*dto.DeliveryResponse, error) {
	d, err := found(uc.deliveries.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

// Update solo el autor o un coordinador.
func (uc *DeliveryUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	d, err := found(uc.deliveries.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(d.StudentID) {
		return nil, domain.ErrForbidden
	}
	if in.FileURL != nil {
		d.FileURL = *in.FileURL
	}
	if in.Comment != nil {
		d.Comment = *in.Comment
	}
	if err := uc.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

func (uc *DeliveryUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) (*dto.DeliveryResponse, error) {
	d, err := found(uc.deliveries.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(d.StudentID) {
		return nil, domain.ErrForbidden
	}
	d, err = found(uc.deliveries.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(d), nil
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:          d.ID,
		MilestoneID: d.MilestoneID,
		StudentID:   d.StudentID,
		FileURL:     d.FileURL,
		Comment:     d.Comment,
		DeliveredAt: d.DeliveredAt,
	}
}
