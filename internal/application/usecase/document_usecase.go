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

// DocumentUseCase documentos adjuntos a iniciativas.
type DocumentUseCase struct {
	docs        repository.DocumentRepository
	initiatives repository.InitiativeRepository
	store       FileStore
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docs repository.DocumentRepository, initiatives repository.InitiativeRepository, store FileStore) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, initiatives: initiatives, store: store}
}

// ListByInitiative documentos de una iniciativa existente.
func (uc *DocumentUseCase) ListByInitiative(ctx context.Context, initiativeID int64, limit, offset int) ([]dto.DocumentResponse, error) {
	if _, err := found(uc.initiatives.GetByID(ctx, initiativeID)); err != nil {
		return nil, err
	}
	list, err := uc.docs.ListByInitiative(ctx, initiativeID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toDocumentResponse), nil
}

// GetByID obtiene un documento.
func (uc *DocumentUseCase) GetByID(ctx context.Context, id int64) (*dto.DocumentResponse, error) {
	d, err := found(uc.docs.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(d), nil
}

// Upload guarda el archivo y registra el documento. Solo el dueño de la iniciativa o un coordinador.
func (uc *DocumentUseCase) Upload(ctx context.Context, actor entity.Principal, initiativeID int64, docType string, file FileUpload) (*dto.DocumentResponse, error) {
	if file.Reader == nil || file.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	initiative, err := found(uc.initiatives.GetByID(ctx, initiativeID))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(initiative.UserID) {
		return nil, domain.ErrForbidden
	}
	url, err := uc.store.Save(ctx, uc.store.UniqueName(file.Name), file.Reader)
	if err != nil {
		return nil, fmt.Errorf("guardar documento: %w", err)
	}
	doc := &entity.InitiativeDocument{
		InitiativeID: initiativeID,
		FileName:     file.Name,
		Path:         url,
		Type:         docType,
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		if rmErr := uc.store.Remove(ctx, url); rmErr != nil {
			log.Warn().Err(rmErr).Str("url", url).Msg("no se pudo borrar archivo huérfano")
		}
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Update cambia nombre visible o tipo del documento.
func (uc *DocumentUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	d, err := found(uc.docs.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	initiative, err := found(uc.initiatives.GetByID(ctx, d.InitiativeID))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(initiative.UserID) {
		return nil, domain.ErrForbidden
	}
	if in.FileName != nil {
		d.FileName = *in.FileName
	}
	if in.Type != nil {
		d.Type = *in.Type
	}
	if err := uc.docs.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDocumentResponse(d), nil
}

// Delete elimina el registro y el archivo almacenado.
func (uc *DocumentUseCase) Delete(ctx context.Context, id int64) (*dto.DocumentResponse, error) {
	d, err := found(uc.docs.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	if err := uc.store.Remove(ctx, d.Path); err != nil {
		log.Warn().Err(err).Int64("id_doc", d.ID).Msg("documento eliminado pero el archivo no se pudo borrar")
	}
	return toDocumentResponse(d), nil
}

func toDocumentResponse(d *entity.InitiativeDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:           d.ID,
		InitiativeID: d.InitiativeID,
		FileName:     d.FileName,
		Path:         d.Path,
		Type:         d.Type,
	}
}
