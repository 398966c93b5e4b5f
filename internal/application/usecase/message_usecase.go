package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// MessageUseCase mensajería directa entre usuarios. Solo remitente y destinatario acceden al mensaje.
type MessageUseCase struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessageUseCase(messages repository.MessageRepository, users repository.UserRepository) *MessageUseCase {
	return &MessageUseCase{messages: messages, users: users}
}

func (uc *MessageUseCase) Send(ctx context.Context, actor entity.Principal, in dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	if _, err := found(uc.users.GetByID(ctx, in.RecipientID)); err != nil {
		return nil, err
	}
	sender, recipient := actor.UserID, in.RecipientID
	m := &entity.Message{
		SenderID:    &sender,
		RecipientID: &recipient,
		Subject:     in.Subject,
		Content:     in.Content,
	}
	if err := uc.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

// ListMine enviados y recibidos.
func (uc *MessageUseCase) ListMine(ctx context.Context, actor entity.Principal, limit, offset int) ([]dto.MessageResponse, error) {
	list, err := uc.messages.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toMessageResponse), nil
}

func (uc *MessageUseCase) GetByID(ctx context.Context, actor entity.Principal, id int64) (*dto.MessageResponse, error) {
	m, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

func (uc *MessageUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateMessageRequest) (*dto.MessageResponse, error) {
	m, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	// El destinatario solo marca leído; el contenido es del remitente.
	if in.Subject != nil || in.Content != nil {
		if m.SenderID == nil || *m.SenderID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	}
	if in.Subject != nil {
		m.Subject = *in.Subject
	}
	if in.Content != nil {
		m.Content = *in.Content
	}
	if in.Read != nil {
		m.Read = *in.Read
	}
	if err := uc.messages.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

func (uc *MessageUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) (*dto.MessageResponse, error) {
	if _, err := uc.get(ctx, actor, id); err != nil {
		return nil, err
	}
	m, err := found(uc.messages.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toMessageResponse(m), nil
}

func (uc *MessageUseCase) get(ctx context.Context, actor entity.Principal, id int64) (*entity.Message, error) {
	m, err := found(uc.messages.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !isParticipant(m, actor.UserID) {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

func isParticipant(m *entity.Message, userID int64) bool {
	return (m.SenderID != nil && *m.SenderID == userID) ||
		(m.RecipientID != nil && *m.RecipientID == userID)
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Content:     m.Content,
		SentAt:      m.SentAt,
		Read:        m.Read,
	}
}
