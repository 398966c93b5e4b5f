package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// CommentUseCase comentarios sobre proyectos.
type CommentUseCase struct {
	comments repository.CommentRepository
	projects repository.ProjectRepository
}

func NewCommentUseCase(comments repository.CommentRepository, projects repository.ProjectRepository) *CommentUseCase {
	return &CommentUseCase{comments: comments, projects: projects}
}

// Create el autor es quien llama.
func (uc *CommentUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := found(uc.projects.GetByID(ctx, in.ProjectID)); err != nil {
		return nil, err
	}
	c := &entity.Comment{UserID: actor.UserID, ProjectID: in.ProjectID, Content: in.Content}
	if err := uc.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

func (uc *CommentUseCase) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]dto.CommentResponse, error) {
	list, err := uc.comments.ListByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toCommentResponse), nil
}

func (uc *CommentUseCase) GetByID(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	c, err := found(uc.comments.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

func (uc *CommentUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	c, err := found(uc.comments.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(c.UserID) {
		return nil, domain.ErrForbidden
	}
	if in.Content != nil {
		c.Content = *in.Content
	}
	if err := uc.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

func (uc *CommentUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) (*dto.CommentResponse, error) {
	c, err := found(uc.comments.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(c.UserID) {
		return nil, domain.ErrForbidden
	}
	if c, err = found(uc.comments.Delete(ctx, id)); err != nil {
		return nil, err
	}
	return toCommentResponse(c), nil
}

func toCommentResponse(c *entity.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		ProjectID: c.ProjectID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
