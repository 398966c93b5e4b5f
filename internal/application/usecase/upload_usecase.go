package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// Extensiones servidas tal cual desde /static/uploads.
var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

var imageExtByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadUseCase foto de perfil y hoja de vida del usuario autenticado.
type UploadUseCase struct {
	users repository.UserRepository
	store FileStore
}

func NewUploadUseCase(users repository.UserRepository, store FileStore) *UploadUseCase {
	return &UploadUseCase{users: users, store: store}
}

// ProfileImage guarda profile_<id><ext> y actualiza usuarios.foto.
func (uc *UploadUseCase) ProfileImage(ctx context.Context, actor entity.Principal, file FileUpload) (*dto.UploadResponse, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, fmt.Errorf("%w: se esperaba una imagen", domain.ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	if ext == "" {
		ext = imageExtByType[file.ContentType]
	}
	if !imageExts[ext] {
		return nil, fmt.Errorf("%w: formato de imagen no permitido", domain.ErrInvalidInput)
	}
	return uc.save(ctx, actor, fmt.Sprintf("profile_%d%s", actor.UserID, ext), file, func(u *entity.User, url string) {
		u.Photo = url
	})
}

// CV guarda cv_<id>.pdf y actualiza usuarios.hoja_vida.
func (uc *UploadUseCase) CV(ctx context.Context, actor entity.Principal, file FileUpload) (*dto.UploadResponse, error) {
	if file.ContentType != "application/pdf" {
		return nil, fmt.Errorf("%w: se esperaba un PDF", domain.ErrInvalidInput)
	}
	return uc.save(ctx, actor, fmt.Sprintf("cv_%d.pdf", actor.UserID), file, func(u *entity.User, url string) {
		u.CV = url
	})
}

func (uc *UploadUseCase) save(ctx context.Context, actor entity.Principal, name string, file FileUpload, apply func(*entity.User, string)) (*dto.UploadResponse, error) {
	if file.Reader == nil {
		return nil, domain.ErrInvalidInput
	}
	u, err := found(uc.users.GetByID(ctx, actor.UserID))
	if err != nil {
		return nil, err
	}
	url, err := uc.store.Save(ctx, name, file.Reader)
	if err != nil {
		return nil, fmt.Errorf("guardar archivo: %w", err)
	}
	apply(u, url)
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UploadResponse{Filename: name, URL: url}, nil
}
