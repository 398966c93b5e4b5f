package memstore

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.InitiativeRepository  = (*initiativeRepo)(nil)
	_ repository.DocumentRepository    = (*documentRepo)(nil)
	_ repository.PostulacionRepository = (*postulacionRepo)(nil)
)

func initiativesT(t *tables) *table[entity.Initiative]       { return t.initiatives }
func documentsT(t *tables) *table[entity.InitiativeDocument] { return t.documents }
func postulacionesT(t *tables) *table[entity.Postulacion]    { return t.postulaciones }

type initiativeRepo struct{ s *Store }

func (s *Store) Initiatives() repository.InitiativeRepository { return &initiativeRepo{s} }

func (r *initiativeRepo) Create(_ context.Context, in *entity.Initiative) error {
	return create(r.s, "initiatives.create", initiativesT, in, func(v *entity.Initiative, id int64) {
		v.ID = id
		v.CreatedAt = r.s.now()
	})
}

func (r *initiativeRepo) GetByID(_ context.Context, id int64) (*entity.Initiative, error) {
	return getByID(r.s, initiativesT, id)
}

func (r *initiativeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Initiative, error) {
	return r.GetByID(ctx, id)
}

func (r *initiativeRepo) List(_ context.Context, f repository.InitiativeFilter, limit, offset int) ([]*entity.Initiative, error) {
	return listWhere(r.s, initiativesT, func(x entity.Initiative) bool {
		return (f.Status == "" || x.Status == f.Status) && (f.UserID == nil || x.UserID == *f.UserID)
	}, limit, offset)
}

func (r *initiativeRepo) Update(_ context.Context, in *entity.Initiative) error {
	return update(r.s, "initiatives.update", initiativesT, in.ID, in)
}

func (r *initiativeRepo) Delete(_ context.Context, id int64) (*entity.Initiative, error) {
	return remove(r.s, "initiatives.delete", initiativesT, id)
}

func (r *initiativeRepo) CountByStatus(_ context.Context, status string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.initiatives.count(func(x entity.Initiative) bool { return x.Status == status }), nil
}

type documentRepo struct{ s *Store }

func (s *Store) Documents() repository.DocumentRepository { return &documentRepo{s} }

func (r *documentRepo) Create(_ context.Context, d *entity.InitiativeDocument) error {
	return create(r.s, "documents.create", documentsT, d, func(v *entity.InitiativeDocument, id int64) { v.ID = id })
}

func (r *documentRepo) GetByID(_ context.Context, id int64) (*entity.InitiativeDocument, error) {
	return getByID(r.s, documentsT, id)
}

func (r *documentRepo) ListByInitiative(_ context.Context, initiativeID int64, limit, offset int) ([]*entity.InitiativeDocument, error) {
	return listWhere(r.s, documentsT, func(x entity.InitiativeDocument) bool { return x.InitiativeID == initiativeID }, limit, offset)
}

func (r *documentRepo) Update(_ context.Context, d *entity.InitiativeDocument) error {
	return update(r.s, "documents.update", documentsT, d.ID, d)
}

func (r *documentRepo) Delete(_ context.Context, id int64) (*entity.InitiativeDocument, error) {
	return remove(r.s, "documents.delete", documentsT, id)
}

type postulacionRepo struct{ s *Store }

func (s *Store) Postulaciones() repository.PostulacionRepository { return &postulacionRepo{s} }

func (r *postulacionRepo) Create(_ context.Context, p *entity.Postulacion) error {
	return create(r.s, "postulaciones.create", postulacionesT, p, func(v *entity.Postulacion, id int64) {
		v.ID = id
		v.CreatedAt = r.s.now()
	})
}

func (r *postulacionRepo) GetByID(_ context.Context, id int64) (*entity.Postulacion, error) {
	return getByID(r.s, postulacionesT, id)
}

func (r *postulacionRepo) GetByStudentAndInitiative(_ context.Context, studentID, initiativeID int64) (*entity.Postulacion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.postulaciones.find(func(x entity.Postulacion) bool {
		return x.StudentID == studentID && x.InitiativeID == initiativeID
	}), nil
}

func (r *postulacionRepo) List(_ context.Context, f repository.PostulacionFilter, limit, offset int) ([]*entity.Postulacion, error) {
	return listWhere(r.s, postulacionesT, func(x entity.Postulacion) bool {
		return (f.StudentID == nil || x.StudentID == *f.StudentID) &&
			(f.InitiativeID == nil || x.InitiativeID == *f.InitiativeID) &&
			(f.Status == "" || x.Status == f.Status)
	}, limit, offset)
}

func (r *postulacionRepo) Update(_ context.Context, p *entity.Postulacion) error {
	return update(r.s, "postulaciones.update", postulacionesT, p.ID, p)
}

func (r *postulacionRepo) Delete(_ context.Context, id int64) (*entity.Postulacion, error) {
	return remove(r.s, "postulaciones.delete", postulacionesT, id)
}
