package memstore

import (
	"context"
	"sort"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository        = (*projectRepo)(nil)
	_ repository.ProjectStudentRepository = (*linkRepo)(nil)
	_ repository.MilestoneRepository      = (*milestoneRepo)(nil)
	_ repository.DeliveryRepository       = (*deliveryRepo)(nil)
)

func projectsT(t *tables) *table[entity.Project]     { return t.projects }
func milestonesT(t *tables) *table[entity.Milestone] { return t.milestones }
func deliveriesT(t *tables) *table[entity.Delivery]  { return t.deliveries }

type projectRepo struct{ s *Store }

func (s *Store) Projects() repository.ProjectRepository { return &projectRepo{s} }

// Create respeta la unicidad de id_iniciativa.
func (r *projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("projects.create"); err != nil {
		return err
	}
	if p.InitiativeID != nil && r.s.t.projects.find(func(x entity.Project) bool {
		return x.InitiativeID != nil && *x.InitiativeID == *p.InitiativeID
	}) != nil {
		return domain.ErrDuplicate
	}
	p.ID = r.s.t.projects.insert(*p)
	r.s.t.projects.put(p.ID, *p)
	return nil
}

func (r *projectRepo) GetByID(_ context.Context, id int64) (*entity.Project, error) {
	return getByID(r.s, projectsT, id)
}

func (r *projectRepo) GetByInitiative(_ context.Context, initiativeID int64) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.projects.find(func(x entity.Project) bool {
		return x.InitiativeID != nil && *x.InitiativeID == initiativeID
	}), nil
}

func (r *projectRepo) List(_ context.Context, limit, offset int) ([]*entity.Project, error) {
	return listWhere(r.s, projectsT, nil, limit, offset)
}

func (r *projectRepo) ListByStudent(_ context.Context, studentID int64, limit, offset int) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.projects.list(func(x entity.Project) bool {
		_, ok := r.s.t.links[linkKey{x.ID, studentID}]
		return ok
	}, limit, offset), nil
}

func (r *projectRepo) ListByInitiativeOwner(_ context.Context, ownerID int64, limit, offset int) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.t.projects.list(func(x entity.Project) bool {
		if x.InitiativeID == nil {
			return false
		}
		in := r.s.t.initiatives.get(*x.InitiativeID)
		return in != nil && in.UserID == ownerID
	}, limit, offset), nil
}

func (r *projectRepo) Update(_ context.Context, p *entity.Project) error {
	return update(r.s, "projects.update", projectsT, p.ID, p)
}

func (r *projectRepo) Delete(_ context.Context, id int64) (*entity.Project, error) {
	return remove(r.s, "projects.delete", projectsT, id)
}

type linkRepo struct{ s *Store }

func (s *Store) ProjectStudents() repository.ProjectStudentRepository { return &linkRepo{s} }

// Attach no duplica: si el par existe devuelve created=false.
func (r *linkRepo) Attach(_ context.Context, link *entity.ProjectStudent) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("links.attach"); err != nil {
		return false, err
	}
	k := linkKey{link.ProjectID, link.StudentID}
	if _, ok := r.s.t.links[k]; ok {
		return false, nil
	}
	r.s.t.links[k] = *link
	return true, nil
}

func (r *linkRepo) Get(_ context.Context, projectID, studentID int64) (*entity.ProjectStudent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.t.links[linkKey{projectID, studentID}]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *linkRepo) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]*entity.ProjectStudent, error) {
	return r.list(func(l entity.ProjectStudent) bool { return l.ProjectID == projectID }, limit, offset), nil
}

func (r *linkRepo) ListByStudent(_ context.Context, studentID int64, limit, offset int) ([]*entity.ProjectStudent, error) {
	return r.list(func(l entity.ProjectStudent) bool { return l.StudentID == studentID }, limit, offset), nil
}

func (r *linkRepo) list(match func(entity.ProjectStudent) bool, limit, offset int) []*entity.ProjectStudent {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]entity.ProjectStudent, 0, len(r.s.t.links))
	for _, l := range r.s.t.links {
		if match(l) {
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ProjectID != all[j].ProjectID {
			return all[i].ProjectID < all[j].ProjectID
		}
		return all[i].StudentID < all[j].StudentID
	})
	out := []*entity.ProjectStudent{}
	for i := offset; i < len(all) && (limit <= 0 || len(out) < limit); i++ {
		l := all[i]
		out = append(out, &l)
	}
	return out
}

func (r *linkRepo) Update(_ context.Context, link *entity.ProjectStudent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := linkKey{link.ProjectID, link.StudentID}
	if _, ok := r.s.t.links[k]; !ok {
		return domain.ErrNotFound
	}
	r.s.t.links[k] = *link
	return nil
}

func (r *linkRepo) Delete(_ context.Context, projectID, studentID int64) (*entity.ProjectStudent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := linkKey{projectID, studentID}
	l, ok := r.s.t.links[k]
	if !ok {
		return nil, nil
	}
	delete(r.s.t.links, k)
	return &l, nil
}

type milestoneRepo struct{ s *Store }

func (s *Store) Milestones() repository.MilestoneRepository { return &milestoneRepo{s} }

func (r *milestoneRepo) Create(_ context.Context, m *entity.Milestone) error {
	return create(r.s, "milestones.create", milestonesT, m, func(v *entity.Milestone, id int64) { v.ID = id })
}

func (r *milestoneRepo) GetByID(_ context.Context, id int64) (*entity.Milestone, error) {
	return getByID(r.s, milestonesT, id)
}

func (r *milestoneRepo) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]*entity.Milestone, error) {
	return listWhere(r.s, milestonesT, func(x entity.Milestone) bool { return x.ProjectID == projectID }, limit, offset)
}

func (r *milestoneRepo) Update(_ context.Context, m *entity.Milestone) error {
	return update(r.s, "milestones.update", milestonesT, m.ID, m)
}

func (r *milestoneRepo) Delete(_ context.Context, id int64) (*entity.Milestone, error) {
	return remove(r.s, "milestones.delete", milestonesT, id)
}

type deliveryRepo struct{ s *Store }

func (s *Store) Deliveries() repository.DeliveryRepository { return &deliveryRepo{s} }

func (r *deliveryRepo) Create(_ context.Context, d *entity.Delivery) error {
	return create(r.s, "deliveries.create", deliveriesT, d, func(v *entity.Delivery, id int64) {
		v.ID = id
		v.DeliveredAt = r.s.now()
	})
}

func (r *deliveryRepo) GetByID(_ context.Context, id int64) (*entity.Delivery, error) {
	return getByID(r.s, deliveriesT, id)
}

func (r *deliveryRepo) ListByMilestone(_ context.Context, milestoneID int64, limit, offset int) ([]*entity.Delivery, error) {
	return listWhere(r.s, deliveriesT, func(x entity.Delivery) bool { return x.MilestoneID == milestoneID }, limit, offset)
}

func (r *deliveryRepo) Update(_ context.Context, d *entity.Delivery) error {
	return update(r.s, "deliveries.update", deliveriesT, d.ID, d)
}

func (r *deliveryRepo) Delete(_ context.Context, id int64) (*entity.Delivery, error) {
	return remove(r.s, "deliveries.delete", deliveriesT, id)
}
