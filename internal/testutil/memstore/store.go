// Package memstore implementaciones en memoria de los repositorios, para tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/softlink/softlink-api/internal/application/postulacion"
	"github.com/softlink/softlink-api/internal/domain/entity"
)

type linkKey struct{ project, student int64 }

type tables struct {
	users         *table[entity.User]
	tokens        *table[entity.Token]
	initiatives   *table[entity.Initiative]
	documents     *table[entity.InitiativeDocument]
	postulaciones *table[entity.Postulacion]
	projects      *table[entity.Project]
	milestones    *table[entity.Milestone]
	deliveries    *table[entity.Delivery]
	criteria      *table[entity.Criterion]
	evaluations   *table[entity.Evaluation]
	comments      *table[entity.Comment]
	messages      *table[entity.Message]
	notifications *table[entity.Notification]
	audits        *table[entity.Audit]
	links         map[linkKey]entity.ProjectStudent
}

func (t *tables) clone() tables {
	links := make(map[linkKey]entity.ProjectStudent, len(t.links))
	for k, v := range t.links {
		links[k] = v
	}
	return tables{
		users:         t.users.clone(),
		tokens:        t.tokens.clone(),
		initiatives:   t.initiatives.clone(),
		documents:     t.documents.clone(),
		postulaciones: t.postulaciones.clone(),
		projects:      t.projects.clone(),
		milestones:    t.milestones.clone(),
		deliveries:    t.deliveries.clone(),
		criteria:      t.criteria.clone(),
		evaluations:   t.evaluations.clone(),
		comments:      t.comments.clone(),
		messages:      t.messages.clone(),
		notifications: t.notifications.clone(),
		audits:        t.audits.clone(),
		links:         links,
	}
}

// Store base de datos en memoria con roles sembrados.
// Fail, si no es nil, se consulta antes de cada escritura ("projects.create", "audits.create", ...).
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	t     tables
	roles []entity.Role
	now   func() time.Time

	Fail func(op string) error
}

// New crea un store vacío con los tres roles.
func New() *Store {
	return &Store{
		t: tables{
			users:         newTable[entity.User](),
			tokens:        newTable[entity.Token](),
			initiatives:   newTable[entity.Initiative](),
			documents:     newTable[entity.InitiativeDocument](),
			postulaciones: newTable[entity.Postulacion](),
			projects:      newTable[entity.Project](),
			milestones:    newTable[entity.Milestone](),
			deliveries:    newTable[entity.Delivery](),
			criteria:      newTable[entity.Criterion](),
			evaluations:   newTable[entity.Evaluation](),
			comments:      newTable[entity.Comment](),
			messages:      newTable[entity.Message](),
			notifications: newTable[entity.Notification](),
			audits:        newTable[entity.Audit](),
			links:         make(map[linkKey]entity.ProjectStudent),
		},
		roles: []entity.Role{
			{ID: entity.RoleCoordinator, Name: "coordinador", Description: "Coordinador universitario"},
			{ID: entity.RoleStudent, Name: "estudiante", Description: "Estudiante"},
			{ID: entity.RoleCompany, Name: "empresa", Description: "Empresa aliada"},
		},
		now: time.Now,
	}
}

func (s *Store) check(op string) error {
	if s.Fail == nil {
		return nil
	}
	return s.Fail(op)
}

// Run ejecuta fn sobre el mismo store; si fn falla se restaura la foto tomada al inicio.
func (s *Store) Run(_ context.Context, fn func(repos postulacion.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.t.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Repos repositorios del flujo de postulaciones.
func (s *Store) Repos() postulacion.Repos {
	return postulacion.Repos{
		Postulaciones:   s.Postulaciones(),
		Initiatives:     s.Initiatives(),
		Projects:        s.Projects(),
		ProjectStudents: s.ProjectStudents(),
		Audits:          s.Audits(),
		Notifications:   s.Notifications(),
	}
}

var _ postulacion.TxRunner = (*Store)(nil)
