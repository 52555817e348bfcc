package routes

import (
	"context"
	"sort"
	"sync"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/anjiri1684/certificate_validation/services"
	"github.com/google/uuid"
)

// memStore is an in-memory CertificateStore that mirrors the constraint
// behaviour of the postgres repository.
type memStore struct {
	mu           sync.Mutex
	students     map[uuid.UUID]models.Student
	courses      map[uuid.UUID]models.Course
	certificates map[string]models.Certificate
}

var _ services.CertificateStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		students:     map[uuid.UUID]models.Student{},
		courses:      map[uuid.UUID]models.Course{},
		certificates: map[string]models.Certificate{},
	}
}

func (m *memStore) hydrate(c models.Certificate) models.Certificate {
	c.Student = m.students[c.StudentID]
	c.Course = m.courses[c.CourseID]
	return c
}

func (m *memStore) ListCertificates(context.Context) ([]models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Certificate, 0, len(m.certificates))
	for _, c := range m.certificates {
		out = append(out, m.hydrate(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memStore) GetCertificateByUniqueCode(_ context.Context, code string) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.certificates[code]
	if !ok {
		return nil, apperrors.ErrCertificateNotFound
	}
	c = m.hydrate(c)
	return &c, nil
}

func (m *memStore) GetCertificateByID(_ context.Context, id uuid.UUID) (*models.Certificate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.certificates {
		if c.ID == id {
			c = m.hydrate(c)
			return &c, nil
		}
	}
	return nil, apperrors.ErrCertificateNotFound
}

func (m *memStore) UniqueCodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.certificates[code]
	return ok, nil
}

func (m *memStore) CreateCertificate(_ context.Context, cert *models.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.certificates[cert.UniqueCode]; ok {
		return apperrors.ErrDuplicateRecord(nil)
	}
	_, hasStudent := m.students[cert.StudentID]
	_, hasCourse := m.courses[cert.CourseID]
	if !hasStudent || !hasCourse {
		return apperrors.ErrMissingReference(nil)
	}
	stored := *cert
	stored.Student, stored.Course = models.Student{}, models.Course{}
	m.certificates[cert.UniqueCode] = stored
	return nil
}

func (m *memStore) UpdateCertificateStatus(_ context.Context, code, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.certificates[code]
	if !ok {
		return apperrors.ErrCertificateNotFound
	}
	c.Status = status
	m.certificates[code] = c
	return nil
}

func (m *memStore) SetDocumentURL(_ context.Context, id uuid.UUID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, c := range m.certificates {
		if c.ID == id {
			c.DocumentURL = &url
			m.certificates[code] = c
			return nil
		}
	}
	return apperrors.ErrCertificateNotFound
}

func (m *memStore) CreateStudent(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.students {
		if existing.StudentID == s.StudentID {
			return apperrors.ErrDuplicateRecord(nil)
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.students[s.ID] = *s
	return nil
}

func (m *memStore) UpdateStudent(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[s.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	m.students[s.ID] = *s
	return nil
}

func (m *memStore) GetStudentByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

func (m *memStore) DeleteStudent(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	for _, c := range m.certificates {
		if c.StudentID == id {
			return apperrors.ErrMissingReference(nil)
		}
	}
	delete(m.students, id)
	return nil
}

func (m *memStore) CreateCourse(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.courses[c.ID] = *c
	return nil
}

func (m *memStore) UpdateCourse(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[c.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	m.courses[c.ID] = *c
	return nil
}

func (m *memStore) GetCourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &c, nil
}

func (m *memStore) DeleteCourse(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, c := range m.certificates {
		if c.CourseID == id {
			return apperrors.ErrMissingReference(nil)
		}
	}
	delete(m.courses, id)
	return nil
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx services.CertificateStore) error) error {
	return fn(m)
}
