package services

import (
	"context"
	"sync"

	"github.com/anjiri1684/certificate_validation/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

var _ CertificateStore = (*mockStore)(nil)

func (m *mockStore) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	args := m.Called(ctx)
	certs, _ := args.Get(0).([]models.Certificate)
	return certs, args.Error(1)
}

func (m *mockStore) GetCertificateByUniqueCode(ctx context.Context, code string) (*models.Certificate, error) {
	args := m.Called(ctx, code)
	cert, _ := args.Get(0).(*models.Certificate)
	return cert, args.Error(1)
}

func (m *mockStore) GetCertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	args := m.Called(ctx, id)
	cert, _ := args.Get(0).(*models.Certificate)
	return cert, args.Error(1)
}

func (m *mockStore) UniqueCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) CreateCertificate(ctx context.Context, cert *models.Certificate) error {
	return m.Called(ctx, cert).Error(0)
}

func (m *mockStore) UpdateCertificateStatus(ctx context.Context, code, status string) error {
	return m.Called(ctx, code, status).Error(0)
}

func (m *mockStore) SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockStore) CreateStudent(ctx context.Context, student *models.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *mockStore) UpdateStudent(ctx context.Context, student *models.Student) error {
	return m.Called(ctx, student).Error(0)
}

func (m *mockStore) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *mockStore) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) CreateCourse(ctx context.Context, course *models.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockStore) UpdateCourse(ctx context.Context, course *models.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockStore) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockStore) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx runs fn against the same mock so expectations cover both.
func (m *mockStore) WithTx(ctx context.Context, fn func(tx CertificateStore) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f *fakeRenderer) RenderPDF(ctx context.Context, cert *models.Certificate) ([]byte, error) {
	return f.pdf, f.err
}

type fakeArchiver struct {
	url      string
	err      error
	publicID string
	data     []byte
}

func (f *fakeArchiver) Archive(ctx context.Context, data []byte, publicID string) (string, error) {
	f.data = data
	f.publicID = publicID
	return f.url, f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeNotifier) NotifyIssued(ctx context.Context, cert *models.Certificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cert.UniqueCode)
	return f.err
}
