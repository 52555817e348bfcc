package services

import (
	"context"

	"github.com/anjiri1684/certificate_validation/models"
	"github.com/google/uuid"
)

// CertificateStore is the record store the services read from and write to.
// Lookups that miss return an apperrors NotFound error; uniqueness and
// foreign-key violations return ConstraintViolation.
type CertificateStore interface {
	ListCertificates(ctx context.Context) ([]models.Certificate, error)
	GetCertificateByUniqueCode(ctx context.Context, code string) (*models.Certificate, error)
	GetCertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error)
	UniqueCodeExists(ctx context.Context, code string) (bool, error)
	CreateCertificate(ctx context.Context, cert *models.Certificate) error
	UpdateCertificateStatus(ctx context.Context, code, status string) error
	SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error

	CreateStudent(ctx context.Context, student *models.Student) error
	UpdateStudent(ctx context.Context, student *models.Student) error
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	// WithTx runs fn against a store bound to a single transaction.
	WithTx(ctx context.Context, fn func(tx CertificateStore) error) error
}
