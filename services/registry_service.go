package services

import (
	"context"
	"strings"
	"time"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StudentInput struct {
	StudentID   string
	FirstName   string
	LastName    string
	Email       *string
	DateOfBirth *time.Time
}

type CourseInput struct {
	Name        string
	Description *string
	Duration    int
}

// RegistryService maintains the students and courses certificates point at.
// Renaming either one makes previously issued signatures stop verifying.
type RegistryService struct {
	store  CertificateStore
	logger *zap.Logger
}

func NewRegistryService(store CertificateStore, logger *zap.Logger) *RegistryService {
	return &RegistryService{store: store, logger: logger.Named("registryService")}
}

func (in StudentInput) apply(s *models.Student) error {
	s.StudentID = strings.TrimSpace(in.StudentID)
	s.FirstName = strings.TrimSpace(in.FirstName)
	s.LastName = strings.TrimSpace(in.LastName)
	if s.StudentID == "" || s.FirstName == "" || s.LastName == "" {
		return apperrors.InvalidArg("student_id, first_name and last_name are required")
	}
	s.Email = in.Email
	s.DateOfBirth = nil
	if in.DateOfBirth != nil {
		dob := toDate(*in.DateOfBirth)
		s.DateOfBirth = &dob
	}
	return nil
}

func (in CourseInput) apply(c *models.Course) error {
	c.Name = strings.TrimSpace(in.Name)
	if c.Name == "" {
		return apperrors.InvalidArg("name is required")
	}
	if in.Duration < 0 {
		return apperrors.InvalidArg("duration must not be negative")
	}
	c.Description = in.Description
	c.Duration = in.Duration
	return nil
}

func (r *RegistryService) CreateStudent(ctx context.Context, in StudentInput) (*models.Student, error) {
	student := new(models.Student)
	if err := in.apply(student); err != nil {
		return nil, err
	}
	if err := r.store.CreateStudent(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (r *RegistryService) UpdateStudent(ctx context.Context, id uuid.UUID, in StudentInput) (*models.Student, error) {
	student, err := r.store.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := student.FullName()
	if err := in.apply(student); err != nil {
		return nil, err
	}
	if err := r.store.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	if previous != student.FullName() {
		r.logger.Warn("student renamed; signatures bound to the old name will no longer verify",
			zap.String("student_id", student.StudentID))
	}
	return student, nil
}

func (r *RegistryService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteStudent(ctx, id)
}

func (r *RegistryService) CreateCourse(ctx context.Context, in CourseInput) (*models.Course, error) {
	course := new(models.Course)
	if err := in.apply(course); err != nil {
		return nil, err
	}
	if err := r.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (r *RegistryService) UpdateCourse(ctx context.Context, id uuid.UUID, in CourseInput) (*models.Course, error) {
	course, err := r.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := course.Name
	if err := in.apply(course); err != nil {
		return nil, err
	}
	if err := r.store.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	if previous != course.Name {
		r.logger.Warn("course renamed; signatures bound to the old name will no longer verify",
			zap.String("course_id", course.ID.String()))
	}
	return course, nil
}

func (r *RegistryService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return r.store.DeleteCourse(ctx, id)
}
