package repository

import (
	"context"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (r *CertificateRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(student).Error
	if err != nil {
		return mapError(err, "certificateRepo.CreateStudent.Create", apperrors.ErrStudentNotFound)
	}
	return nil
}

func (r *CertificateRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	res := r.db.WithContext(ctx).
		Model(student).
		Select("student_id", "first_name", "last_name", "email", "date_of_birth", "updated_at").
		Updates(student)
	if res.Error != nil {
		return mapError(res.Error, "certificateRepo.UpdateStudent.Updates", apperrors.ErrStudentNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *CertificateRepository) GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	student := new(models.Student)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(student).Error; err != nil {
		return nil, mapError(err, "certificateRepo.GetStudentByID.First", apperrors.ErrStudentNotFound)
	}
	return student, nil
}

// DeleteStudent is refused by the foreign key while certificates reference
// the student.
func (r *CertificateRepository) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Student{})
	if res.Error != nil {
		return mapError(res.Error, "certificateRepo.DeleteStudent.Delete", apperrors.ErrStudentNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *CertificateRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(course).Error
	if err != nil {
		return mapError(err, "certificateRepo.CreateCourse.Create", apperrors.ErrCourseNotFound)
	}
	return nil
}

func (r *CertificateRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	res := r.db.WithContext(ctx).
		Model(course).
		Select("name", "description", "duration", "updated_at").
		Updates(course)
	if res.Error != nil {
		return mapError(res.Error, "certificateRepo.UpdateCourse.Updates", apperrors.ErrCourseNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func (r *CertificateRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course := new(models.Course)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(course).Error; err != nil {
		return nil, mapError(err, "certificateRepo.GetCourseByID.First", apperrors.ErrCourseNotFound)
	}
	return course, nil
}

func (r *CertificateRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Course{})
	if res.Error != nil {
		return mapError(res.Error, "certificateRepo.DeleteCourse.Delete", apperrors.ErrCourseNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
