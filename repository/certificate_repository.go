package repository

import (
	"context"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/anjiri1684/certificate_validation/services"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ services.CertificateStore = (*CertificateRepository)(nil)

func NewCertificateRepository(db *gorm.DB, logger *zap.Logger) *CertificateRepository {
	return &CertificateRepository{
		db:     db,
		logger: logger.Named("certificateRepo"),
	}
}

// mapError turns gorm's translated errors into the app taxonomy.
func mapError(err error, op string, notFound error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrDuplicateRecord(errors.Wrap(err, op))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrMissingReference(errors.Wrap(err, op))
	default:
		return errors.Wrap(err, op)
	}
}

func (r *CertificateRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Student").Preload("Course")
}

func (r *CertificateRepository) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := r.withRelations(ctx).Order("created_at ASC, id ASC").Find(&certs).Error
	if err != nil {
		return nil, errors.Wrap(err, "certificateRepo.ListCertificates.Find")
	}
	return certs, nil
}

func (r *CertificateRepository) GetCertificateByUniqueCode(ctx context.Context, code string) (*models.Certificate, error) {
	cert := new(models.Certificate)
	err := r.withRelations(ctx).Where("unique_code = ?", code).First(cert).Error
	if err != nil {
		return nil, mapError(err, "certificateRepo.GetCertificateByUniqueCode.First", apperrors.ErrCertificateNotFound)
	}
	return cert, nil
}

func (r *CertificateRepository) GetCertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	cert := new(models.Certificate)
	err := r.withRelations(ctx).Where("id = ?", id).First(cert).Error
	if err != nil {
		return nil, mapError(err, "certificateRepo.GetCertificateByID.First", apperrors.ErrCertificateNotFound)
	}
	return cert, nil
}

func (r *CertificateRepository) UniqueCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Certificate{}).Where("unique_code = ?", code).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "certificateRepo.UniqueCodeExists.Count")
	}
	return count > 0, nil
}

// CreateCertificate inserts the row only; loaded Student/Course values are
// never upserted alongside it.
func (r *CertificateRepository) CreateCertificate(ctx context.Context, cert *models.Certificate) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(cert).Error
	if err != nil {
		return mapError(err, "certificateRepo.CreateCertificate.Create", apperrors.ErrCertificateNotFound)
	}
	return nil
}

func (r *CertificateRepository) UpdateCertificateStatus(ctx context.Context, code, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Certificate{}).Where("unique_code = ?", code).Update("status", status)
	if res.Error != nil {
		return mapError(res.Error, "certificateRepo.UpdateCertificateStatus.Update", apperrors.ErrCertificateNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}

func (r *CertificateRepository) SetDocumentURL(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).Model(&models.Certificate{}).Where("id = ?", id).Update("document_url", url)
	if res.Error != nil {
		return errors.Wrap(res.Error, "certificateRepo.SetDocumentURL.Update")
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCertificateNotFound
	}
	return nil
}

func (r *CertificateRepository) WithTx(ctx context.Context, fn func(tx services.CertificateStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CertificateRepository{db: tx, logger: r.logger})
	})
}
