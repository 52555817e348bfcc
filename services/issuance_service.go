package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/anjiri1684/certificate_validation/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const followUpTimeout = 2 * time.Minute

// Notifier tells a student that a certificate was issued to them.
type Notifier interface {
	NotifyIssued(ctx context.Context, cert *models.Certificate) error
}

type IssueCertificateInput struct {
	StudentID  uuid.UUID
	CourseID   uuid.UUID
	IssueDate  time.Time
	ExpiryDate *time.Time
	// UniqueCode is generated when empty.
	UniqueCode string
	// Status defaults to "active".
	Status string
}

type IssuanceService struct {
	store     CertificateStore
	signer    *Signer
	documents *DocumentService
	notifier  Notifier
	events    EventPublisher
	logger    *zap.Logger
	now       func() time.Time

	wg sync.WaitGroup
}

// NewIssuanceService wires issuance. documents and notifier may be nil.
func NewIssuanceService(store CertificateStore, signer *Signer, documents *DocumentService, notifier Notifier, events EventPublisher, logger *zap.Logger, now func() time.Time) *IssuanceService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
	}
	return &IssuanceService{
		store:     store,
		signer:    signer,
		documents: documents,
		notifier:  notifier,
		events:    publisherOrNoop(events),
		logger:    logger.Named("issuanceService"),
		now:       now,
	}
}

// Issue creates and signs a certificate in one transaction. The id and
// created_at are fixed before signing so the stored token reproduces from
// the persisted row.
func (s *IssuanceService) Issue(ctx context.Context, in IssueCertificateInput) (*models.Certificate, error) {
	if in.IssueDate.IsZero() {
		return nil, apperrors.InvalidArg("issue_date is required")
	}
	if in.ExpiryDate != nil && in.ExpiryDate.Before(in.IssueDate) {
		return nil, apperrors.InvalidArg("expiry_date must not be before issue_date")
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.StatusActive
	}

	var cert *models.Certificate
	err := s.store.WithTx(ctx, func(tx CertificateStore) error {
		student, err := tx.GetStudentByID(ctx, in.StudentID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.ErrMissingReference(err)
			}
			return err
		}
		course, err := tx.GetCourseByID(ctx, in.CourseID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return apperrors.ErrMissingReference(err)
			}
			return err
		}

		code := strings.TrimSpace(in.UniqueCode)
		if code == "" {
			code, err = utils.GenerateUniqueCode(ctx, tx.UniqueCodeExists)
			if err != nil {
				return err
			}
		}

		now := s.now()
		cert = &models.Certificate{
			ID:         uuid.New(),
			StudentID:  student.ID,
			CourseID:   course.ID,
			IssueDate:  toDate(in.IssueDate),
			UniqueCode: code,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
			Student:    *student,
			Course:     *course,
		}
		if in.ExpiryDate != nil {
			exp := toDate(*in.ExpiryDate)
			cert.ExpiryDate = &exp
		}

		if err := s.signer.Sign(cert); err != nil {
			return err
		}
		return tx.CreateCertificate(ctx, cert)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ certificate issued",
		zap.String("unique_code", cert.UniqueCode),
		zap.String("student_id", cert.Student.StudentID),
		zap.String("course", cert.Course.Name),
	)
	s.events.Publish(Event{Type: EventCertificateIssued, UniqueCode: cert.UniqueCode, At: s.now()})

	issued := *cert
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.followUp(&issued)
	}()

	return cert, nil
}

// followUp archives the rendered document and emails the student. Both are
// best effort; the certificate is already committed.
func (s *IssuanceService) followUp(cert *models.Certificate) {
	ctx, cancel := context.WithTimeout(context.Background(), followUpTimeout)
	defer cancel()

	if s.documents != nil && s.documents.CanArchive() {
		url, err := s.documents.Archive(ctx, cert)
		if err != nil {
			s.logger.Error("🔥 failed to archive certificate document", zap.String("unique_code", cert.UniqueCode), zap.Error(err))
		} else {
			cert.DocumentURL = &url
		}
	}

	if s.notifier != nil && cert.Student.Email != nil && *cert.Student.Email != "" {
		if err := s.notifier.NotifyIssued(ctx, cert); err != nil {
			s.logger.Error("🔥 failed to notify student", zap.String("unique_code", cert.UniqueCode), zap.Error(err))
		}
	}
}

// Wait blocks until pending follow-ups finish.
func (s *IssuanceService) Wait() {
	s.wg.Wait()
}

// UpdateStatus changes the opaque status string. Status is not signed, so
// this never invalidates the signature.
func (s *IssuanceService) UpdateStatus(ctx context.Context, code, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return apperrors.InvalidArg("status is required")
	}
	if err := s.store.UpdateCertificateStatus(ctx, code, status); err != nil {
		return err
	}
	s.events.Publish(Event{Type: EventCertificateStatusSet, UniqueCode: code, Message: status, At: s.now()})
	return nil
}

func toDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
