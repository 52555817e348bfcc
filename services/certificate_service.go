package services

import (
	"context"
	"time"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"go.uber.org/zap"
)

type ValidationMode string

const (
	// ModePermissive reports every existing certificate as valid without
	// checking its signature. It is the default.
	ModePermissive ValidationMode = "permissive"
	// ModeStrict additionally requires the stored signature to verify.
	ModeStrict ValidationMode = "strict"
)

const (
	MessageNotFound         = "Certificate not found"
	MessageValid            = "Certificate is valid"
	MessageInvalidSignature = "Invalid certificate signature"
)

type VerificationResult struct {
	UniqueCode string `json:"unique_code"`
	IsValid    bool   `json:"is_valid"`
	Message    string `json:"message"`

	StudentName  *string `json:"student_name"`
	StudentEmail *string `json:"student_email"`
	CourseName   *string `json:"course_name"`
	IssueDate    *string `json:"issue_date"`
	ExpiryDate   *string `json:"expiry_date"`
	Status       *string `json:"status"`
}

// CertificateService answers lookups and validation requests.
type CertificateService struct {
	store  CertificateStore
	signer *Signer
	mode   ValidationMode
	events EventPublisher
	logger *zap.Logger
}

func NewCertificateService(store CertificateStore, signer *Signer, mode ValidationMode, events EventPublisher, logger *zap.Logger) *CertificateService {
	if mode == "" {
		mode = ModePermissive
	}
	return &CertificateService{
		store:  store,
		signer: signer,
		mode:   mode,
		events: publisherOrNoop(events),
		logger: logger.Named("certificateService"),
	}
}

func (s *CertificateService) Mode() ValidationMode {
	return s.mode
}

func (s *CertificateService) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	return s.store.ListCertificates(ctx)
}

func (s *CertificateService) GetCertificateByCode(ctx context.Context, code string) (*models.Certificate, error) {
	return s.store.GetCertificateByUniqueCode(ctx, code)
}

// Validate never returns an error for a missing certificate or a signature
// mismatch; both are reported in the result. Only store failures surface.
func (s *CertificateService) Validate(ctx context.Context, code string) (*VerificationResult, error) {
	cert, err := s.store.GetCertificateByUniqueCode(ctx, code)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.publish(code, false, MessageNotFound)
			return &VerificationResult{UniqueCode: code, IsValid: false, Message: MessageNotFound}, nil
		}
		return nil, err
	}

	if s.mode == ModeStrict {
		if mismatch := s.signer.Check(cert); mismatch != nil {
			s.logger.Warn("certificate signature mismatch",
				zap.String("unique_code", code),
				zap.Error(mismatch),
			)
			s.events.Publish(Event{Type: EventIntegrityMismatch, UniqueCode: code, Message: MessageInvalidSignature, At: time.Now().UTC()})
			s.publish(code, false, MessageInvalidSignature)
			return &VerificationResult{UniqueCode: code, IsValid: false, Message: MessageInvalidSignature}, nil
		}
	}

	s.publish(code, true, MessageValid)
	return &VerificationResult{
		UniqueCode:   code,
		IsValid:      true,
		Message:      MessageValid,
		StudentName:  ptr(cert.Student.FullName()),
		StudentEmail: cert.Student.Email,
		CourseName:   ptr(cert.Course.Name),
		IssueDate:    ptr(ISODate(cert.IssueDate)),
		ExpiryDate:   ISODatePtr(cert.ExpiryDate),
		Status:       ptr(cert.Status),
	}, nil
}

func (s *CertificateService) publish(code string, valid bool, message string) {
	s.events.Publish(Event{
		Type:       EventCertificateValidated,
		UniqueCode: code,
		Valid:      &valid,
		Message:    message,
		At:         time.Now().UTC(),
	})
}
