package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"time"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"gorm.io/datatypes"
)

type Algorithm string

const (
	AlgorithmSHA256     Algorithm = "sha256"
	AlgorithmSHA3_256   Algorithm = "sha3-256"
	AlgorithmBLAKE2b256 Algorithm = "blake2b-256"
)

// SignatureLength is the hex length of every supported digest.
const SignatureLength = 64

var ErrRelationsNotLoaded = apperrors.InvalidArg("certificate student and course must be loaded before signing")

// Signer derives and checks the integrity token of a certificate.
type Signer struct {
	algorithm Algorithm
	newHash   func() hash.Hash
}

func NewSigner(algorithm Algorithm) (*Signer, error) {
	s := &Signer{algorithm: algorithm}
	switch algorithm {
	case AlgorithmSHA256, "":
		s.algorithm = AlgorithmSHA256
		s.newHash = sha256.New
	case AlgorithmSHA3_256:
		s.newHash = sha3.New256
	case AlgorithmBLAKE2b256:
		s.newHash = func() hash.Hash {
			// New256 only fails for keys longer than 64 bytes.
			h, _ := blake2b.New256(nil)
			return h
		}
	default:
		return nil, apperrors.Configuration(fmt.Sprintf("unsupported signature algorithm %q", algorithm))
	}
	return s, nil
}

func (s *Signer) Algorithm() Algorithm {
	return s.algorithm
}

// CanonicalFields projects the bound fields of cert, including the related
// student's and course's current values.
func CanonicalFields(cert *models.Certificate) (CanonicalRecord, error) {
	if cert == nil || !cert.HasRelations() {
		return nil, ErrRelationsNotLoaded
	}

	var createdAt *string
	if !cert.CreatedAt.IsZero() {
		createdAt = ptr(ISOTimestamp(cert.CreatedAt))
	}

	return CanonicalRecord{
		"certificate_id": ptr(cert.ID.String()),
		"student_id":     ptr(cert.Student.StudentID),
		"student_name":   ptr(cert.Student.FullName()),
		"course_name":    ptr(cert.Course.Name),
		"issue_date":     ptr(ISODate(cert.IssueDate)),
		"expiry_date":    ISODatePtr(cert.ExpiryDate),
		"unique_code":    ptr(cert.UniqueCode),
		"created_at":     createdAt,
	}, nil
}

func (s *Signer) Generate(cert *models.Certificate) (string, error) {
	rec, err := CanonicalFields(cert)
	if err != nil {
		return "", err
	}

	h := s.newHash()
	h.Write(EncodeCanonical(rec))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Sign stores a freshly generated token on cert.
func (s *Signer) Sign(cert *models.Certificate) error {
	token, err := s.Generate(cert)
	if err != nil {
		return err
	}
	cert.Signature = &token
	return nil
}

// Verify recomputes the token from current values. A missing signature or
// unloaded relations never verify.
func (s *Signer) Verify(cert *models.Certificate) bool {
	if cert == nil || cert.Signature == nil || *cert.Signature == "" {
		return false
	}
	expected, err := s.Generate(cert)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(*cert.Signature)) == 1
}

// Check is Verify as an error: nil when the token matches, otherwise an
// IntegrityMismatch wrapping the reason.
func (s *Signer) Check(cert *models.Certificate) error {
	if s.Verify(cert) {
		return nil
	}
	reason := "stored signature does not match record"
	switch {
	case cert == nil || cert.Signature == nil || *cert.Signature == "":
		reason = "no signature stored"
	case !cert.HasRelations():
		reason = "student and course not loaded"
	}
	return apperrors.Wrap(apperrors.CodeIntegrityMismatch, apperrors.ErrSignatureMismatch.Error(), errors.New(reason))
}

func ISODate(d datatypes.Date) string {
	return time.Time(d).Format(time.DateOnly)
}

func ISODatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	return ptr(ISODate(*d))
}

// ISOTimestamp renders the wall clock of t with microsecond precision only
// when it is non-zero, e.g. 2024-01-15T08:30:00 or 2024-01-15T08:30:00.000120.
func ISOTimestamp(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

func ISOTimestampPtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	return ptr(ISOTimestamp(*t))
}

func ptr[T any](v T) *T {
	return &v
}
