package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func sampleCertificate() *models.Certificate {
	return &models.Certificate{
		ID:         uuid.MustParse("3f2b8c1e-5d4a-4e6b-9c7d-1a2b3c4d5e6f"),
		IssueDate:  date(2024, time.January, 1),
		UniqueCode: "ABC123",
		Status:     models.StatusActive,
		CreatedAt:  time.Date(2024, time.January, 1, 9, 30, 0, 123456000, time.UTC),
		Student: models.Student{
			ID:        uuid.MustParse("a1a1a1a1-0000-4000-8000-000000000001"),
			StudentID: "S1",
			FirstName: "Ann",
			LastName:  "Lee",
		},
		Course: models.Course{
			ID:       uuid.MustParse("c0c0c0c0-0000-4000-8000-000000000001"),
			Name:     "Algorithms",
			Duration: 10,
		},
	}
}

func mustSigner(t *testing.T, alg Algorithm) *Signer {
	t.Helper()
	s, err := NewSigner(alg)
	require.NoError(t, err)
	return s
}

func TestEncodeCanonical(t *testing.T) {
	rec, err := CanonicalFields(sampleCertificate())
	require.NoError(t, err)

	want := `{"certificate_id": "3f2b8c1e-5d4a-4e6b-9c7d-1a2b3c4d5e6f", "course_name": "Algorithms", ` +
		`"created_at": "2024-01-01T09:30:00.123456", "expiry_date": null, "issue_date": "2024-01-01", ` +
		`"student_id": "S1", "student_name": "Ann Lee", "unique_code": "ABC123"}`
	assert.Equal(t, want, string(EncodeCanonical(rec)))
}

func TestEncodeCanonical_EscapesOutsidePrintableASCII(t *testing.T) {
	got := EncodeCanonical(CanonicalRecord{"name": ptr("Zoë \"Ω\" 😀\n\x7f\\")})
	assert.Equal(t, `{"name": "Zo\u00eb \"\u03a9\" \ud83d\ude00\n\u007f\\"}`, string(got))
}

func TestGenerate_KnownVectors(t *testing.T) {
	cert := sampleCertificate()

	tests := []struct {
		name   string
		alg    Algorithm
		mutate func(c *models.Certificate)
		want   string
	}{
		{
			name: "sha256 reference record",
			alg:  AlgorithmSHA256,
			want: "8efbbe9b1b8f54b75b43d10477c47ab76e5ff8e11f168316425bd4c1b98f3210",
		},
		{
			name:   "course renamed",
			alg:    AlgorithmSHA256,
			mutate: func(c *models.Certificate) { c.Course.Name = "Algorithms II" },
			want:   "a0b06da56b8505de230f405388de699c3775c6839f4016fcb9bc59c4eca09a9c",
		},
		{
			name: "non-ascii student name",
			alg:  AlgorithmSHA256,
			mutate: func(c *models.Certificate) {
				c.Student.FirstName = "Zoë \"Ω\""
				c.Student.LastName = "😀\n\x7f"
			},
			want: "d0333c1a5918f14f291d87d4a69f40321ff1754a4bf539a86a011735f58de94c",
		},
		{
			name: "expiry set and whole-second created_at",
			alg:  AlgorithmSHA256,
			mutate: func(c *models.Certificate) {
				exp := date(2026, time.January, 1)
				c.ExpiryDate = &exp
				c.CreatedAt = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
			},
			want: "92b5883972d444793d970f93d207aacef98f53ed26ae1591906a813bc7ad5bbb",
		},
		{
			name: "sha3-256",
			alg:  AlgorithmSHA3_256,
			want: "3523700fd9417e00cfc8dcfa8980c9c05b641be5b371d912e0e6126d5a9d370b",
		},
		{
			name: "blake2b-256",
			alg:  AlgorithmBLAKE2b256,
			want: "18cdacaeaf07c730ee378f2f49f70da96d657db52aeeba7ff6aaa122e4a1f40d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cert
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			got, err := mustSigner(t, tt.alg).Generate(&c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	s := mustSigner(t, AlgorithmSHA256)
	cert := sampleCertificate()

	first, err := s.Generate(cert)
	require.NoError(t, err)
	second, err := s.Generate(cert)
	require.NoError(t, err)

	assert.Regexp(t, hexToken, first)
	assert.Len(t, first, SignatureLength)
	assert.Equal(t, first, second)
}

func TestGenerate_SensitiveToBoundFields(t *testing.T) {
	s := mustSigner(t, AlgorithmSHA256)
	base, err := s.Generate(sampleCertificate())
	require.NoError(t, err)

	mutations := map[string]func(c *models.Certificate){
		"certificate id":  func(c *models.Certificate) { c.ID = uuid.New() },
		"student id":      func(c *models.Certificate) { c.Student.StudentID = "S2" },
		"first name":      func(c *models.Certificate) { c.Student.FirstName = "Anne" },
		"last name":       func(c *models.Certificate) { c.Student.LastName = "Li" },
		"course name":     func(c *models.Certificate) { c.Course.Name = "Algorithms II" },
		"issue date":      func(c *models.Certificate) { c.IssueDate = date(2024, time.January, 2) },
		"expiry date":     func(c *models.Certificate) { e := date(2025, time.January, 1); c.ExpiryDate = &e },
		"unique code":     func(c *models.Certificate) { c.UniqueCode = "ABC124" },
		"created at":      func(c *models.Certificate) { c.CreatedAt = c.CreatedAt.Add(time.Microsecond) },
		"created at zero": func(c *models.Certificate) { c.CreatedAt = time.Time{} },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := sampleCertificate()
			mutate(c)
			got, err := s.Generate(c)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}
}

func TestGenerate_IgnoresUnboundFields(t *testing.T) {
	s := mustSigner(t, AlgorithmSHA256)
	base, err := s.Generate(sampleCertificate())
	require.NoError(t, err)

	c := sampleCertificate()
	c.Status = "revoked"
	c.Course.Duration = 99
	c.Student.Email = ptr("ann@example.com")
	c.UpdatedAt = time.Now()

	got, err := s.Generate(c)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestGenerate_RequiresRelations(t *testing.T) {
	s := mustSigner(t, AlgorithmSHA256)
	c := sampleCertificate()
	c.Course = models.Course{}

	_, err := s.Generate(c)
	assert.ErrorIs(t, err, ErrRelationsNotLoaded)
	assert.False(t, s.Verify(c))
}

func TestVerify(t *testing.T) {
	s := mustSigner(t, AlgorithmSHA256)

	t.Run("missing signature", func(t *testing.T) {
		assert.False(t, s.Verify(sampleCertificate()))
	})

	t.Run("empty signature", func(t *testing.T) {
		c := sampleCertificate()
		c.Signature = ptr("")
		assert.False(t, s.Verify(c))
	})

	t.Run("freshly signed", func(t *testing.T) {
		c := sampleCertificate()
		require.NoError(t, s.Sign(c))
		assert.True(t, s.Verify(c))
	})

	t.Run("drift after student rename", func(t *testing.T) {
		c := sampleCertificate()
		require.NoError(t, s.Sign(c))
		c.Student.LastName = "Smith"
		assert.False(t, s.Verify(c))
	})

	t.Run("other algorithm", func(t *testing.T) {
		c := sampleCertificate()
		require.NoError(t, mustSigner(t, AlgorithmSHA3_256).Sign(c))
		assert.False(t, s.Verify(c))
	})
}

func TestCheck(t *testing.T) {
	s := mustSigner(t, AlgorithmSHA256)

	c := sampleCertificate()
	require.NoError(t, s.Sign(c))
	assert.NoError(t, s.Check(c))

	c.Course.Name = "Algorithms II"
	err := s.Check(c)
	assert.ErrorIs(t, err, apperrors.ErrSignatureMismatch)
	assert.Equal(t, apperrors.CodeIntegrityMismatch, apperrors.CodeOf(err))
	assert.ErrorContains(t, err, "does not match")

	unsigned := sampleCertificate()
	assert.ErrorContains(t, s.Check(unsigned), "no signature stored")

	bare := sampleCertificate()
	require.NoError(t, s.Sign(bare))
	bare.Student = models.Student{}
	assert.ErrorContains(t, s.Check(bare), "not loaded")
}

func TestNewSigner(t *testing.T) {
	s, err := NewSigner("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmSHA256, s.Algorithm())

	_, err = NewSigner("md5")
	assert.Error(t, err)
}

func TestISOTimestamp(t *testing.T) {
	assert.Equal(t, "2024-01-15T08:30:00", ISOTimestamp(time.Date(2024, 1, 15, 8, 30, 0, 999, time.UTC)))
	assert.Equal(t, "2024-01-15T08:30:00.000120", ISOTimestamp(time.Date(2024, 1, 15, 8, 30, 0, 120000, time.UTC)))
	assert.Nil(t, ISOTimestampPtr(nil))
	assert.Nil(t, ISODatePtr(nil))
}
