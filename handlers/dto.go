package handlers

import (
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/anjiri1684/certificate_validation/services"
)

type StudentResponse struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"student_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"date_of_birth"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type CourseResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Duration    int     `json:"duration"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type CertificateResponse struct {
	ID          string          `json:"id"`
	Student     StudentResponse `json:"student"`
	Course      CourseResponse  `json:"course"`
	IssueDate   string          `json:"issue_date"`
	ExpiryDate  *string         `json:"expiry_date"`
	UniqueCode  string          `json:"unique_code"`
	Status      string          `json:"status"`
	CreatedAt   *string         `json:"created_at"`
	UpdatedAt   *string         `json:"updated_at"`
	Signature   *string         `json:"signature"`
	DocumentURL *string         `json:"document_url"`
}

type CertificateListResponse struct {
	Count   int                   `json:"count"`
	Results []CertificateResponse `json:"results"`
}

func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:          s.ID.String(),
		StudentID:   s.StudentID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		FullName:    s.FullName(),
		Email:       s.Email,
		DateOfBirth: services.ISODatePtr(s.DateOfBirth),
		CreatedAt:   services.ISOTimestampPtr(&s.CreatedAt),
		UpdatedAt:   services.ISOTimestampPtr(&s.UpdatedAt),
	}
}

func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Duration:    c.Duration,
		CreatedAt:   services.ISOTimestampPtr(&c.CreatedAt),
		UpdatedAt:   services.ISOTimestampPtr(&c.UpdatedAt),
	}
}

func NewCertificateResponse(c *models.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:          c.ID.String(),
		Student:     NewStudentResponse(&c.Student),
		Course:      NewCourseResponse(&c.Course),
		IssueDate:   services.ISODate(c.IssueDate),
		ExpiryDate:  services.ISODatePtr(c.ExpiryDate),
		UniqueCode:  c.UniqueCode,
		Status:      c.Status,
		CreatedAt:   services.ISOTimestampPtr(&c.CreatedAt),
		UpdatedAt:   services.ISOTimestampPtr(&c.UpdatedAt),
		Signature:   c.Signature,
		DocumentURL: c.DocumentURL,
	}
}

func NewCertificateListResponse(certs []models.Certificate) CertificateListResponse {
	results := make([]CertificateResponse, 0, len(certs))
	for i := range certs {
		results = append(results, NewCertificateResponse(&certs[i]))
	}
	return CertificateListResponse{Count: len(results), Results: results}
}
