package handlers

import (
	"reflect"
	"strings"
	"time"

	"github.com/anjiri1684/certificate_validation/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type StudentRequest struct {
	StudentID   string  `json:"student_id" validate:"required,max=50"`
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type CourseRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" validate:"required,gte=0"`
}

type IssueCertificateRequest struct {
	StudentID  string  `json:"student_id" validate:"required,uuid"`
	CourseID   string  `json:"course_id" validate:"required,uuid"`
	IssueDate  string  `json:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	UniqueCode string  `json:"unique_code" validate:"omitempty,max=50"`
	Status     string  `json:"status" validate:"omitempty,max=20"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

type IssuanceHandler struct {
	registry *services.RegistryService
	issuance *services.IssuanceService
	validate *validator.Validate
}

func NewIssuanceHandler(registry *services.RegistryService, issuance *services.IssuanceService) *IssuanceHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &IssuanceHandler{registry: registry, issuance: issuance, validate: v}
}

// bind parses and validates the body into req. A non-nil return has
// already been written to the response.
func (h *IssuanceHandler) bind(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, Error(c, fiber.StatusBadRequest, "Cannot parse request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return false, ValidationError(c, err)
	}
	return true, nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, _ := time.Parse(time.DateOnly, *s)
	return &t
}

func (r StudentRequest) input() services.StudentInput {
	return services.StudentInput{
		StudentID:   r.StudentID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		DateOfBirth: parseDatePtr(r.DateOfBirth),
	}
}

func (r CourseRequest) input() services.CourseInput {
	return services.CourseInput{Name: r.Name, Description: r.Description, Duration: *r.Duration}
}

func (h *IssuanceHandler) CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	student, err := h.registry.CreateStudent(c.UserContext(), req.input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewStudentResponse(student))
}

func (h *IssuanceHandler) UpdateStudent(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var req StudentRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	student, err := h.registry.UpdateStudent(c.UserContext(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(NewStudentResponse(student))
}

func (h *IssuanceHandler) DeleteStudent(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid student id")
	}
	if err := h.registry.DeleteStudent(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *IssuanceHandler) CreateCourse(c *fiber.Ctx) error {
	var req CourseRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	course, err := h.registry.CreateCourse(c.UserContext(), req.input())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewCourseResponse(course))
}

func (h *IssuanceHandler) UpdateCourse(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid course id")
	}
	var req CourseRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	course, err := h.registry.UpdateCourse(c.UserContext(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(NewCourseResponse(course))
}

func (h *IssuanceHandler) DeleteCourse(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid course id")
	}
	if err := h.registry.DeleteCourse(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *IssuanceHandler) IssueCertificate(c *fiber.Ctx) error {
	var req IssueCertificateRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	issueDate, _ := time.Parse(time.DateOnly, req.IssueDate)

	cert, err := h.issuance.Issue(c.UserContext(), services.IssueCertificateInput{
		StudentID:  uuid.MustParse(req.StudentID),
		CourseID:   uuid.MustParse(req.CourseID),
		IssueDate:  issueDate,
		ExpiryDate: parseDatePtr(req.ExpiryDate),
		UniqueCode: req.UniqueCode,
		Status:     req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewCertificateResponse(cert))
}

func (h *IssuanceHandler) UpdateCertificateStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	code := c.Params("code")
	if err := h.issuance.UpdateStatus(c.UserContext(), code, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"unique_code": code, "status": strings.TrimSpace(req.Status)})
}
