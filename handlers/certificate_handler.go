package handlers

import (
	"fmt"

	"github.com/anjiri1684/certificate_validation/services"
	"github.com/gofiber/fiber/v2"
)

type CertificateHandler struct {
	certificates *services.CertificateService
	documents    *services.DocumentService
}

// NewCertificateHandler serves the read side. documents may be nil.
func NewCertificateHandler(certificates *services.CertificateService, documents *services.DocumentService) *CertificateHandler {
	return &CertificateHandler{certificates: certificates, documents: documents}
}

func (h *CertificateHandler) ListCertificates(c *fiber.Ctx) error {
	certs, err := h.certificates.ListCertificates(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(NewCertificateListResponse(certs))
}

func (h *CertificateHandler) GetCertificate(c *fiber.Ctx) error {
	cert, err := h.certificates.GetCertificateByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(NewCertificateResponse(cert))
}

func (h *CertificateHandler) ValidateCertificate(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return Error(c, fiber.StatusBadRequest, "Query parameter 'code' is required")
	}

	result, err := h.certificates.Validate(c.UserContext(), code)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *CertificateHandler) GetDocument(c *fiber.Ctx) error {
	if h.documents == nil {
		return services.ErrRenderingDisabled
	}
	pdf, cert, err := h.documents.Render(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="certificate_%s.pdf"`, cert.UniqueCode))
	return c.Send(pdf)
}
