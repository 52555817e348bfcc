package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/anjiri1684/certificate_validation/apperrors"
	"github.com/anjiri1684/certificate_validation/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

//go:embed templates/certificate.html
var templateFS embed.FS

const archiveFolder = "certificates"

var ErrRenderingDisabled = apperrors.NotFound("certificate document rendering is not enabled")

// Renderer turns a certificate into a printable document.
type Renderer interface {
	RenderPDF(ctx context.Context, cert *models.Certificate) ([]byte, error)
}

// Archiver stores rendered bytes and returns a public URL.
type Archiver interface {
	Archive(ctx context.Context, data []byte, publicID string) (string, error)
}

type certificateView struct {
	StudentName string
	CourseName  string
	Duration    int
	IssueDate   string
	ExpiryDate  string
	UniqueCode  string
	Signature   string
}

// ChromeRenderer prints the embedded HTML template to PDF in headless Chrome.
type ChromeRenderer struct {
	tmpl *template.Template
}

func NewChromeRenderer() (*ChromeRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/certificate.html")
	if err != nil {
		return nil, err
	}
	return &ChromeRenderer{tmpl: tmpl}, nil
}

func (r *ChromeRenderer) RenderHTML(cert *models.Certificate) (string, error) {
	view := certificateView{
		StudentName: cert.Student.FullName(),
		CourseName:  cert.Course.Name,
		Duration:    cert.Course.Duration,
		IssueDate:   ISODate(cert.IssueDate),
		UniqueCode:  cert.UniqueCode,
	}
	if exp := ISODatePtr(cert.ExpiryDate); exp != nil {
		view.ExpiryDate = *exp
	}
	if cert.Signature != nil {
		view.Signature = *cert.Signature
	}

	var rendered bytes.Buffer
	if err := r.tmpl.Execute(&rendered, view); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func (r *ChromeRenderer) RenderPDF(ctx context.Context, cert *models.Certificate) ([]byte, error) {
	htmlContent, err := r.RenderHTML(cert)
	if err != nil {
		return nil, err
	}

	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).WithLandscape(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

type CloudinaryArchiver struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryArchiver(url string) (*CloudinaryArchiver, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &CloudinaryArchiver{cld: cld, folder: archiveFolder}, nil
}

func (a *CloudinaryArchiver) Archive(ctx context.Context, data []byte, publicID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := a.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       a.folder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// DocumentService renders certificates on demand and archives them after
// issuance. Either collaborator may be nil.
type DocumentService struct {
	store    CertificateStore
	renderer Renderer
	archiver Archiver
	logger   *zap.Logger
}

func NewDocumentService(store CertificateStore, renderer Renderer, archiver Archiver, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		store:    store,
		renderer: renderer,
		archiver: archiver,
		logger:   logger.Named("documentService"),
	}
}

func (d *DocumentService) CanRender() bool {
	return d != nil && d.renderer != nil
}

func (d *DocumentService) CanArchive() bool {
	return d.CanRender() && d.archiver != nil
}

// Render looks the certificate up by code and prints it.
func (d *DocumentService) Render(ctx context.Context, code string) ([]byte, *models.Certificate, error) {
	if !d.CanRender() {
		return nil, nil, ErrRenderingDisabled
	}
	cert, err := d.store.GetCertificateByUniqueCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := d.renderer.RenderPDF(ctx, cert)
	if err != nil {
		return nil, nil, err
	}
	return pdf, cert, nil
}

// Archive prints cert, uploads it and records the URL on the row.
func (d *DocumentService) Archive(ctx context.Context, cert *models.Certificate) (string, error) {
	if !d.CanArchive() {
		return "", ErrRenderingDisabled
	}
	pdf, err := d.renderer.RenderPDF(ctx, cert)
	if err != nil {
		return "", err
	}
	url, err := d.archiver.Archive(ctx, pdf, fmt.Sprintf("%s_%s", cert.UniqueCode, cert.ID))
	if err != nil {
		return "", err
	}
	if err := d.store.SetDocumentURL(ctx, cert.ID, url); err != nil {
		return "", err
	}
	d.logger.Info("✅ certificate document archived", zap.String("unique_code", cert.UniqueCode), zap.String("url", url))
	return url, nil
}
