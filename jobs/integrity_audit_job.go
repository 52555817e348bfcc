package jobs

import (
	"context"
	"time"

	"github.com/anjiri1684/certificate_validation/models"
	"github.com/anjiri1684/certificate_validation/services"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type CertificateLister interface {
	ListCertificates(ctx context.Context) ([]models.Certificate, error)
}

type AuditSummary struct {
	Checked    int `json:"checked"`
	Mismatched int `json:"mismatched"`
}

// IntegrityAudit re-verifies every stored signature. It never rewrites one.
type IntegrityAudit struct {
	store   CertificateLister
	signer  *services.Signer
	events  services.EventPublisher
	logger  *zap.Logger
	timeout time.Duration
}

func NewIntegrityAudit(store CertificateLister, signer *services.Signer, events services.EventPublisher, logger *zap.Logger) *IntegrityAudit {
	if events == nil {
		events = nopEvents{}
	}
	return &IntegrityAudit{
		store:   store,
		signer:  signer,
		events:  events,
		logger:  logger.Named("integrity_audit"),
		timeout: 5 * time.Minute,
	}
}

func (a *IntegrityAudit) Run(ctx context.Context) (AuditSummary, error) {
	var summary AuditSummary

	certs, err := a.store.ListCertificates(ctx)
	if err != nil {
		return summary, errors.Wrap(err, "listing certificates for audit")
	}

	for i := range certs {
		cert := &certs[i]
		summary.Checked++
		mismatch := a.signer.Check(cert)
		if mismatch == nil {
			continue
		}

		summary.Mismatched++
		a.logger.Warn("signature mismatch",
			zap.String("unique_code", cert.UniqueCode),
			zap.Error(mismatch),
		)
		valid := false
		a.events.Publish(services.Event{
			Type:       services.EventIntegrityMismatch,
			UniqueCode: cert.UniqueCode,
			Valid:      &valid,
			Message:    mismatch.Error(),
			At:         time.Now().UTC(),
		})
	}

	a.logger.Info("integrity audit finished",
		zap.Int("checked", summary.Checked),
		zap.Int("mismatched", summary.Mismatched),
	)
	return summary, nil
}

// Schedule registers the audit on c. An empty schedule disables it.
func (a *IntegrityAudit) Schedule(c *cron.Cron, schedule string) error {
	if schedule == "" {
		a.logger.Info("integrity audit disabled")
		return nil
	}
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if _, err := a.Run(ctx); err != nil {
			a.logger.Error("integrity audit failed", zap.Error(err))
		}
	})
	if err != nil {
		return errors.Wrapf(err, "invalid audit schedule %q", schedule)
	}
	a.logger.Info("✅ integrity audit scheduled", zap.String("schedule", schedule))
	return nil
}

type nopEvents struct{}

func (nopEvents) Publish(services.Event) {}
