package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"francoggm/paygate-go-redis/internal/app/ledger"
	"francoggm/paygate-go-redis/internal/models"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	linkMessage         = "Please click the link to proceed with your payment. Type 'continue' once done."
	referenceQueryParam = "client_reference_id"
)

// PaymentService is the read side of the ledger plus payment link issuance.
// It never writes a status.
type PaymentService struct {
	ledger      ledger.Ledger
	paymentLink *url.URL
	logger      glog.Logger
}

func NewPaymentService(l ledger.Ledger, paymentLink string, logger glog.Logger) (*PaymentService, error) {
	link, err := url.Parse(paymentLink)
	if err != nil {
		return nil, fmt.Errorf("payment: parse payment link: %w", err)
	}
	if link.Scheme == "" || link.Host == "" {
		return nil, fmt.Errorf("payment: payment link %q is not absolute", paymentLink)
	}

	return &PaymentService{
		ledger:      l,
		paymentLink: link,
		logger:      glog.Ensure(logger),
	}, nil
}

// PaymentLink returns the hosted checkout URL carrying id as the reference
// the provider echoes back in its webhook.
func (s *PaymentService) PaymentLink(ctx context.Context, id models.CorrelationID) models.PaymentLink {
	link := *s.paymentLink
	query := link.Query()
	query.Set(referenceQueryParam, id.String())
	link.RawQuery = query.Encode()

	s.logger.WithContext(ctx).Info("payment link issued", "correlation_id", id)

	return models.PaymentLink{
		Message: linkMessage,
		URL:     link.String(),
	}
}

func (s *PaymentService) Status(ctx context.Context, id models.CorrelationID) (models.Status, error) {
	status, err := s.ledger.Get(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to read payment status", "correlation_id", id, "error", err)
		return models.StatusUnknown, statusError(err)
	}

	return status, nil
}

// HasPaid reports false for ids the ledger has never seen. An unreachable
// ledger is an error, never a false.
func (s *PaymentService) HasPaid(ctx context.Context, id models.CorrelationID) (bool, error) {
	status, err := s.Status(ctx, id)
	if err != nil {
		return false, err
	}

	s.logger.WithContext(ctx).Debug("payment status checked", "correlation_id", id, "status", status)
	return status.IsPaid(), nil
}

func statusError(source error) error {
	if errors.Is(source, ledger.ErrUnavailable) {
		return goerrors.Wrap(source, goerrors.CategoryExternal, "payment status store is unavailable").
			WithCode(http.StatusServiceUnavailable).
			WithTextCode(ledger.TextCodeUnavailable)
	}

	return goerrors.Wrap(source, goerrors.CategoryInternal, "failed to read payment status").
		WithCode(http.StatusInternalServerError).
		WithTextCode("INTERNAL_ERROR")
}
