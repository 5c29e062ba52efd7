package payment

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"francoggm/paygate-go-redis/internal/app/ledger"
	"francoggm/paygate-go-redis/internal/models"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"
)

type downLedger struct {
	*ledger.MemoryLedger
}

func (downLedger) Get(context.Context, models.CorrelationID) (models.Status, error) {
	return models.StatusUnknown, errors.Join(ledger.ErrUnavailable, errors.New("dial tcp: refused"))
}

func newTestService(t *testing.T, l ledger.Ledger) *PaymentService {
	t.Helper()
	svc, err := NewPaymentService(l, "https://buy.stripe.com/test_abc?prefilled_email=a%40b.c", nil)
	require.NoError(t, err)
	return svc
}

func TestNewPaymentServiceRejectsRelativeLink(t *testing.T) {
	_, err := NewPaymentService(ledger.NewMemory(), "/checkout", nil)
	require.Error(t, err)
}

func TestPaymentLinkEmbedsEscapedCorrelationID(t *testing.T) {
	svc := newTestService(t, ledger.NewMemory())

	link := svc.PaymentLink(context.Background(), "conv 1&x=y")
	require.NotEmpty(t, link.Message)

	parsed, err := url.Parse(link.URL)
	require.NoError(t, err)
	require.Equal(t, "buy.stripe.com", parsed.Host)
	require.Equal(t, "/test_abc", parsed.Path)
	require.Equal(t, "conv 1&x=y", parsed.Query().Get("client_reference_id"))
	require.Equal(t, "a@b.c", parsed.Query().Get("prefilled_email"))
	require.Empty(t, parsed.Query().Get("x"))
}

func TestHasPaid(t *testing.T) {
	store := ledger.NewMemory()
	svc := newTestService(t, store)
	ctx := context.Background()

	paid, err := svc.HasPaid(ctx, "never-seen")
	require.NoError(t, err)
	require.False(t, paid)

	require.NoError(t, store.Set(ctx, "conv-failed", models.StatusFailed))
	paid, err = svc.HasPaid(ctx, "conv-failed")
	require.NoError(t, err)
	require.False(t, paid)

	require.NoError(t, store.Set(ctx, "conv-123", models.StatusPaid))
	paid, err = svc.HasPaid(ctx, "conv-123")
	require.NoError(t, err)
	require.True(t, paid)
}

func TestHasPaidSurfacesOutage(t *testing.T) {
	svc := newTestService(t, downLedger{MemoryLedger: ledger.NewMemory()})

	paid, err := svc.HasPaid(context.Background(), "conv-123")
	require.Error(t, err)
	require.False(t, paid)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	require.Equal(t, goerrors.CategoryExternal, rich.Category)
	require.Equal(t, 503, rich.Code)
	require.Equal(t, ledger.TextCodeUnavailable, rich.TextCode)
}
