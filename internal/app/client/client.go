// Package client talks to a running paygate server. It backs the paygatectl
// command.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"francoggm/paygate-go-redis/internal/models"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout           = 10 * time.Second
	DefaultCorrelationHeader = "openai-conversation-id"
	signatureHeader          = "Stripe-Signature"
)

// StatusError is returned for any non-200 answer. Detail and Code come from
// the server's error body when it has one.
type StatusError struct {
	StatusCode int
	Detail     string
	Code       string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("paygate: status %d: %s (%s)", e.StatusCode, e.Detail, e.Code)
	}
	return fmt.Sprintf("paygate: status %d", e.StatusCode)
}

type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

type PaygateClient struct {
	url               string
	timeout           time.Duration
	correlationHeader string
	client            *fasthttp.Client
}

func NewPaygateClient(url string, timeout time.Duration, correlationHeader string) *PaygateClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if correlationHeader == "" {
		correlationHeader = DefaultCorrelationHeader
	}

	return &PaygateClient{
		url:               strings.TrimRight(url, "/"),
		timeout:           timeout,
		correlationHeader: correlationHeader,
		client:            &fasthttp.Client{},
	}
}

// SendEvent posts a signed webhook body exactly as given.
func (c *PaygateClient) SendEvent(ctx context.Context, payload []byte, signature string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.url + "/webhook/stripe")
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(signatureHeader, signature)
	req.SetBody(payload)

	if err := c.do(ctx, req, resp); err != nil {
		return fmt.Errorf("failed to send webhook event: %w", err)
	}

	return checkStatus(resp)
}

func (c *PaygateClient) HasPaid(ctx context.Context, id models.CorrelationID) (bool, error) {
	var status models.PaymentStatus
	if err := c.get(ctx, "/hasUserPaid", id, &status); err != nil {
		return false, err
	}

	return status.Paid, nil
}

func (c *PaygateClient) PaymentLink(ctx context.Context, id models.CorrelationID) (models.PaymentLink, error) {
	var link models.PaymentLink
	if err := c.get(ctx, "/getPaymentURL", id, &link); err != nil {
		return models.PaymentLink{}, err
	}

	return link, nil
}

func (c *PaygateClient) get(ctx context.Context, path string, id models.CorrelationID, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(c.url + path)
	req.Header.SetMethod(http.MethodGet)
	req.Header.Set(c.correlationHeader, id.String())

	if err := c.do(ctx, req, resp); err != nil {
		return fmt.Errorf("failed to request %s: %w", path, err)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return nil
}

// do bounds the call by the client timeout or the context deadline,
// whichever is sooner.
func (c *PaygateClient) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	return c.client.DoTimeout(req, resp, timeout)
}

func checkStatus(resp *fasthttp.Response) error {
	statusCode := resp.StatusCode()
	if statusCode == http.StatusOK {
		return nil
	}

	statusErr := &StatusError{StatusCode: statusCode}
	var body errorBody
	if err := sonic.Unmarshal(resp.Body(), &body); err == nil {
		statusErr.Detail = body.Detail
		statusErr.Code = body.Code
	}

	return statusErr
}
