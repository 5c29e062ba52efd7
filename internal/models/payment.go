package models

import "errors"

var ErrMissingCorrelationID = errors.New("correlation id is required")

// CorrelationID links a payment link issuance to the webhook that confirms it.
// It comes from the client and is echoed back by the provider, so its content
// is never interpreted.
type CorrelationID string

func ParseCorrelationID(raw string) (CorrelationID, error) {
	if raw == "" {
		return "", ErrMissingCorrelationID
	}

	return CorrelationID(raw), nil
}

func (c CorrelationID) String() string {
	return string(c)
}

type Status string

const (
	StatusUnknown Status = "unknown"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// ParseStatus maps a stored value back to a Status. Anything unrecognised reads
// as unknown so a corrupt record can never report paid.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusPaid, StatusFailed:
		return Status(raw)
	}

	return StatusUnknown
}

func (s Status) IsPaid() bool {
	return s == StatusPaid
}

func (s Status) String() string {
	return string(s)
}

type PaymentLink struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

type PaymentStatus struct {
	Paid bool `json:"paid"`
}
