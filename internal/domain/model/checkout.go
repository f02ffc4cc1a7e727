package model

// CheckoutMetadata is the correlation contract attached verbatim to a gateway
// checkout session at creation and read back during verification, so the
// activator can recover context without a second catalog lookup.
type CheckoutMetadata struct {
	StoryID    string
	UserID     string
	StoryTitle string
}

func (m CheckoutMetadata) IsComplete() bool {
	return m.StoryID != "" && m.UserID != ""
}

// CheckoutPaymentStatus mirrors the gateway's view of a session's payment.
type CheckoutPaymentStatus string

const (
	CheckoutPaymentStatusPaid   CheckoutPaymentStatus = "paid"
	CheckoutPaymentStatusUnpaid CheckoutPaymentStatus = "unpaid"
)

// CheckoutSession is the gateway-owned ephemeral payment record. It is never
// persisted locally; its lifetime is bounded by the gateway's expiry policy.
type CheckoutSession struct {
	ID              string
	PaymentStatus   CheckoutPaymentStatus
	Metadata        CheckoutMetadata
	AmountTotal     int64 // minor units
	PaymentIntentID string
	RedirectURL     string
}

func (s *CheckoutSession) Paid() bool {
	return s != nil && s.PaymentStatus == CheckoutPaymentStatusPaid
}
