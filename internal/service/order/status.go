package order

import "flowershop/internal/domain"

// The storefront and admin console speak a four-label Korean vocabulary;
// the database stores a five-value English enum. Cancelled and anything
// unrecognized render as 주문접수, and an unrecognized label writes back as
// pending, matching how the shop has always displayed them.
const (
	LabelReceived  = "주문접수"
	LabelPreparing = "배송준비"
	LabelShipping  = "배송중"
	LabelDelivered = "배송완료"
)

// LabelForStatus maps a stored status to its Korean display label.
func LabelForStatus(status string) string {
	switch status {
	case domain.OrderProcessing:
		return LabelPreparing
	case domain.OrderShipped:
		return LabelShipping
	case domain.OrderDelivered:
		return LabelDelivered
	default:
		return LabelReceived
	}
}

// StatusForLabel maps a Korean display label to the stored status.
func StatusForLabel(label string) string {
	switch label {
	case LabelPreparing:
		return domain.OrderProcessing
	case LabelShipping:
		return domain.OrderShipped
	case LabelDelivered:
		return domain.OrderDelivered
	default:
		return domain.OrderPending
	}
}
