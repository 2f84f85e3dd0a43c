package enum

// 购票拒绝原因，直接透传给调用方
type DenyReason string

const (
	DenyAccountNotConfirmed DenyReason = "account-not-confirmed"
	DenyTicketAlreadyExists DenyReason = "ticket-already-exists"
	DenyOwnershipMismatch   DenyReason = "ownership-mismatch"
	DenyPaymentNotCompleted DenyReason = "payment-not-completed"
)

func (r DenyReason) String() string {
	return string(r)
}

// 对应的提示信息
func (r DenyReason) Message() string {
	switch r {
	case DenyAccountNotConfirmed:
		return "Your account must be confirmed to purchase tickets"
	case DenyTicketAlreadyExists:
		return "Season ticket already exists for this year"
	case DenyOwnershipMismatch:
		return "Payment does not belong to this user"
	case DenyPaymentNotCompleted:
		return "Payment not completed successfully"
	default:
		return "Purchase not allowed"
	}
}
