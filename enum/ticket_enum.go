package enum

type TicketType string

// 赛季票类型
const (
	TicketTypeRegular TicketType = "regular"
	TicketTypeVip     TicketType = "vip"
	TicketTypeStudent TicketType = "student"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketTypeRegular, TicketTypeVip, TicketTypeStudent:
		return true
	}
	return false
}

func (t TicketType) String() string {
	return string(t)
}
