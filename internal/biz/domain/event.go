package domain

// Event represents one inbound Telegram message, reduced to the fields the
// relay cares about.
type Event struct {
	ChatID    int64
	MessageID int
	SenderID  int64 // 0 when the platform reports no user sender
	Text      string
	Service   bool // service/system notification (join, pin, ...)
	Out       bool // sent by the logged-in account itself
}
