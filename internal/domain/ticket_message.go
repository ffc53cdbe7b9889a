package domain

// TicketMessage is one entry of a ticket conversation. Messages are kept in
// insertion order, which is also chronological. Time is a display string and
// is never parsed.
type TicketMessage struct {
	Sender string `json:"sender" yaml:"sender"`
	Time   string `json:"time" yaml:"time"`
	Text   string `json:"text" yaml:"text"`
}
