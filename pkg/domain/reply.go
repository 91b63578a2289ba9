package domain

// ReplyKind tells transports and metrics what kind of answer was produced.
type ReplyKind string

const (
	ReplyAnswer      ReplyKind = "answer"
	ReplyCategory    ReplyKind = "category"
	ReplyUnknown     ReplyKind = "unknown"
	ReplyCommand     ReplyKind = "command"
	ReplyNotice      ReplyKind = "notice"
	ReplyUnsupported ReplyKind = "unsupported"
)

// Choice is an inline button attached to a single reply.
type Choice struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reply is what the bot sends back for one Input.
type Reply struct {
	Kind ReplyKind `json:"kind"`
	Text string    `json:"text"`

	// Keyboard lists the reply keyboard buttons, one per row.
	Keyboard []string `json:"keyboard,omitempty"`

	// Choices replaces the reply keyboard for this message only.
	Choices []Choice `json:"choices,omitempty"`

	// ClearChoices asks the transport to remove the inline buttons from the
	// message the callback came from.
	ClearChoices bool `json:"clear_choices,omitempty"`
}
