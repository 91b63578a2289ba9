package domain

import "strings"

// LabelPlaceholder is replaced by the category label in Messages.Category.
const LabelPlaceholder = "{label}"

// Messages holds every fixed text the bot can send.
type Messages struct {
	Greeting       string `json:"greeting" mapstructure:"greeting"`
	Help           string `json:"help" mapstructure:"help"`
	Reset          string `json:"reset" mapstructure:"reset"`
	UnknownCommand string `json:"unknown_command" mapstructure:"unknown_command"`
	Category       string `json:"category" mapstructure:"category"`
	Unknown        string `json:"unknown" mapstructure:"unknown"`
	SaveLabel      string `json:"save_label" mapstructure:"save_label"`
	NoSaveLabel    string `json:"nosave_label" mapstructure:"nosave_label"`
	Saved          string `json:"saved" mapstructure:"saved"`
	TextOnly       string `json:"text_only" mapstructure:"text_only"`
}

// DefaultMessages returns the built-in English texts.
func DefaultMessages() Messages {
	return Messages{
		Greeting:       "Hi! I'm a bot!",
		Help:           "Pick a question or type your own",
		Reset:          "Back to the beginning.",
		UnknownCommand: "Unknown command",
		Category:       `Category: "` + LabelPlaceholder + `"`,
		Unknown:        "Sorry, I don't know the answer to your question... Should I save it?",
		SaveLabel:      "Yes",
		NoSaveLabel:    "No",
		Saved:          "I saved your choice, thanks!",
		TextOnly:       "Sorry, I only understand text questions!",
	}
}

// WithDefaults fills every blank field from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&m.Greeting, d.Greeting)
	fill(&m.Help, d.Help)
	fill(&m.Reset, d.Reset)
	fill(&m.UnknownCommand, d.UnknownCommand)
	fill(&m.Category, d.Category)
	fill(&m.Unknown, d.Unknown)
	fill(&m.SaveLabel, d.SaveLabel)
	fill(&m.NoSaveLabel, d.NoSaveLabel)
	fill(&m.Saved, d.Saved)
	fill(&m.TextOnly, d.TextOnly)
	return m
}

// CategoryText renders the category reply for label.
func (m Messages) CategoryText(label string) string {
	return strings.ReplaceAll(m.Category, LabelPlaceholder, label)
}

// SaveChoices returns the inline buttons offered after an unknown question.
func (m Messages) SaveChoices() []Choice {
	return []Choice{
		{Label: m.SaveLabel, Data: CallbackSave},
		{Label: m.NoSaveLabel, Data: CallbackNoSave},
	}
}
