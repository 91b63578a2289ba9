package domain

import "strings"

// InputKind distinguishes what the user sent.
type InputKind string

const (
	InputText        InputKind = "text"
	InputCommand     InputKind = "command"
	InputCallback    InputKind = "callback"
	InputUnsupported InputKind = "unsupported"
)

// Input is one user event as seen by the conversation engine.
type Input struct {
	Kind InputKind `json:"kind"`
	// Text is the message text, or the command name without the leading slash.
	Text string `json:"text,omitempty"`
	// Data is the payload of a pressed inline button.
	Data   string `json:"data,omitempty"`
	UserID int64  `json:"user_id,omitempty"`
}

// TextInput wraps a plain message.
func TextInput(text string) Input {
	return Input{Kind: InputText, Text: text}
}

// CommandInput wraps a command name such as "start".
func CommandInput(name string) Input {
	return Input{Kind: InputCommand, Text: name}
}

// CallbackInput wraps the data of a pressed inline button.
func CallbackInput(data string) Input {
	return Input{Kind: InputCallback, Data: data}
}

// ParseInput classifies a raw line. A leading slash makes it a command; a
// "@botname" suffix on the command word is dropped.
func ParseInput(line string) Input {
	if !strings.HasPrefix(line, "/") || len(line) == 1 {
		return TextInput(line)
	}

	name := strings.Fields(line[1:])
	if len(name) == 0 {
		return TextInput(line)
	}
	cmd, _, _ := strings.Cut(name[0], "@")
	return CommandInput(strings.ToLower(cmd))
}
