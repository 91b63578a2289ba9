package domain

// Callback data attached to the inline choices offered after an unknown question.
const (
	CallbackSave   = "save"
	CallbackNoSave = "nosave"
)

// Bot commands.
const (
	CommandStart = "start"
	CommandHelp  = "help"
	CommandReset = "reset"
)
