/*
Package runner implements the terminal transport: a line-based chat loop over any ports.Bot.

Replies are printed with their buttons numbered; typing a number presses the button,
anything else is sent as text (or as a command when it starts with a slash). "exit" and
"quit" end the conversation, as do Ctrl+C and the end of input.

The package also holds the input sanitizer shared by every transport.

# Usage

	eng, err := deeds.New("faq.yaml")
	if err != nil {
		log.Fatal(err)
	}

	r := runner.NewRunner(runner.WithSessionID("local"))
	if err := r.Run(ctx, eng); err != nil {
		log.Fatal(err)
	}
*/
package runner
