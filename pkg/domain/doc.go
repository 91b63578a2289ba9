/*
Package domain contains the conversation model of the deeds bot.

It holds the values exchanged between the transports and the conversation engine and
is kept free of I/O and persistence concerns.

# Key Entities

  - Session: Per-chat snapshot (current keyboard, pending question).
  - Input: What the user sent (text, command, button press).
  - Reply: What the bot answers (text, reply keyboard, inline choices).
  - Question: An unanswered question the user chose to submit.
  - Messages: The fixed texts the bot replies with.
  - Hooks: Callbacks for observability.
*/
package domain
