/*
Package ports defines the driven ports (interfaces) for the deeds engine.

These interfaces decouple the conversation logic from external implementations,
allowing the bot to work with various document sources and storage backends.

# Key Interfaces

  - DocumentSource: Provides the raw Q&A document (file, memory).
  - SessionStore: Persists per-chat Session snapshots.
  - QuestionStore: Keeps the unanswered questions users chose to submit.
  - DistributedLocker: Serializes access to a session across replicas.
  - Bot: What transports (terminal, HTTP, Telegram, MCP) talk to.
*/
package ports
