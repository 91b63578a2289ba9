package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/deeds/internal/logging"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultTimeout is the long polling timeout in seconds.
const DefaultTimeout = 60

// API is the subset of *tgbotapi.BotAPI the adapter uses.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot relays Telegram updates to a ports.Bot.
type Bot struct {
	api      API
	bot      ports.Bot
	logger   *slog.Logger
	timeout  int
	commands []tgbotapi.BotCommand
}

// Option configures the Bot.
type Option func(*Bot)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTimeout sets the long polling timeout in seconds.
func WithTimeout(seconds int) Option {
	return func(b *Bot) {
		if seconds > 0 {
			b.timeout = seconds
		}
	}
}

// WithCommands replaces the command menu registered on Run.
func WithCommands(commands ...tgbotapi.BotCommand) Option {
	return func(b *Bot) {
		b.commands = commands
	}
}

// DefaultCommands is the menu registered unless WithCommands is given.
func DefaultCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: domain.CommandStart, Description: "Start"},
		{Command: domain.CommandReset, Description: "Back to the beginning"},
		{Command: domain.CommandHelp, Description: "Help"},
	}
}

// New connects to the Bot API with token.
func New(token string, bot ports.Bot, opts ...Option) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram token is required")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	return NewFromAPI(api, bot, opts...), nil
}

// NewFromAPI wraps an existing API client.
func NewFromAPI(api API, bot ports.Bot, opts ...Option) *Bot {
	b := &Bot{
		api:      api,
		bot:      bot,
		logger:   logging.NewNop(),
		timeout:  DefaultTimeout,
		commands: DefaultCommands(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SessionID is the session key of a chat.
func SessionID(chatID int64) string {
	return "telegram:" + strconv.FormatInt(chatID, 10)
}

// Run registers the command menu and handles updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if len(b.commands) > 0 {
		if _, err := b.api.Request(tgbotapi.NewSetMyCommands(b.commands...)); err != nil {
			b.logger.Warn("failed to register commands", "err", err)
		}
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram long polling started", "timeout", b.timeout)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.HandleUpdate(ctx, update); err != nil {
				b.logger.Error("failed to handle update", "update_id", update.UpdateID, "err", err)
			}
		}
	}
}

// HandleUpdate answers one update. Updates other than messages and callback
// queries are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.Message != nil:
		return b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil {
		return nil
	}
	in := messageInput(msg)

	reply, err := b.bot.Reply(ctx, SessionID(msg.Chat.ID), in)
	if err != nil {
		return fmt.Errorf("failed to reply to chat %d: %w", msg.Chat.ID, err)
	}
	if _, err := b.api.Send(render(msg.Chat.ID, reply)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func messageInput(msg *tgbotapi.Message) domain.Input {
	var in domain.Input
	switch {
	case msg.IsCommand():
		in = domain.CommandInput(strings.ToLower(msg.Command()))
	case msg.Text != "":
		in = domain.TextInput(msg.Text)
	default:
		in = domain.Input{Kind: domain.InputUnsupported}
	}
	if msg.From != nil {
		in.UserID = msg.From.ID
	}
	return in
}

// handleCallback answers an inline button press with a toast and removes the
// inline keyboard when the reply asks for it.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if cq.Message == nil || cq.Message.Chat == nil {
		_, err := b.api.Request(tgbotapi.NewCallback(cq.ID, ""))
		return err
	}
	chatID := cq.Message.Chat.ID

	in := domain.CallbackInput(cq.Data)
	if cq.From != nil {
		in.UserID = cq.From.ID
	}

	reply, err := b.bot.Reply(ctx, SessionID(chatID), in)
	if err != nil {
		if _, aerr := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); aerr != nil {
			b.logger.Warn("failed to answer callback", "err", aerr)
		}
		return fmt.Errorf("failed to handle callback %q: %w", cq.Data, err)
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, reply.Text)); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	if reply.ClearChoices {
		markup := tgbotapi.NewEditMessageReplyMarkup(chatID, cq.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
		})
		if _, err := b.api.Request(markup); err != nil {
			return fmt.Errorf("failed to clear inline keyboard: %w", err)
		}
	}
	return nil
}

// render builds the outgoing message. Telegram takes a single markup per
// message, so inline choices win over the reply keyboard.
func render(chatID int64, reply domain.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, reply.Text)

	switch {
	case len(reply.Choices) > 0:
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(reply.Choices))
		for _, c := range reply.Choices {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Data))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	case len(reply.Keyboard) > 0:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(reply.Keyboard))
		for _, label := range reply.Keyboard {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
		}
		msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(rows...)
	}
	return msg
}
