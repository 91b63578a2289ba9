package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/runner"
	"github.com/aretw0/deeds/pkg/tree"
)

// handleText resolves a typed or pressed label against the tree:
//
//   - a question with exactly one answer child gets the answer and the root keyboard;
//   - any other label with children becomes the current category;
//   - a known label without children (an answer, an empty category) gets the
//     category reply and the root keyboard;
//   - an unknown label gets the "don't know" reply with the save choices and is
//     remembered as the pending question;
//   - text over the input limit matches no label and gets the "don't know" reply
//     without the save choices.
func (e *Engine) handleText(nav *tree.Navigator, s *domain.Session, raw string) (domain.Reply, error) {
	text, err := runner.SanitizeInput(raw)
	if errors.Is(err, runner.ErrInputTooLarge) {
		e.logger.Warn("text input over limit", "session_id", s.ID, "err", err)
		s.Category = ""
		s.PendingQuestion = ""
		return domain.Reply{
			Kind:     domain.ReplyUnknown,
			Text:     e.messages.Unknown,
			Keyboard: e.keyboard(nav, s),
		}, nil
	}
	if err != nil || text == "" {
		e.logger.Debug("rejected text input", "session_id", s.ID, "err", err)
		return e.unsupported(nav, s), nil
	}

	children, err := nav.Children(text)
	if errors.Is(err, tree.ErrUnknownLabel) {
		s.Category = ""
		s.PendingQuestion = text
		return domain.Reply{
			Kind:     domain.ReplyUnknown,
			Text:     e.messages.Unknown,
			Keyboard: e.keyboard(nav, s),
			Choices:  e.messages.SaveChoices(),
		}, nil
	}
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to look up %q: %w", text, err)
	}

	s.PendingQuestion = ""

	if len(children) == 1 {
		bearing, err := nav.IsAnswerBearing(text)
		if err != nil {
			return domain.Reply{}, fmt.Errorf("failed to classify %q: %w", text, err)
		}
		if bearing {
			s.Category = ""
			return domain.Reply{
				Kind:     domain.ReplyAnswer,
				Text:     children[0],
				Keyboard: e.keyboard(nav, s),
			}, nil
		}
	}

	if len(children) > 0 {
		s.Category = text
		return domain.Reply{
			Kind:     domain.ReplyCategory,
			Text:     e.messages.CategoryText(text),
			Keyboard: children,
		}, nil
	}

	s.Category = ""
	return domain.Reply{
		Kind:     domain.ReplyCategory,
		Text:     e.messages.CategoryText(text),
		Keyboard: e.keyboard(nav, s),
	}, nil
}

// handleCallback applies the user's decision about the pending question.
func (e *Engine) handleCallback(ctx context.Context, nav *tree.Navigator, s *domain.Session, data string) (domain.Reply, error) {
	switch data {
	case "":
		return domain.Reply{}, domain.ErrEmptyCallback
	case domain.CallbackSave:
		if s.PendingQuestion != "" {
			q := domain.Question{
				SessionID: s.ID,
				UserID:    s.UserID,
				Text:      s.PendingQuestion,
				CreatedAt: e.now().UTC(),
			}
			id, err := e.questions.Save(ctx, q)
			if err != nil {
				return domain.Reply{}, fmt.Errorf("failed to save question: %w", err)
			}
			q.ID = id
			e.logger.Info("question saved", "session_id", s.ID, "question_id", id)
			if e.hooks.OnQuestionSaved != nil {
				e.hooks.OnQuestionSaved(ctx, &domain.QuestionEvent{Timestamp: e.now(), Question: q})
			}
		}
	case domain.CallbackNoSave:
	default:
		return domain.Reply{}, fmt.Errorf("%w: %q", domain.ErrUnknownCallback, data)
	}

	s.PendingQuestion = ""
	return domain.Reply{
		Kind:         domain.ReplyNotice,
		Text:         e.messages.Saved,
		Keyboard:     e.keyboard(nav, s),
		ClearChoices: true,
	}, nil
}
