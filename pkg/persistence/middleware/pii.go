package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

type piiMiddleware struct {
	next     ports.QuestionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the parts of saved question
// texts matching any of the patterns (emails, phone numbers, ...).
func NewPIIMiddleware(patternStrings []string) (QuestionMiddleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.QuestionStore) ports.QuestionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, q domain.Question) (int64, error) {
	q.Text = m.mask(q.Text)
	return m.next.Save(ctx, q)
}

func (m *piiMiddleware) List(ctx context.Context) ([]domain.Question, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) Count(ctx context.Context) (int, error) {
	return m.next.Count(ctx)
}

func (m *piiMiddleware) mask(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}
