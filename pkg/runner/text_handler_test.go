package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/deeds/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	err := handler.Output(context.Background(), domain.Reply{
		Kind:     domain.ReplyAnswer,
		Text:     "Visa and Mastercard.",
		Keyboard: []string{"Payments", "Delivery"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rendered: Visa and Mastercard.\n  [1] Payments\n  [2] Delivery\n", outBuf.String())
}

func TestTextHandler_RendererOnlyForAnswers(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	err := handler.Output(context.Background(), domain.Reply{
		Kind:    domain.ReplyUnknown,
		Text:    "Should I save it?",
		Choices: []domain.Choice{{Label: "Yes", Data: "save"}, {Label: "No", Data: "nosave"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Should I save it?\n  [1] Yes\n  [2] No\n", outBuf.String())
}

func TestTextHandler_Input(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("Payments\r\nlast line"), outBuf)
	ctx := context.Background()

	line, err := handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Payments", line)

	line, err = handler.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "last line", line)

	_, err = handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, outBuf.String(), "> ")
}

func TestTextHandler_InputCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	handler := NewTextHandler(pr, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
