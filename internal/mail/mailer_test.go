package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogMailer_LogsCode(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	if err := m.SendVerificationCode(context.Background(), "a@example.com", "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"to":"a@example.com"`) || !strings.Contains(out, `"code":"123456"`) {
		t.Fatalf("expected address and code in log, got %s", out)
	}
}
