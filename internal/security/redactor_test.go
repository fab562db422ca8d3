package security

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactBotToken(t *testing.T) {
	r := NewRedactor()

	in := "telegram: sendMessage failed for bot 123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"
	out := r.Redact(in)

	if strings.Contains(out, "AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw") {
		t.Errorf("token survived redaction: %q", out)
	}
	if !strings.Contains(out, RedactPlaceholder) {
		t.Errorf("placeholder missing: %q", out)
	}
}

func TestRedactLeavesShortRatiosAlone(t *testing.T) {
	r := NewRedactor()

	in := "completed at 12:30 with ratio 100:1"
	if out := r.Redact(in); out != in {
		t.Errorf("Redact(%q) = %q, want unchanged", in, out)
	}
}

func TestRedactLiteral(t *testing.T) {
	r := NewRedactor()
	r.AddLiteral("s3cret-value")

	out := r.Redact("credential is s3cret-value here")
	if strings.Contains(out, "s3cret-value") {
		t.Errorf("literal survived redaction: %q", out)
	}
}

func TestRedactEmptyLiteralIgnored(t *testing.T) {
	r := NewRedactor()
	r.AddLiteral("")

	if out := r.Redact("plain text"); out != "plain text" {
		t.Errorf("Redact = %q, want unchanged", out)
	}
}

func TestRedactingHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, nil)
	logger := slog.New(NewRedactingHandler(inner, NewRedactor()))

	token := "987654321:ZZHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"
	logger.Error("send failed",
		"error", errors.New("telegram: post https://api.telegram.org/bot"+token+"/sendMessage: refused"),
		"project_id", "p1")

	out := buf.String()
	if strings.Contains(out, token) {
		t.Errorf("token leaked into log output: %s", out)
	}
	if !strings.Contains(out, RedactPlaceholder) {
		t.Errorf("placeholder missing from log output: %s", out)
	}
	if !strings.Contains(out, "project_id=p1") {
		t.Errorf("non-secret attribute mangled: %s", out)
	}
}

func TestRedactingHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, nil)
	logger := slog.New(NewRedactingHandler(inner, NewRedactor()))

	logger = logger.With("bot", "11111111:AAAAAAAAAAAAAAAAAAAAAAAA")
	logger.Info("ready")

	if strings.Contains(buf.String(), "AAAAAAAAAAAAAAAAAAAAAAAA") {
		t.Errorf("token in pre-resolved attrs leaked: %s", buf.String())
	}
}
