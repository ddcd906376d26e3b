package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/Masterminds/sprig/v3"
)

func renderTemplate(t *testing.T, name string, data map[string]interface{}) string {
	t.Helper()

	tmpl := template.New("mail").Funcs(sprig.FuncMap())
	for n, body := range builtinTemplates {
		if _, err := tmpl.New(n).Parse(body); err != nil {
			t.Fatalf("parse template %s: %v", n, err)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		t.Fatalf("execute template %s: %v", name, err)
	}
	return buf.String()
}

func TestVerifyEmailTemplate(t *testing.T) {
	out := renderTemplate(t, TemplateVerifyEmail, map[string]interface{}{
		"Name":      "dana",
		"ActionURL": "https://aegis.example/verify?token=abc123",
		"Token":     "abc123",
		"TTL":       "24 hours",
	})

	if !strings.Contains(out, "Dana") {
		t.Error("template should title-case the recipient name")
	}
	if !strings.Contains(out, "https://aegis.example/verify?token=abc123") {
		t.Error("template missing action URL")
	}
	if !strings.Contains(out, "24 hours") {
		t.Error("template missing TTL")
	}
}

func TestResetPasswordTemplate(t *testing.T) {
	out := renderTemplate(t, TemplateResetPassword, map[string]interface{}{
		"Name":      "sam",
		"ActionURL": "https://aegis.example/reset?token=xyz",
		"Token":     "xyz",
		"TTL":       "10 minutes",
	})

	if !strings.Contains(out, "Reset your password") {
		t.Error("template missing subject heading")
	}
	if !strings.Contains(out, "It can be used once.") {
		t.Error("template missing single-use notice")
	}
}

func TestTemplateEscapesHTML(t *testing.T) {
	out := renderTemplate(t, TemplateVerifyEmail, map[string]interface{}{
		"Name":      "<script>alert(1)</script>",
		"ActionURL": "https://aegis.example/verify",
		"Token":     "tok",
		"TTL":       "24 hours",
	})

	if strings.Contains(out, "<script>") {
		t.Error("recipient name must be HTML-escaped")
	}
}
