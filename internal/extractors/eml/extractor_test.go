package eml

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/brief-cli/internal/core/domain"
)

func TestExtractor_SupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{"eml"}, New().SupportedExtensions())
}

func TestExtractor_MediaType(t *testing.T) {
	assert.Equal(t, "eml", New().MediaType())
}

func TestExtract_PlainTextMessage(t *testing.T) {
	raw := strings.Join([]string{
		"From: ana@example.com",
		"To: team@example.com",
		"Date: Mon, 2 Mar 2026 09:00:00 +0000",
		"Subject: Sync minutes",
		"",
		"We agreed to ship the importer this week.",
	}, "\r\n")

	text, err := New().Extract(context.Background(), []byte(raw), "minutes.eml")

	require.NoError(t, err)
	assert.Contains(t, text, "From: ana@example.com")
	assert.Contains(t, text, "Subject: Sync minutes")
	assert.Contains(t, text, "We agreed to ship the importer this week.")
}

func TestExtract_EncodedSubject(t *testing.T) {
	raw := strings.Join([]string{
		"From: ana@example.com",
		"Subject: =?utf-8?q?R=C3=A9union_notes?=",
		"",
		"body",
	}, "\r\n")

	text, err := New().Extract(context.Background(), []byte(raw), "m.eml")

	require.NoError(t, err)
	assert.Contains(t, text, "Subject: Réunion notes")
}

func TestExtract_MultipartPrefersPlainText(t *testing.T) {
	raw := strings.Join([]string{
		"From: ana@example.com",
		"Subject: Agenda",
		`Content-Type: multipart/alternative; boundary="sep"`,
		"",
		"--sep",
		"Content-Type: text/plain",
		"",
		"plain agenda",
		"--sep",
		"Content-Type: text/html",
		"",
		"<p>html agenda</p>",
		"--sep--",
	}, "\r\n")

	text, err := New().Extract(context.Background(), []byte(raw), "agenda.eml")

	require.NoError(t, err)
	assert.Contains(t, text, "plain agenda")
	assert.NotContains(t, text, "html agenda")
}

func TestExtract_HTMLOnlyMessageIsStripped(t *testing.T) {
	raw := strings.Join([]string{
		"From: ana@example.com",
		"Subject: Agenda",
		"Content-Type: text/html",
		"",
		"<p>html <b>agenda</b></p>",
	}, "\r\n")

	text, err := New().Extract(context.Background(), []byte(raw), "agenda.eml")

	require.NoError(t, err)
	assert.Contains(t, text, "html agenda")
	assert.NotContains(t, text, "<p>")
}

func TestExtract_NotAnEmail(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("just some text without headers"), "x.eml")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
