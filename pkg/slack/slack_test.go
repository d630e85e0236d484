/*
copyright 2020 the Goployer authors

licensed under the apache license, version 2.0 (the "license");
you may not use this file except in compliance with the license.
you may obtain a copy of the license at

    http://www.apache.org/licenses/license-2.0

unless required by applicable law or agreed to in writing, software
distributed under the license is distributed on an "as is" basis,
without warranties or conditions of any kind, either express or implied.
see the license for the specific language governing permissions and
limitations under the license.
*/

package slack

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-test/deep"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/DevopsArtFactory/forkconfig/pkg/logger"
)

type webhookRecorder struct {
	mu       sync.Mutex
	messages []slack.WebhookMessage
	status   int
}

func (r *webhookRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var msg slack.WebhookMessage
	json.NewDecoder(req.Body).Decode(&msg)

	r.mu.Lock()
	r.messages = append(r.messages, msg)
	status := r.status
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte("ok"))
}

func (r *webhookRecorder) received() []slack.WebhookMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]slack.WebhookMessage(nil), r.messages...)
}

func TestNewWebhook(t *testing.T) {
	testData := []struct {
		URL      string
		Channel  string
		Expected Webhook
		Error    bool
	}{
		{
			URL:      "https://hooks.slack.com/services/T/B/X",
			Channel:  " #alerts ",
			Expected: Webhook{URL: "https://hooks.slack.com/services/T/B/X", Channel: "#alerts"},
		},
		{
			URL:      "  https://hooks.slack.com/services/T/B/X  ",
			Expected: Webhook{URL: "https://hooks.slack.com/services/T/B/X"},
		},
		{
			URL:      "hooks.slack.com/services/T/B/X",
			Expected: Webhook{URL: "hooks.slack.com/services/T/B/X"},
		},
		{URL: "", Error: true},
		{URL: "   ", Error: true},
	}

	for _, td := range testData {
		output, err := NewWebhook(td.URL, td.Channel)
		if td.Error {
			if err == nil {
				t.Errorf("expected error for %q", td.URL)
			}
			continue
		}

		if err != nil {
			t.Errorf("unexpected error for %q: %v", td.URL, err)
			continue
		}

		if diff := deep.Equal(output, td.Expected); diff != nil {
			t.Error(diff)
		}
	}

	if _, err := NewWebhook("", ""); err != ErrEmptyWebhook {
		t.Errorf("expected ErrEmptyWebhook, got %v", err)
	}
}

func TestWebhookValidate(t *testing.T) {
	testData := []struct {
		URL   string
		Valid bool
	}{
		{URL: "https://hooks.slack.com/services/T/B/X", Valid: true},
		{URL: "http://127.0.0.1:8080/hook", Valid: true},
		{URL: "hooks.slack.com/services/T/B/X", Valid: false},
		{URL: "ftp://hooks.slack.com/services", Valid: false},
		{URL: "not a url", Valid: false},
	}

	for _, td := range testData {
		webhook, err := NewWebhook(td.URL, "")
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", td.URL, err)
		}

		if err := webhook.Validate(); (err == nil) != td.Valid {
			t.Errorf("url: %q, valid: %t, err: %v", td.URL, td.Valid, err)
		}
	}
}

func TestResolveIcon(t *testing.T) {
	testData := []struct {
		Emoji    string
		URL      string
		Expected Icon
	}{
		{Emoji: "rocket", URL: "http://x/icon.png", Expected: EmojiIcon("rocket")},
		{Emoji: "", URL: "http://x/icon.png", Expected: URLIcon("http://x/icon.png")},
		{Emoji: "rocket", URL: "", Expected: EmojiIcon("rocket")},
		{Emoji: "", URL: "", Expected: nil},
	}

	for _, td := range testData {
		if output := ResolveIcon(td.Emoji, td.URL); output != td.Expected {
			t.Errorf("expected: %v, output: %v, input: %s %s", td.Expected, output, td.Emoji, td.URL)
		}
	}
}

func TestEmojiIconString(t *testing.T) {
	for _, input := range []string{"rocket", ":rocket:", "rocket:"} {
		if output := EmojiIcon(input).String(); output != ":rocket:" {
			t.Errorf("expected: :rocket:, output: %s, input: %s", output, input)
		}
	}
}

func TestMessage(t *testing.T) {
	h := NewHandler(Config{
		Webhook: Webhook{URL: "https://hooks.slack.com/services/T/B/X", Channel: "#alerts"},
		User:    NewUser("example.com", EmojiIcon("rocket")),
	}, logrus.WarnLevel, true)

	l := logger.New("pageon")
	entry := l.WithField("page", "home")
	entry.Level = logrus.ErrorLevel
	entry.Message = "something broke"

	msg := h.Message(entry)

	if msg.Username != "example.com" || msg.Channel != "#alerts" || msg.IconEmoji != ":rocket:" || msg.IconURL != "" {
		t.Errorf("unexpected identity: %+v", msg)
	}

	if msg.Text != "[ERROR] something broke" {
		t.Errorf("unexpected text: %s", msg.Text)
	}

	if len(msg.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(msg.Attachments))
	}

	attachment := msg.Attachments[0]
	if attachment.Color != "#ff0000" || attachment.Footer != "pageon" {
		t.Errorf("unexpected attachment: %+v", attachment)
	}

	expected := []slack.AttachmentField{{Title: "page", Value: "home", Short: true}}
	if diff := deep.Equal(attachment.Fields, expected); diff != nil {
		t.Error(diff)
	}
}

func TestHandlerForwardsWarningAndAbove(t *testing.T) {
	recorder := &webhookRecorder{}
	srv := httptest.NewServer(recorder)
	defer srv.Close()

	webhook, err := NewWebhook(srv.URL, "")
	if err != nil {
		t.Fatal(err)
	}

	l := logger.New("pageon")
	l.PushHandler(NewHandler(Config{
		Webhook: webhook,
		User:    NewUser("example.com", URLIcon("http://x/icon.png")),
	}, logrus.WarnLevel, true))

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	messages := recorder.received()
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	if messages[0].Text != "[WARNING] warn" || messages[1].Text != "[ERROR] error" {
		t.Errorf("unexpected messages: %+v", messages)
	}

	if messages[0].IconURL != "http://x/icon.png" || messages[0].IconEmoji != "" {
		t.Errorf("unexpected icon: %+v", messages[0])
	}
}

func TestHandlerReturnsDeliveryError(t *testing.T) {
	recorder := &webhookRecorder{status: http.StatusInternalServerError}
	srv := httptest.NewServer(recorder)
	defer srv.Close()

	h := NewHandler(Config{Webhook: Webhook{URL: srv.URL}}, logrus.WarnLevel, false)

	entry := logger.New("pageon").WithField("k", "v")
	entry.Level = logrus.ErrorLevel
	entry.Message = "error"

	stop, err := h.Handle(entry)
	if err == nil {
		t.Errorf("expected delivery error")
	}

	if !stop {
		t.Errorf("handler without bubble should stop propagation")
	}
}
