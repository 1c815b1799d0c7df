package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Caelestis94/telehook/telegram"
	"github.com/Caelestis94/telehook/telegram/escape"
	"github.com/Caelestis94/telehook/webhook"
)

/* TelegramNotifier delivers operator alerts about failed webhook requests
 * through the same Bot API client used for regular dispatch. Alerts are
 * formatted as HTML so the failure reason can be quoted verbatim inside
 * a code block without dialect surprises.
 */
type TelegramNotifier struct {
	dispatcher webhook.Dispatcher
}

// NewTelegramNotifier creates a notifier backed by the given dispatcher
func NewTelegramNotifier(dispatcher webhook.Dispatcher) *TelegramNotifier {
	return &TelegramNotifier{dispatcher: dispatcher}
}

// NotifyFailure sends one alert message to the chat configured in settings
func (n *TelegramNotifier) NotifyFailure(ctx context.Context, settings webhook.Settings, failure webhook.Failure) error {
	if settings.BotToken == "" || settings.ChatID == "" {
		return fmt.Errorf("notification settings incomplete: bot token or chat id missing")
	}

	outcome := n.dispatcher.SendMessage(ctx, settings.BotToken, telegram.Message{
		ChatID:          settings.ChatID,
		Text:            formatAlert(failure),
		ParseMode:       telegram.HTML,
		MessageThreadID: settings.MessageThreadID,
	})
	if !outcome.Delivered() {
		if outcome.Kind == telegram.Unreachable {
			return fmt.Errorf("sending failure alert: %w", outcome.Err)
		}
		return fmt.Errorf("sending failure alert: telegram answered %d: %s", outcome.StatusCode, outcome.Body)
	}
	return nil
}

func formatAlert(failure webhook.Failure) string {
	var stage string
	switch failure.Stage {
	case "render":
		stage = "template rendering failed"
	case "telegram":
		stage = "message delivery failed"
	default:
		stage = "request failed"
	}

	// the escaper handles entity markup; reason and names go through as
	// plain text and get their <, > and & entity-encoded
	return escape.HTML{}.Escape(fmt.Sprintf(
		"<b>Webhook failure</b>\\n\\n"+
			"<b>Webhook:</b> %s (%s)\\n"+
			"<b>Stage:</b> %s\\n"+
			"<b>Time:</b> %s\\n"+
			"<b>Reason:</b>\\n<pre>%s</pre>",
		failure.WebhookName,
		failure.PublicID,
		stage,
		failure.OccurredAt.UTC().Format(time.RFC3339),
		failure.Reason,
	))
}
