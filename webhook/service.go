package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Caelestis94/telehook/telegram"
	"github.com/Caelestis94/telehook/telegram/escape"
	"github.com/Caelestis94/telehook/webhook/payload"
	"github.com/Caelestis94/telehook/webhook/secret"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notifyTimeout bounds a single failure notification attempt
const notifyTimeout = 20 * time.Second

// Request carries the facts of one inbound trigger call
type Request struct {
	PublicID string
	// Secret is the caller-supplied protection credential, empty if absent
	Secret  string
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Result is the caller-visible terminal state of the pipeline
type Result struct {
	StatusCode int
	// Body mirrors Telegram's raw success payload; empty on errors
	Body string
	// ErrorMessage is set on every non-200 result
	ErrorMessage string
}

// Failure describes a failed request for the operator alert
type Failure struct {
	WebhookName string
	PublicID    string
	// Stage names the step that failed: "render" or "telegram"
	Stage      string
	Reason     string
	OccurredAt time.Time
}

// UseCase defines the delivery pipeline operation exposed to transports
type UseCase interface {
	Trigger(ctx context.Context, req Request) Result
}

/* Service orchestrates one inbound request through lookup, protection
 * check, rendering, dialect escaping, dispatch, persistence and failure
 * notification. Requests are independent; the only shared state is behind
 * the injected dependencies.
 */
type Service struct {
	configs    ConfigReader
	logs       LogWriter
	stats      StatRecorder
	renderer   Renderer
	dispatcher Dispatcher
	notifier   Notifier
	logger     zerolog.Logger

	// disabledStatus is the response code for a disabled webhook;
	// distinguishable from 404 so operators can tell "turned off" from
	// "never existed"
	disabledStatus int

	notifications sync.WaitGroup
}

// ServiceDeps bundles the collaborators of a Service
type ServiceDeps struct {
	Configs    ConfigReader
	Logs       LogWriter
	Stats      StatRecorder
	Renderer   Renderer
	Dispatcher Dispatcher
	Notifier   Notifier
	Logger     zerolog.Logger

	// DisabledStatus overrides the response code for disabled webhooks;
	// zero means http.StatusGone
	DisabledStatus int
}

// NewService creates the delivery orchestrator with dependency injection
func NewService(deps ServiceDeps) *Service {
	disabledStatus := deps.DisabledStatus
	if disabledStatus == 0 {
		disabledStatus = http.StatusGone
	}
	return &Service{
		configs:        deps.Configs,
		logs:           deps.Logs,
		stats:          deps.Stats,
		renderer:       deps.Renderer,
		dispatcher:     deps.Dispatcher,
		notifier:       deps.Notifier,
		logger:         deps.Logger,
		disabledStatus: disabledStatus,
	}
}

// terminal is the internal summary of how a request ended
type terminal struct {
	status  int
	body    string
	errMsg  string
	success bool

	validationFail bool
	telegramFail   bool

	// failureStage triggers the operator alert when non-empty
	failureStage  string
	failureReason string

	message          string
	telegramSent     bool
	telegramResponse string
}

// Trigger runs the full pipeline for one inbound request
func (s *Service) Trigger(ctx context.Context, req Request) Result {
	start := time.Now()

	wh, err := s.configs.GetWebhookByPublicID(ctx, req.PublicID)
	if err != nil {
		/* No webhook resolved means no log row: the audit table is keyed
		 * by webhook id. The transport access log still records the hit.
		 */
		if errors.Is(err, ErrNotFound) {
			return Result{StatusCode: http.StatusNotFound, ErrorMessage: "webhook not found"}
		}
		s.logger.Error().Err(err).Str("public_id", req.PublicID).Msg("webhook lookup failed")
		return Result{StatusCode: http.StatusInternalServerError, ErrorMessage: "internal error"}
	}

	bot, err := s.configs.GetBot(ctx, wh.BotID)
	if err != nil {
		s.logger.Error().Err(err).Int64("bot_id", wh.BotID).Msg("bot lookup failed")
		return s.finish(ctx, req, wh, start, terminal{
			status: http.StatusInternalServerError,
			errMsg: "bot configuration unavailable",
		})
	}

	if wh.IsDisabled {
		return s.finish(ctx, req, wh, start, terminal{
			status: s.disabledStatus,
			errMsg: "webhook is disabled",
		})
	}

	if wh.IsProtected && !secret.Verify(wh.SecretKey, req.Secret) {
		return s.finish(ctx, req, wh, start, terminal{
			status: http.StatusUnauthorized,
			errMsg: "invalid or missing secret key",
		})
	}

	data, err := payload.Parse(req.Body)
	if err != nil {
		return s.finish(ctx, req, wh, start, terminal{
			status:         http.StatusBadRequest,
			errMsg:         fmt.Sprintf("invalid payload: %v", err),
			validationFail: true,
		})
	}

	text, err := s.renderer.Render(wh.MessageTemplate, data)
	if err != nil {
		return s.finish(ctx, req, wh, start, terminal{
			status:         http.StatusBadRequest,
			errMsg:         fmt.Sprintf("rendering template: %v", err),
			validationFail: true,
			failureStage:   "render",
			failureReason:  err.Error(),
		})
	}

	// escaping cannot fail: the escapers are total functions
	message := escape.ForMode(wh.ParseMode).Escape(text)

	outcome := s.dispatcher.SendMessage(ctx, bot.Token, telegram.Message{
		ChatID:                bot.ChatID,
		Text:                  message,
		ParseMode:             wh.ParseMode,
		DisableWebPagePreview: wh.DisableWebPagePreview,
		DisableNotification:   wh.DisableNotification,
		MessageThreadID:       wh.MessageThreadID,
	})

	switch outcome.Kind {
	case telegram.Sent:
		return s.finish(ctx, req, wh, start, terminal{
			status:           http.StatusOK,
			body:             outcome.Body,
			success:          true,
			message:          message,
			telegramSent:     true,
			telegramResponse: outcome.Body,
		})
	case telegram.Rejected:
		return s.finish(ctx, req, wh, start, terminal{
			status:           http.StatusBadGateway,
			errMsg:           "telegram rejected the message",
			telegramFail:     true,
			failureStage:     "telegram",
			failureReason:    fmt.Sprintf("telegram answered %d: %s", outcome.StatusCode, outcome.Body),
			message:          message,
			telegramResponse: outcome.Body,
		})
	default: // telegram.Unreachable
		return s.finish(ctx, req, wh, start, terminal{
			status:        http.StatusBadGateway,
			errMsg:        fmt.Sprintf("telegram unreachable (%s)", outcome.Transport),
			telegramFail:  true,
			failureStage:  "telegram",
			failureReason: fmt.Sprintf("telegram unreachable (%s): %v", outcome.Transport, outcome.Err),
			message:       message,
		})
	}
}

/* finish writes the audit record, updates the daily counters and kicks
 * off the failure notification. Persistence failures are logged but never
 * change the already-computed caller-visible result.
 */
func (s *Service) finish(ctx context.Context, req Request, wh Webhook, start time.Time, t terminal) Result {
	elapsed := time.Since(start)

	logRow := Log{
		ID:                 uuid.New().String(),
		WebhookID:          wh.ID,
		RequestMethod:      req.Method,
		RequestURL:         req.URL,
		RequestHeaders:     req.Headers,
		RequestBody:        string(req.Body),
		ResponseStatusCode: t.status,
		MessageText:        t.message,
		TelegramSent:       t.telegramSent,
		TelegramResponse:   t.telegramResponse,
		ProcessingTime:     elapsed,
		CreatedAt:          time.Now().UTC(),
	}
	if t.failureStage == "render" {
		logRow.RenderError = t.failureReason
	}

	if err := s.logs.AppendLog(ctx, logRow); err != nil {
		s.logger.Error().Err(err).Str("log_id", logRow.ID).Msg("appending webhook log failed")
	}

	event := NewStatEvent(wh.ID, start, t.success, t.validationFail, t.telegramFail, elapsed)
	if err := s.stats.Record(ctx, event); err != nil {
		s.logger.Error().Err(err).Int64("webhook_id", wh.ID).Msg("recording stats failed")
	}

	if t.failureStage != "" {
		s.notifyFailure(ctx, Failure{
			WebhookName: wh.Name,
			PublicID:    wh.PublicID,
			Stage:       t.failureStage,
			Reason:      t.failureReason,
			OccurredAt:  time.Now().UTC(),
		})
	}

	return Result{StatusCode: t.status, Body: t.body, ErrorMessage: t.errMsg}
}

/* notifyFailure is best-effort and fire-and-forget: the caller's response
 * is already determined, and a notification failure must never re-enter
 * the request's error path. The context is detached so a client
 * disconnect cannot cancel an in-flight alert.
 */
func (s *Service) notifyFailure(ctx context.Context, failure Failure) {
	detached := context.WithoutCancel(ctx)

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()

		ctx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()

		settings, err := s.configs.GetSettings(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("reading notification settings failed")
			return
		}
		if !settings.NotificationsEnabled {
			return
		}

		if err := s.notifier.NotifyFailure(ctx, settings, failure); err != nil {
			s.logger.Error().Err(err).Str("public_id", failure.PublicID).Msg("failure notification failed")
		}
	}()
}

// Wait blocks until in-flight failure notifications finish; used during
// graceful shutdown and by tests
func (s *Service) Wait() {
	s.notifications.Wait()
}
