package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
	"github.com/voidmesh/tgrelay/internal/biz/repo"
)

// noTextPlaceholder replaces an empty message body (stickers, media without
// caption) so backends never receive an empty string.
const noTextPlaceholder = "[no text content]"

// previewRunes bounds the message excerpt written to the log.
const previewRunes = 10

// RelayUsecase decides whether an inbound event qualifies for forwarding,
// enriches it with chat and sender metadata and dispatches it to the
// configured forwarder.
type RelayUsecase struct {
	policy    domain.FilterPolicy
	chatRepo  repo.ChatRepo
	forwarder repo.Forwarder
	log       zerolog.Logger
	now       func() time.Time
}

// NewRelayUsecase creates a new relay usecase.
func NewRelayUsecase(policy domain.FilterPolicy, chatRepo repo.ChatRepo, fwd repo.Forwarder, log zerolog.Logger) *RelayUsecase {
	return &RelayUsecase{
		policy:    policy,
		chatRepo:  chatRepo,
		forwarder: fwd,
		log:       log,
		now:       time.Now,
	}
}

// HandleEvent processes one inbound message end to end. Errors never escape:
// a failed send is terminal for the event and only produces a log line.
func (uc *RelayUsecase) HandleEvent(ctx context.Context, ev domain.Event) {
	if !uc.shouldForward(ctx, ev) {
		return
	}

	payload := domain.ForwardPayload{
		ChatTitle: uc.chatTitle(ctx, ev),
		Sender:    uc.senderName(ctx, ev),
		Message:   ev.Text,
		ChatID:    ev.ChatID,
		MessageID: ev.MessageID,
	}
	if payload.Message == "" {
		payload.Message = noTextPlaceholder
	}

	if err := uc.forwarder.Send(ctx, payload); err != nil {
		uc.log.Error().Err(err).
			Str("chat", payload.ChatTitle).
			Str("sender", payload.Sender).
			Msg("message forward failed")
		return
	}

	uc.log.Info().
		Str("chat", payload.ChatTitle).
		Str("sender", payload.Sender).
		Str("preview", preview(payload.Message)).
		Msg("message forwarded")
}

// shouldForward applies the filter rules in order, short-circuiting on the
// first failing rule: service messages, allow list, deny list, mute state.
func (uc *RelayUsecase) shouldForward(ctx context.Context, ev domain.Event) bool {
	if ev.Service {
		return false
	}

	if !uc.policy.Allows(strconv.FormatInt(ev.ChatID, 10)) {
		return false
	}

	if uc.policy.MuteFilter && uc.chatMuted(ctx, ev.ChatID) {
		uc.log.Debug().Int64("chat_id", ev.ChatID).Msg("chat is muted, skipping message")
		return false
	}

	return true
}

// chatMuted resolves the chat's mute state. When the lookup fails the chat
// is treated as muted rather than leaking a message the user silenced.
func (uc *RelayUsecase) chatMuted(ctx context.Context, chatID int64) bool {
	muteUntil, ok, err := uc.chatRepo.GetMuteState(ctx, chatID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("chat_id", chatID).Msg("mute state lookup failed")
		return true
	}
	return domain.Muted(muteUntil, ok, uc.now())
}

func (uc *RelayUsecase) chatTitle(ctx context.Context, ev domain.Event) string {
	title, err := uc.chatRepo.GetChatTitle(ctx, ev.ChatID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("chat_id", ev.ChatID).Msg("chat title lookup failed")
		return "Unknown"
	}
	if title == "" {
		return "Unknown Chat"
	}
	return title
}

func (uc *RelayUsecase) senderName(ctx context.Context, ev domain.Event) string {
	if ev.SenderID == 0 {
		return "Unknown Sender"
	}
	name, err := uc.chatRepo.GetSenderName(ctx, ev.SenderID)
	if err != nil {
		uc.log.Warn().Err(err).Int64("sender_id", ev.SenderID).Msg("sender lookup failed")
		return "Unknown"
	}
	if name == "" {
		return "Unknown User"
	}
	return name
}

// preview truncates a message body for logging.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + "..."
}
