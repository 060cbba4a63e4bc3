package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"
)

// TelegramNotifier pushes reservation updates to the business owner's
// telegram chat. With an empty token it degrades to a no-op so local
// environments run without a bot.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
}

func NewTelegramNotifier(token string, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, logger: logger}, nil
}

func (n *TelegramNotifier) NotifyReservationConfirmed(ctx context.Context, business *domain.Business, reservation *domain.Reservation) {
	text := fmt.Sprintf(
		"*Reservation confirmed*\n\n"+"Customer: %s\n"+"%s",
		customerLabel(reservation),
		lineSummary(reservation),
	)
	n.send(ctx, business.TelegramChatID, text)
}

func (n *TelegramNotifier) NotifyHoldExpired(ctx context.Context, business *domain.Business, reservation *domain.Reservation) {
	text := fmt.Sprintf(
		"*Hold expired*\n\n"+"Customer: %s\n"+"%s",
		customerLabel(reservation),
		lineSummary(reservation),
	)
	n.send(ctx, business.TelegramChatID, text)
}

func customerLabel(r *domain.Reservation) string {
	if r.CustomerName != "" {
		return r.CustomerName
	}
	return "(not provided)"
}

func lineSummary(r *domain.Reservation) string {
	var b strings.Builder
	for _, ln := range r.Lines {
		fmt.Fprintf(&b, "%d unit(s), %s — %s (UTC)\n",
			ln.Quantity,
			ln.StartsAt.Format("02.01.2006 15:04"),
			ln.EndsAt.Format("02.01.2006 15:04"),
		)
	}
	return b.String()
}

func (n *TelegramNotifier) send(ctx context.Context, chatID *int64, text string) {
	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)", logger.String("text", text))
		return
	}

	if chatID == nil {
		n.logger.Debug("notification skipped (no chat_id)", logger.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", *chatID),
		)
		return
	}

	msg := tgbotapi.NewMessage(*chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", *chatID),
			logger.String("error", err.Error()),
		)
	}
}
