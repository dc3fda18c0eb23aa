package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Spok95/gym-crm/internal/domain/members"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram шлёт служебные уведомления в админский чат.
type Telegram struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	adminChat int64
}

func NewTelegram(token string, adminChatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{api: api, log: log, adminChat: adminChatID}, nil
}

func (t *Telegram) send(msg tgbotapi.Chattable) {
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("telegram send failed", "err", err)
	}
}

// RenewalReminder — напоминание админу: абонемент истёк, пора продлевать.
func (t *Telegram) RenewalReminder(_ context.Context, m *members.Member, daysLeft int) {
	service := "—"
	if m.Service != nil {
		service = m.Service.Name
	}
	text := fmt.Sprintf(
		"Абонемент истёк: %s (ID %d)\nТариф: %s\nОстаток дней: %d\nНапомните клиенту о продлении.",
		m.FullName, m.ID, service, daysLeft,
	)
	t.send(tgbotapi.NewMessage(t.adminChat, text))
}
