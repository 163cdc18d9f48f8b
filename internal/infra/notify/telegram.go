package notify

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier は購入者に注文完了メッセージ（HTML）を送る
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// endpointが空なら本番のAPI。起動時にgetMeで疎通確認される
func NewTelegramNotifier(token string, endpoint string, timeout time.Duration) (*TelegramNotifier, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

func (n *TelegramNotifier) NotifyOrderCreated(ctx context.Context, telegramID int64, order model.Order, shipping usecase.ShippingInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(telegramID, OrderCreatedText(order, shipping))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// 空の項目は出さない
func OrderCreatedText(order model.Order, shipping usecase.ShippingInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Ваш заказ №%d успешно создан!\n\n", order.ID)

	lines := []struct{ label, value string }{
		{"Получатель", shipping.FullName},
		{"Телефон", shipping.Phone},
		{"Адрес", shipping.Address},
	}
	wrote := false
	for _, l := range lines {
		if v := strings.TrimSpace(l.value); v != "" {
			fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.label, html.EscapeString(v))
			wrote = true
		}
	}
	if wrote {
		b.WriteString("\n")
	}
	b.WriteString("В ближайшее время с вами свяжется наш менеджер.")
	return b.String()
}
