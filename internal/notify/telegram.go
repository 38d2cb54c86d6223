package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/kroha/internal/services"
)

// Notifier delivers one notification to one chat. Implementations must treat
// every recipient independently; a failed send reports an error and nothing
// else.
type Notifier interface {
	Send(ctx context.Context, chatID int64, notification services.Notification) error
}

type Telegram struct {
	botToken string
	client   *http.Client
}

func NewTelegram(botToken string) *Telegram {
	return &Telegram{
		botToken: botToken,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

func (telegram *Telegram) Send(ctx context.Context, chatID int64, notification services.Notification) error {
	values := url.Values{}
	values.Set("chat_id", strconv.FormatInt(chatID, 10))
	values.Set("text", notification.Text)

	if len(notification.Actions) > 0 {
		markup := inlineKeyboardMarkup{}
		for _, action := range notification.Actions {
			markup.InlineKeyboard = append(markup.InlineKeyboard, []inlineKeyboardButton{
				{Text: action.Label, CallbackData: action.Action},
			})
		}
		encoded, err := json.Marshal(markup)
		if err != nil {
			return fmt.Errorf("encode keyboard: %w", err)
		}
		values.Set("reply_markup", string(encoded))
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", telegram.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := telegram.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
