package telegram

import (
	"Townsquare/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// Client Telegram Bot API 客户端，只封装出站投递用到的两个方法
type Client struct {
	http *resty.Client
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

func NewClient(cfg config.TelegramConfig) *Client {
	base := cfg.APIBase
	if base == "" {
		base = "https://api.telegram.org"
	}
	client := resty.New().
		SetBaseURL(fmt.Sprintf("%s/bot%s", base, cfg.BotToken)).
		SetTimeout(10 * time.Second).
		SetRetryCount(0)
	return &Client{http: client}
}

// SendMessage 发送纯文本消息
func (s *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return s.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
}

// SendPhoto 发送图文消息，photoURL 必须对 Telegram 服务器可达
func (s *Client) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	return s.call(ctx, "sendPhoto", map[string]interface{}{
		"chat_id": chatID,
		"photo":   photoURL,
		"caption": caption,
	})
}

func (s *Client) call(ctx context.Context, method string, body map[string]interface{}) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/" + method)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}

	var result apiResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("telegram %s: invalid response: %w", method, err)
	}
	if !result.Ok {
		return fmt.Errorf("telegram %s: %d %s", method, result.ErrorCode, result.Description)
	}
	return nil
}
