package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/telephoto/internal/common"
	"github.com/dmitrijs2005/telephoto/internal/models"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramConfig carries the bot credentials and destination chat.
type TelegramConfig struct {
	Token  string
	ChatID string
	// BaseURL overrides the Bot API host, mainly for tests.
	BaseURL string
}

// Telegram stores files by sending them as documents to a chat via the
// Telegram Bot API. The remote identifier it mints is "<messageID>:<fileID>",
// so the object can later be resolved (getFile needs the file id) and
// deleted (deleteMessage needs the message id).
type Telegram struct {
	token   string
	chatID  string
	baseURL string
	client  *http.Client
}

func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	if cfg.Token == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram token/chat id: %w", common.ErrNotConfigured)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTelegramBaseURL
	}

	return &Telegram{
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

// apiResponse is the envelope every Bot API method returns.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type sentMessage struct {
	MessageID int64 `json:"message_id"`
	Document  *struct {
		FileID string `json:"file_id"`
	} `json:"document"`
	Video *struct {
		FileID string `json:"file_id"`
	} `json:"video"`
	Photo []struct {
		FileID string `json:"file_id"`
	} `json:"photo"`
}

func (t *Telegram) Upload(ctx context.Context, req UploadRequest) (string, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", req.Path, err)
	}

	body, contentType, err := t.buildDocumentForm(req.Name, req.Kind, data)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.methodURL("sendDocument"),
		newProgressReader(bytes.NewReader(body), int64(len(body)), req.Progress))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.ContentLength = int64(len(body))

	var msg sentMessage
	if err := t.do(httpReq, &msg); err != nil {
		return "", fmt.Errorf("sendDocument: %w", err)
	}

	fileID := messageFileID(msg)
	if fileID == "" {
		return "", fmt.Errorf("sendDocument: no file id in response")
	}

	return fmt.Sprintf("%d:%s", msg.MessageID, fileID), nil
}

func (t *Telegram) ResolveDownloadURL(ctx context.Context, remoteID string) (string, error) {
	_, fileID, err := splitRemoteID(remoteID)
	if err != nil {
		return "", err
	}

	q := url.Values{"file_id": {fileID}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		t.methodURL("getFile")+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		FilePath string `json:"file_path"`
	}
	if err := t.do(httpReq, &result); err != nil {
		return "", fmt.Errorf("getFile: %w", err)
	}
	if result.FilePath == "" {
		return "", fmt.Errorf("getFile: no file path in response")
	}

	return fmt.Sprintf("%s/file/bot%s/%s", t.baseURL, t.token, result.FilePath), nil
}

func (t *Telegram) Delete(ctx context.Context, remoteID string) error {
	messageID, _, err := splitRemoteID(remoteID)
	if err != nil {
		return err
	}

	form := url.Values{"chat_id": {t.chatID}, "message_id": {messageID}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.methodURL("deleteMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var deleted bool
	if err := t.do(httpReq, &deleted); err != nil {
		return fmt.Errorf("deleteMessage: %w", err)
	}
	return nil
}

func (t *Telegram) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
}

// do executes the request and unmarshals the envelope's result into out.
func (t *Telegram) do(req *http.Request, out any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode response (status %s): %w", resp.Status, err)
	}
	if !envelope.OK {
		return fmt.Errorf("api error (status %s): %s", resp.Status, envelope.Description)
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

func (t *Telegram) buildDocumentForm(name string, kind models.MediaKind, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("chat_id", t.chatID); err != nil {
		return nil, "", err
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename=%q`, name))
	h.Set("Content-Type", mimeTypeFor(kind))
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func mimeTypeFor(kind models.MediaKind) string {
	switch kind {
	case models.KindImage:
		return "image/jpeg"
	case models.KindVideo:
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// messageFileID digs the file id out of whichever shape the API returned
// the attachment in. Photos come as a size ladder; the last entry is the
// largest.
func messageFileID(msg sentMessage) string {
	switch {
	case msg.Document != nil:
		return msg.Document.FileID
	case msg.Video != nil:
		return msg.Video.FileID
	case len(msg.Photo) > 0:
		return msg.Photo[len(msg.Photo)-1].FileID
	default:
		return ""
	}
}

func splitRemoteID(remoteID string) (messageID, fileID string, err error) {
	messageID, fileID, ok := strings.Cut(remoteID, ":")
	if !ok || messageID == "" || fileID == "" {
		return "", "", fmt.Errorf("malformed remote id %q", remoteID)
	}
	return messageID, fileID, nil
}
