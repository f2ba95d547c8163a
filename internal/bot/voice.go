package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	authdomain "taskbot/internal/auth/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message, user *authdomain.User) {
	if b.transcriber == nil {
		b.reply(msg, textVoiceFailed)
		return
	}

	var processingID int
	out := tgbotapi.NewMessage(msg.Chat.ID, textVoiceProcessing)
	if sent, err := b.api.Send(out); err != nil {
		log.Printf("[Bot] Failed to send processing message: %v", err)
	} else {
		processingID = sent.MessageID
	}

	text, ok := b.transcriber.Transcribe(ctx, msg.Voice.FileID)
	if !ok {
		log.Printf("[Bot] Failed to recognize voice message from %s", user.Handle())
		b.editOrReply(msg, processingID, textVoiceFailed)
		return
	}

	b.editOrReply(msg, processingID, fmt.Sprintf(textVoiceRecognized, text))
	b.createTask(msg, user, text)
}

// FileURLResolver maps a Telegram file id to a download URL
type FileURLResolver interface {
	GetFileDirectURL(fileID string) (string, error)
}

// FileDownloader fetches voice payloads from Telegram's file storage.
type FileDownloader struct {
	resolver FileURLResolver
	client   *http.Client
}

func NewFileDownloader(resolver FileURLResolver, client *http.Client) *FileDownloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &FileDownloader{resolver: resolver, client: client}
}

func (d *FileDownloader) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	fileURL, err := d.resolver.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for file %s", fileID)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		// The URL embeds the bot token; keep it out of the logs.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download file %s: status %d", fileID, resp.StatusCode)
	}
	return resp.Body, nil
}
