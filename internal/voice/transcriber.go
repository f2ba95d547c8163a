// Package voice turns Telegram voice messages into text.
//
// The pipeline is download -> ffmpeg (OGG to WAV) -> speech recognition. Every
// failure is logged and reported as "no text"; callers show one uniform
// "could not recognise" reply.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnintelligible is returned by a Recognizer that heard nothing it could transcribe.
var ErrUnintelligible = errors.New("speech could not be recognized")

// Downloader fetches the raw voice payload for a file id
type Downloader interface {
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// Converter decodes src into a WAV file at dst
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// Recognizer transcribes a WAV payload
type Recognizer interface {
	Recognize(ctx context.Context, wav []byte) (string, error)
}

type Transcriber struct {
	downloader Downloader
	converter  Converter
	recognizer Recognizer
	tempDir    string
}

type Option func(*Transcriber)

// WithTempDir sets the parent directory for per-message scratch directories.
func WithTempDir(dir string) Option {
	return func(t *Transcriber) {
		t.tempDir = dir
	}
}

func NewTranscriber(downloader Downloader, converter Converter, recognizer Recognizer, opts ...Option) *Transcriber {
	t := &Transcriber{
		downloader: downloader,
		converter:  converter,
		recognizer: recognizer,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcribe returns the recognised text of a voice message, or false if any
// step failed. Temporary files never outlive the call.
func (t *Transcriber) Transcribe(ctx context.Context, fileID string) (string, bool) {
	log.Printf("[Voice] Starting voice message processing for file %s", fileID)

	var text string
	err := withScratchDir(t.tempDir, func(dir string) error {
		var err error
		text, err = t.transcribeIn(ctx, dir, fileID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUnintelligible) {
			log.Printf("[Voice] Speech recognition could not understand audio")
		} else {
			log.Printf("[Voice] Transcription failed: %v", err)
		}
		return "", false
	}

	log.Printf("[Voice] Successfully recognized text: %s", text)
	return text, true
}

func (t *Transcriber) transcribeIn(ctx context.Context, dir, fileID string) (string, error) {
	oggPath := filepath.Join(dir, "voice.ogg")
	wavPath := filepath.Join(dir, "voice.wav")

	if err := t.download(ctx, fileID, oggPath); err != nil {
		return "", err
	}

	if err := t.converter.Convert(ctx, oggPath, wavPath); err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}

	wav, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("read wav: %w", err)
	}

	text, err := t.recognizer.Recognize(ctx, wav)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}

func (t *Transcriber) download(ctx context.Context, fileID, dst string) error {
	body, err := t.downloader.Download(ctx, fileID)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer body.Close()

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return f.Close()
}

// withScratchDir runs fn in a fresh directory under parent and removes the
// directory afterwards, whatever fn returns.
func withScratchDir(parent string, fn func(dir string) error) error {
	dir, err := os.MkdirTemp(parent, "voice-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("[Voice] Error cleaning up %s: %v", dir, err)
		}
	}()
	return fn(dir)
}
