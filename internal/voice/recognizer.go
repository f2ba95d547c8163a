package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/speech/v1"
)

const sampleRateHertz = 16000

// GoogleRecognizer submits WAV audio to Cloud Speech-to-Text.
type GoogleRecognizer struct {
	service  *speech.Service
	language func() string
}

// SpeechOptions builds client options from an API key or a service account
// JSON file. The credentials file wins when both are set.
func SpeechOptions(ctx context.Context, apiKey, credentialsFile string) ([]option.ClientOption, error) {
	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, speech.CloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentials(creds)}, nil
	}
	if apiKey != "" {
		return []option.ClientOption{option.WithAPIKey(apiKey)}, nil
	}
	return nil, nil
}

// NewGoogleRecognizer creates the speech client. language is read on every
// request so it can be changed at runtime.
func NewGoogleRecognizer(ctx context.Context, language func() string, opts ...option.ClientOption) (*GoogleRecognizer, error) {
	srv, err := speech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create speech service: %w", err)
	}
	return &GoogleRecognizer{service: srv, language: language}, nil
}

func (r *GoogleRecognizer) Recognize(ctx context.Context, wav []byte) (string, error) {
	req := &speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: sampleRateHertz,
			LanguageCode:    r.language(),
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(wav),
		},
	}

	resp, err := r.service.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("speech service request failed: %w", err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(result.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "", ErrUnintelligible
	}
	return strings.Join(parts, " "), nil
}
