package transcribe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
)

const (
	sampleRateHertz = 48000
	channelCount    = 1
)

var ErrNoPrefix = errors.New("audioData has no data-URL prefix")

// Recognizer turns raw audio into its best transcript. An empty string
// with a nil error means the service heard nothing.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (string, error)
}

type speechAPI interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
}

// SpeechRecognizer calls Google Cloud Speech-to-Text synchronously.
type SpeechRecognizer struct {
	client   speechAPI
	language string
	model    string
}

// NewSpeechRecognizer accepts a *speech.Client.
func NewSpeechRecognizer(client speechAPI, language, model string) *SpeechRecognizer {
	return &SpeechRecognizer{client: client, language: language, model: model}
}

func (s *SpeechRecognizer) config() *speechpb.RecognitionConfig {
	return &speechpb.RecognitionConfig{
		Encoding:          speechpb.RecognitionConfig_WEBM_OPUS,
		SampleRateHertz:   sampleRateHertz,
		AudioChannelCount: channelCount,
		LanguageCode:      s.language,
		Model:             s.model,
	}
}

func (s *SpeechRecognizer) Recognize(ctx context.Context, audio []byte) (string, error) {
	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: s.config(),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}
	return FirstTranscript(resp), nil
}

// FirstTranscript returns the top alternative of the first result, or "".
func FirstTranscript(resp *speechpb.RecognizeResponse) string {
	results := resp.GetResults()
	if len(results) == 0 {
		return ""
	}
	alts := results[0].GetAlternatives()
	if len(alts) == 0 {
		return ""
	}
	return alts[0].GetTranscript()
}

// DecodeAudioData strips everything up to the first comma of a data URL
// and base64-decodes the rest.
func DecodeAudioData(data string) ([]byte, error) {
	_, payload, ok := strings.Cut(data, ",")
	if !ok {
		return nil, ErrNoPrefix
	}
	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}
