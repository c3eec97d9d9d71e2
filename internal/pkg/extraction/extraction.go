// Package extraction turns free text and recorded speech into search
// requests with the OpenAI chat and transcription APIs.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ijalalfrz/flight-scraper-service/internal/app/dto"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/exception"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/metrics"
	"github.com/ijalalfrz/flight-scraper-service/internal/pkg/utils"
)

const (
	rateLimitMessage  = "OpenAI API rate limit exceeded. Please try again later."
	connectionMessage = "Failed to connect to OpenAI API. Please check your internet connection."
	parseMessage      = "Failed to parse extracted data. Please try again."
	emptyTextMessage  = "Text input is empty or contains only whitespace"
)

// Client is the part of the OpenAI API the service calls.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

type Config struct {
	ChatModel          string
	TranscriptionModel string
	Temperature        float32
	TextTemplatePath   string
	VoiceTemplatePath  string
	MaxAudioBytes      int64
	AudioFormats       []string
}

func DefaultConfig() Config {
	return Config{
		ChatModel:          openai.GPT4oMini,
		TranscriptionModel: openai.Whisper1,
		Temperature:        0.1,
		MaxAudioBytes:      25 * 1024 * 1024,
		AudioFormats:       []string{"mp3", "mp4", "mpeg", "mpga", "m4a", "wav", "webm"},
	}
}

type Service struct {
	client      Client
	cfg         Config
	metrics     *metrics.Metrics
	textPrompt  string
	voicePrompt string
}

// NewService reads the optional reference templates once.
func NewService(client Client, cfg Config, m *metrics.Metrics) (*Service, error) {
	textTemplate, err := loadTemplate(cfg.TextTemplatePath)
	if err != nil {
		return nil, err
	}

	voiceTemplate, err := loadTemplate(cfg.VoiceTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Service{
		client:      client,
		cfg:         cfg,
		metrics:     m,
		textPrompt:  buildPrompt("text input", "input_text", "text input", textTemplate),
		voicePrompt: buildPrompt("voice transcriptions", "transcription", "transcription text", voiceTemplate),
	}, nil
}

func buildPrompt(source, echoField, echoValue, template string) string {
	prompt := fmt.Sprintf(instructions, source, strings.TrimSuffix(source, "s")) +
		fmt.Sprintf(outputStructure, echoField, echoValue)

	if template != "" {
		prompt += templateHeading + template
	}

	return prompt
}

// loadTemplate returns "" when path is empty or names no file.
func loadTemplate(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}

	return string(data), nil
}

// ExtractFromText reads a search request out of free text.
func (s *Service) ExtractFromText(ctx context.Context, text string) (dto.SearchRequest, error) {
	if strings.TrimSpace(text) == "" {
		slog.WarnContext(ctx, emptyTextMessage)
		return dto.SearchRequest{}, exception.ApplicationError{
			Kind:       exception.KindEmptyTextInput,
			StatusCode: http.StatusBadRequest,
			Message:    emptyTextMessage,
		}
	}

	slog.InfoContext(ctx, "structured data extraction from text started")

	content, err := s.complete(ctx, s.textPrompt, fmt.Sprintf(textUserMessage, text))
	if err != nil {
		return dto.SearchRequest{}, upstreamError(exception.KindStructuredExtraction, "Text extraction failed", err)
	}

	var result struct {
		ExtractedData *dto.SearchRequest `json:"extracted_data"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil || result.ExtractedData == nil {
		slog.ErrorContext(ctx, parseMessage, "error", err)
		return dto.SearchRequest{}, parseError(err)
	}

	slog.InfoContext(ctx, "structured data extraction from text completed")

	return *result.ExtractedData, nil
}

// ValidateAudio checks format and size before anything is uploaded.
func (s *Service) ValidateAudio(upload dto.AudioUpload) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(upload.Filename)), ".")

	supported := false
	for _, format := range s.cfg.AudioFormats {
		if ext == format {
			supported = true
			break
		}
	}

	if !supported {
		return exception.ApplicationError{
			Kind:       exception.KindInvalidAudioFormat,
			StatusCode: http.StatusBadRequest,
			Message: fmt.Sprintf("Unsupported audio format: %s. Supported formats: %s",
				ext, strings.Join(s.cfg.AudioFormats, ", ")),
		}
	}

	if upload.Size > s.cfg.MaxAudioBytes {
		return exception.ApplicationError{
			Kind:       exception.KindAudioFileTooLarge,
			StatusCode: http.StatusBadRequest,
			Message: fmt.Sprintf("Audio file size (%s) exceeds maximum allowed size (%dMB)",
				utils.FormatMegabytes(upload.Size), s.cfg.MaxAudioBytes/1024/1024),
		}
	}

	return nil
}

// Transcribe turns speech into text.
func (s *Service) Transcribe(ctx context.Context, upload dto.AudioUpload) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.cfg.TranscriptionModel,
		FilePath: upload.Filename,
		Reader:   bytes.NewReader(upload.Data),
		Format:   openai.AudioResponseFormatText,
	})
	s.observe("transcription", err)

	if err != nil {
		return "", upstreamError(exception.KindTranscription, "Transcription failed", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// ExtractFromTranscription reads a structured voice search out of a transcription.
func (s *Service) ExtractFromTranscription(ctx context.Context, transcription string) (dto.VoiceSearchResponse, error) {
	content, err := s.complete(ctx, s.voicePrompt, fmt.Sprintf(voiceUserMessage, transcription))
	if err != nil {
		return dto.VoiceSearchResponse{}, upstreamError(exception.KindStructuredExtraction, "Structured extraction failed", err)
	}

	var result dto.VoiceSearchResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		slog.ErrorContext(ctx, parseMessage, "error", err)
		return dto.VoiceSearchResponse{}, parseError(err)
	}

	if result.Transcription == "" {
		result.Transcription = transcription
	}

	if result.MissingFields == nil {
		result.MissingFields = []string{}
	}

	return result, nil
}

// RecognizeVoice validates, transcribes and extracts one recording.
func (s *Service) RecognizeVoice(ctx context.Context, upload dto.AudioUpload) (dto.VoiceSearchResponse, error) {
	if err := s.ValidateAudio(upload); err != nil {
		slog.WarnContext(ctx, "audio rejected", "filename", upload.Filename, "error", err)
		return dto.VoiceSearchResponse{}, err
	}

	transcription, err := s.Transcribe(ctx, upload)
	if err != nil {
		return dto.VoiceSearchResponse{}, err
	}

	slog.InfoContext(ctx, "audio transcribed", "length", len(transcription))

	return s.ExtractFromTranscription(ctx, transcription)
}

func (s *Service) complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Temperature: s.cfg.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	s.observe("chat", err)

	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *Service) observe(operation string, err error) {
	status := "ok"
	switch {
	case err == nil:
	case isRateLimited(err):
		status = "rate_limited"
	default:
		status = "error"
	}

	s.metrics.ObserveUpstream(operation, status)
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	return false
}

func isConnectionFailure(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

func upstreamError(kind exception.Kind, prefix string, err error) error {
	message := fmt.Sprintf("%s: %s", prefix, err)

	switch {
	case isRateLimited(err):
		message = rateLimitMessage
	case isConnectionFailure(err):
		message = connectionMessage
	}

	return exception.ApplicationError{
		Kind:       kind,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Cause:      err,
	}
}

func parseError(err error) error {
	return exception.ApplicationError{
		Kind:       exception.KindStructuredExtraction,
		StatusCode: http.StatusInternalServerError,
		Message:    parseMessage,
		Cause:      err,
	}
}
