package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/config"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/parser"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/repository"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/secrets"
)

// Parse sources reported alongside a suggestion.
const (
	ParseSourceLLM   = "llm"
	ParseSourceRules = "rules"
)

const parserSystemPrompt = `You extract cryptocurrency transactions from short free-form notes.
Respond with a single JSON object with exactly these keys:
"type" (one of "buy", "sell", "transfer"), "symbol" (ticker symbol, uppercase, empty string if unknown),
"amount" (number, 0 if unknown), "price" (unit price in USD as a number, 0 if unknown),
"note" (short cleaned-up restatement of the input).
Do not invent values that are not in the text.`

// completionClient is the subset of the OpenAI client used by the parser.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ParserService turns free-form transaction notes into structured
// suggestions. When a language model API key is available the model is asked
// first; the regex rules parser handles everything else and any model
// failure, so parsing always produces a best-effort suggestion.
type ParserService struct {
	cfg         config.ParserConfig
	settingRepo *repository.SettingRepository
	rules       *parser.RulesParser

	// newClient is swapped in tests to avoid real API calls.
	newClient func(apiKey string) completionClient
}

// NewParserService creates a new ParserService with the provided dependencies.
func NewParserService(cfg config.ParserConfig, settingRepo *repository.SettingRepository) *ParserService {
	return &ParserService{
		cfg:         cfg,
		settingRepo: settingRepo,
		rules:       parser.NewRulesParser(),
		newClient: func(apiKey string) completionClient {
			return openai.NewClient(apiKey)
		},
	}
}

// ParseText parses a free-form transaction description and reports which
// parser produced the suggestion.
func (s *ParserService) ParseText(ctx context.Context, text string) (model.TransactionSuggestion, string, error) {
	apiKey := s.resolveAPIKey(ctx)
	if apiKey != "" {
		suggestion, err := s.parseWithModel(ctx, apiKey, text)
		if err == nil {
			return suggestion, ParseSourceLLM, nil
		}
		log.Printf("Model parse failed, falling back to rules: %v", err)
	}

	return s.rules.Parse(text), ParseSourceRules, nil
}

// parseWithModel asks the language model for a JSON suggestion and validates
// the result.
func (s *ParserService) parseWithModel(ctx context.Context, apiKey, text string) (model.TransactionSuggestion, error) {
	client := s.newClient(apiKey)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parserSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return model.TransactionSuggestion{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.TransactionSuggestion{}, errors.New("chat completion returned no choices")
	}

	var suggestion model.TransactionSuggestion
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &suggestion); err != nil {
		return model.TransactionSuggestion{}, fmt.Errorf("failed to decode model response: %w", err)
	}

	switch suggestion.Type {
	case model.TransactionTypeBuy, model.TransactionTypeSell, model.TransactionTypeTransfer:
	default:
		suggestion.Type = model.TransactionTypeBuy
	}
	suggestion.Symbol = strings.ToUpper(strings.TrimSpace(suggestion.Symbol))
	if suggestion.Amount < 0 {
		suggestion.Amount = 0
	}
	if suggestion.Price < 0 {
		suggestion.Price = 0
	}

	return suggestion, nil
}

// resolveAPIKey returns the stored encrypted key when present and decryptable,
// otherwise the key from configuration. Empty means the model parser is off.
func (s *ParserService) resolveAPIKey(ctx context.Context) string {
	if s.cfg.SecretKey != "" {
		token, err := s.settingRepo.GetSetting(ctx, repository.SettingParserAPIKey)
		if err == nil {
			apiKey, err := secrets.Decrypt(s.cfg.SecretKey, token)
			if err == nil {
				return apiKey
			}
			log.Printf("Stored parser API key could not be decrypted: %v", err)
		} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
			log.Printf("Failed to load parser API key setting: %v", err)
		}
	}

	return s.cfg.APIKey
}

// SetAPIKey encrypts and stores the language model API key. An empty key
// removes the stored value. Returns apperrors.ErrSecretKeyMissing when no
// encryption key is configured.
func (s *ParserService) SetAPIKey(ctx context.Context, apiKey string) error {
	if s.cfg.SecretKey == "" {
		return apperrors.ErrSecretKeyMissing
	}

	if apiKey == "" {
		return s.settingRepo.DeleteSetting(ctx, repository.SettingParserAPIKey)
	}

	token, err := secrets.Encrypt(s.cfg.SecretKey, apiKey)
	if err != nil {
		return err
	}

	return s.settingRepo.SetSetting(ctx, repository.SettingParserAPIKey, token)
}

// KeyConfigured reports whether a model API key is currently available from
// either the stored setting or configuration.
func (s *ParserService) KeyConfigured(ctx context.Context) bool {
	return s.resolveAPIKey(ctx) != ""
}
