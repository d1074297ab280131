package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/models"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 30 * time.Second
)

var ErrMissingAPIKey = errors.New("gemini api key is required")

type GeminiConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
	Language string
}

// generator returns the raw JSON text of a structured generation call.
type generator interface {
	Generate(ctx context.Context, model string, prompt string, schema *genai.Schema) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) Generate(ctx context.Context, model string, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GeminiGateway calls the Gemini API once per request. It keeps no session
// and does not retry.
type GeminiGateway struct {
	gen      generator
	model    string
	timeout  time.Duration
	language string
	log      *logger.Logger
}

func NewGeminiGateway(ctx context.Context, cfg GeminiConfig, log *logger.Logger) (*GeminiGateway, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGeminiGateway(&genaiGenerator{client: client}, cfg, log), nil
}

func newGeminiGateway(gen generator, cfg GeminiConfig, log *logger.Logger) *GeminiGateway {
	if log == nil {
		log = logger.Nop()
	}
	gateway := &GeminiGateway{
		gen:      gen,
		model:    strings.TrimSpace(cfg.Model),
		timeout:  cfg.Timeout,
		language: strings.TrimSpace(cfg.Language),
		log:      log,
	}
	if gateway.model == "" {
		gateway.model = DefaultModel
	}
	if gateway.timeout <= 0 {
		gateway.timeout = DefaultTimeout
	}
	if gateway.language == "" {
		gateway.language = DefaultAdviceLanguage
	}
	return gateway
}

func (gateway *GeminiGateway) Model() string {
	return gateway.model
}

func (gateway *GeminiGateway) PredictNext(ctx context.Context, history []models.CycleRecord) (models.PredictionResult, error) {
	var result models.PredictionResult
	prompt := buildPredictionPrompt(history, gateway.language)
	if err := gateway.call(ctx, OpPredictNext, prompt, predictionSchema(), &result); err != nil {
		return models.PredictionResult{}, err
	}
	return result, nil
}

func (gateway *GeminiGateway) GenerateReport(ctx context.Context, cycle models.CycleRecord) (models.HealthReport, error) {
	var report models.HealthReport
	prompt := buildReportPrompt(cycle, gateway.language)
	if err := gateway.call(ctx, OpGenerateReport, prompt, reportSchema(), &report); err != nil {
		return models.HealthReport{}, err
	}
	return report, nil
}

func (gateway *GeminiGateway) call(ctx context.Context, op string, prompt string, schema *genai.Schema, target any) error {
	ctx, cancel := context.WithTimeout(ctx, gateway.timeout)
	defer cancel()

	gateway.log.Debug("advisor request", "op", op, "model", gateway.model, "prompt_chars", len(prompt))
	text, err := gateway.gen.Generate(ctx, gateway.model, prompt, schema)
	if err != nil {
		return wrapGatewayError(op, err)
	}
	if err := decodeStructuredReply(text, target); err != nil {
		return wrapGatewayError(op, err)
	}
	return nil
}

// decodeStructuredReply treats an empty reply as an empty object.
func decodeStructuredReply(text string, target any) error {
	payload := strings.TrimSpace(text)
	payload = strings.TrimPrefix(payload, "```json")
	payload = strings.TrimPrefix(payload, "```")
	payload = strings.TrimSuffix(payload, "```")
	payload = strings.TrimSpace(payload)
	if payload == "" {
		payload = "{}"
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
