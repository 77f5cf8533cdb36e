// Package gemini resolves free-text company names to ticker symbols with a
// Gemini model. It is meant as the last resolver of a stocks.ResolverChain.
package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/stocks"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is the model asked for tickers.
const DefaultModel = "gemini-2.5-flash"

// tickerPattern is what an answer must look like to be accepted.
var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// generator is the part of genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Resolver is a stocks.Resolver asking a Gemini model for the ticker of a company.
type Resolver struct {
	models generator
	model  string
	config *genai.GenerateContentConfig
	log    zerolog.Logger
}

// New creates a Resolver using the Gemini API with apiKey.
func New(ctx context.Context, apiKey string, log zerolog.Logger) (*Resolver, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing Gemini's client: %w", err)
	}
	return newResolver(client.Models, log), nil
}

func newResolver(models generator, log zerolog.Logger) *Resolver {
	var temperature float32
	return &Resolver{
		models: models,
		model:  DefaultModel,
		log:    log.With().Str("component", "gemini").Logger(),
		config: &genai.GenerateContentConfig{
			Temperature: &temperature,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You map a company name, a brand or a fund name to the ticker symbol of its
			primary stock listing, preferably on a US exchange.
			Answer with the ticker symbol only, in upper case, without any other word.
			If you do not know, answer UNKNOWN.
			`}}},
		},
	}
}

// Resolve implements stocks.Resolver.
func (r *Resolver) Resolve(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty name", stocks.ErrResolution)
	}
	resp, err := r.models.GenerateContent(ctx, r.model, genai.Text(text), r.config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", stocks.ErrResolution, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no response from gemini for %q", stocks.ErrResolution, text)
	}

	answer := strings.ToUpper(strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text))
	answer = strings.Trim(answer, "`\"'.")
	if answer == "UNKNOWN" || !tickerPattern.MatchString(answer) {
		r.log.Debug().Str("text", text).Str("answer", answer).Msg("answer rejected")
		return "", fmt.Errorf("%w: gemini does not know %q", stocks.ErrResolution, text)
	}
	r.log.Debug().Str("text", text).Str("ticker", answer).Msg("resolved")
	return answer, nil
}
