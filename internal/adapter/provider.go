// Package adapter holds clients for the external services the application
// consumes. The primary one is the recipe provider ([ProviderClient]), a
// spoonacular-style HTTP API the import pipeline pulls random recipes from.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/utils"
	"github.com/plateup/plateup-server/models"
)

// ProviderClient talks to the external recipe provider over HTTP/JSON.
// It implements the provider interface the import service consumes.
type ProviderClient struct {
	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger
}

// NewProviderClient constructs a [ProviderClient] for the provider described
// by cfg. The base URL is normalised and validated; the API key is attached
// to every request as the provider's apiKey query parameter.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewProviderClient(cfg config.Provider, logger *logger.Logger) (*ProviderClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(baseURL)

	return &ProviderClient{
		client: client,
		apiKey: cfg.APIKey,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchRandomRecipes requests number random recipes from
// GET /recipes/random and returns the decoded batch. Returns an error if the
// request fails, the provider responds with a non-2xx status, or the body
// cannot be decoded.
func (p *ProviderClient) FetchRandomRecipes(ctx context.Context, number int) ([]models.ProviderRecipe, error) {
	log := logger.FromContext(ctx)

	var batch models.ProviderRecipeBatch

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("number", strconv.Itoa(number)).
		SetQueryParam("apiKey", p.apiKey).
		SetResult(&batch).
		Get("/recipes/random")
	if err != nil {
		log.Err(err).Str("func", "*ProviderClient.FetchRandomRecipes").Msg("provider request failed")
		return nil, fmt.Errorf("random recipes request: %w", err)
	}
	if resp.IsError() {
		log.Error().Str("func", "*ProviderClient.FetchRandomRecipes").Int("status", resp.StatusCode()).Msg("provider returned error status")
		return nil, fmt.Errorf("random recipes request: provider returned %s", resp.Status())
	}

	return batch.Recipes, nil
}
