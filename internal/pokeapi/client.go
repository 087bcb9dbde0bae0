package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	commonhttp "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/http"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/metrics"
)

// ErrNotFound marks a 404 from the upstream API before the caller maps it to
// the entity- or category-specific error.
var ErrNotFound = errors.New("pokeapi: not found")

// DataSource is the lookup surface consumed by the aggregation and suggestion
// services.
type DataSource interface {
	GetPokemon(ctx context.Context, name string) (*Pokemon, error)
	GetSpecies(ctx context.Context, name string) (*Species, error)
	GetType(ctx context.Context, name string) (*TypeRecord, error)
	ListPokemon(ctx context.Context, limit int) ([]string, error)
}

// Client is the PokéAPI REST client. All lookups are plain GETs returning JSON;
// responses may be served from the optional cache.
type Client struct {
	baseURL    string
	httpClient *commonhttp.Client
	cache      Cache
	logger     logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, cache Cache, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: commonhttp.NewClient(timeout),
		cache:      cache,
		logger: log.WithFields(map[string]interface{}{
			"component": "pokeapi",
		}),
	}
}

func (c *Client) GetPokemon(ctx context.Context, name string) (*Pokemon, error) {
	var out Pokemon
	if err := c.getJSON(ctx, "/pokemon/"+url.PathEscape(name), &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, commonerrors.NewEntityNotFoundError(name)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSpecies(ctx context.Context, name string) (*Species, error) {
	var out Species
	if err := c.getJSON(ctx, "/pokemon-species/"+url.PathEscape(name), &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, commonerrors.NewEntityNotFoundError(name)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetType(ctx context.Context, name string) (*TypeRecord, error) {
	var out TypeRecord
	if err := c.getJSON(ctx, "/type/"+url.PathEscape(name), &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, commonerrors.NewCategoryNotFoundError(name)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPokemon(ctx context.Context, limit int) ([]string, error) {
	var out PokemonList
	if err := c.getJSON(ctx, "/pokemon?limit="+strconv.Itoa(limit), &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, commonerrors.NewUpstreamUnavailableError("pokeapi", err)
		}
		return nil, err
	}
	names := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		names = append(names, r.Name)
	}
	return names, nil
}

// getJSON performs one cached GET against the upstream API. The raw body is
// what gets cached, so cached and uncached reads decode identically.
func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	cacheKey := "pokeapi:" + path

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, cacheKey); ok {
			metrics.UpstreamRequests.WithLabelValues("pokeapi", "cache_hit").Inc()
			return json.Unmarshal([]byte(body), v)
		}
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return commonerrors.NewUpstreamUnavailableError("pokeapi", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("pokeapi", "transport_error").Inc()
		return commonerrors.NewUpstreamUnavailableError("pokeapi", err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues("pokeapi", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return commonerrors.NewUpstreamUnavailableError("pokeapi",
			fmt.Errorf("status %d on %s", resp.StatusCode, path))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return commonerrors.NewUpstreamUnavailableError("pokeapi", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return commonerrors.NewUpstreamUnavailableError("pokeapi",
			fmt.Errorf("decode %s: %w", path, err))
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, string(body))
	}

	return nil
}
