package dawa

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client talks to DAWA, the Danish public address registry at
// api.dataforsyningen.dk.
type Client struct {
	baseURL    string
	perPage    int
	delay      time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new DAWA client
func NewClient(baseURL string, perPage int, delay time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		perPage: perPage,
		delay:   delay,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Kommune is one entry in the DAWA municipality register
type Kommune struct {
	Kode string `json:"kode"`
	Navn string `json:"navn"`
}

// Address is the "mini" address structure. Only the fields the output
// modes need are decoded; NDJSON output keeps the raw message.
type Address struct {
	ID         string `json:"id"`
	Vejnavn    string `json:"vejnavn"`
	Husnr      string `json:"husnr"`
	Postnr     string `json:"postnr"`
	Betegnelse string `json:"betegnelse"`
}

// LookupKommune resolves a municipality name to its code. An exact
// case-insensitive match wins; otherwise the first result is taken and
// a warning is logged, matching how ambiguous names have always been
// handled.
func (c *Client) LookupKommune(navn string) (*Kommune, error) {
	query := url.Values{}
	query.Set("navn", navn)

	resp, err := c.httpClient.Get(c.baseURL + "/kommuner?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to look up kommune: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kommune API returned status %d", resp.StatusCode)
	}

	var kommuner []Kommune
	if err := json.NewDecoder(resp.Body).Decode(&kommuner); err != nil {
		return nil, fmt.Errorf("failed to parse kommune response: %w", err)
	}

	if len(kommuner) == 0 {
		return nil, fmt.Errorf("no kommune found with name %q", navn)
	}

	for i := range kommuner {
		if strings.EqualFold(kommuner[i].Navn, navn) {
			return &kommuner[i], nil
		}
	}

	chosen := &kommuner[0]
	if len(kommuner) > 1 {
		c.logger.Warn("No exact kommune match, picking first result",
			zap.String("requested", navn),
			zap.String("chosen", chosen.Navn),
			zap.String("kode", chosen.Kode))
	}
	return chosen, nil
}

// StreamAddresses fetches all mini addresses for a kommune page by
// page, calling fn with the raw JSON of each address. It stops on an
// empty page, a short page, or an HTTP 400 past the last page (DAWA
// answers 400 when asked for a page beyond the data).
func (c *Client) StreamAddresses(kommunekode string, fn func(raw json.RawMessage) error) error {
	page := 1

	for {
		query := url.Values{}
		query.Set("kommunekode", kommunekode)
		query.Set("struktur", "mini")
		query.Set("per_side", strconv.Itoa(c.perPage))
		query.Set("side", strconv.Itoa(page))

		c.logger.Info("Fetching address page",
			zap.String("kommunekode", kommunekode),
			zap.Int("page", page))

		resp, err := c.httpClient.Get(c.baseURL + "/adresser?" + query.Encode())
		if err != nil {
			return fmt.Errorf("failed to fetch addresses: %w", err)
		}

		if resp.StatusCode == http.StatusBadRequest {
			// Past the last page.
			resp.Body.Close()
			c.logger.Info("API returned 400, assuming no more pages",
				zap.Int("page", page))
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("address API returned status %d", resp.StatusCode)
		}

		var items []json.RawMessage
		err = json.NewDecoder(resp.Body).Decode(&items)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse address page %d: %w", page, err)
		}

		if len(items) == 0 {
			c.logger.Info("No more addresses", zap.Int("page", page))
			return nil
		}

		c.logger.Info("Address page fetched",
			zap.Int("page", page),
			zap.Int("count", len(items)))

		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}

		if len(items) < c.perPage {
			return nil
		}

		page++
		time.Sleep(c.delay)
	}
}
