// Package dadata implements the shared address-resolution step: a client for
// the DaData address-cleaning service that maps free-form addresses to
// canonical city names. Every successful resolution is cached by the exact
// raw address string, since the upstream call is billed per request.
package dadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"

	"go.uber.org/zap"
)

const cleanAddressPath = "/api/v1/clean/address"

// Client calls the DaData clean-address API and caches results through an
// injected AddressCleanCache. It implements ports.AddressCleaner.
type Client struct {
	baseURL    string
	token      string
	secret     string
	httpClient *http.Client
	cache      ports.AddressCleanCache
	logger     *zap.Logger
}

// NewClient creates a DaData client. The cache is required: address cleaning
// is the only billed external call in the system and is never issued twice
// for the same raw string.
func NewClient(baseURL, token, secret string, cache ports.AddressCleanCache, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:  cache,
		logger: logger.With(zap.String("component", "dadata")),
	}
}

type cleanRecord struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

// CleanCity resolves a free-form address to a canonical city name. A cache
// hit short-circuits the external call. When DaData returns no city, the
// record's region is used instead; an empty response is a
// LocationNotFoundError.
func (c *Client) CleanCity(ctx context.Context, rawAddress string) (string, error) {
	if rawAddress == "" {
		return "", errs.NewValueIsRequiredError("address")
	}

	if city, ok, err := c.cache.Get(ctx, rawAddress); err != nil {
		c.logger.Warn("address cache read failed", zap.Error(err))
	} else if ok {
		return city, nil
	}

	city, err := c.clean(ctx, rawAddress)
	if err != nil {
		return "", err
	}

	if err := c.cache.Put(ctx, rawAddress, city); err != nil {
		// The resolution itself succeeded; a failed cache write only costs
		// one extra billed call later.
		c.logger.Warn("address cache write failed", zap.String("address", rawAddress), zap.Error(err))
	}

	return city, nil
}

func (c *Client) clean(ctx context.Context, rawAddress string) (string, error) {
	payload, err := json.Marshal([]string{rawAddress})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+cleanAddressPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("X-Secret", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewLocationNotFoundErrorWithCause(rawAddress, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.NewLocationNotFoundErrorWithCause(
			rawAddress, fmt.Errorf("dadata returned status %d", resp.StatusCode))
	}

	var records []cleanRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return "", errs.NewLocationNotFoundErrorWithCause(rawAddress, err)
	}
	if len(records) == 0 {
		return "", errs.NewLocationNotFoundError(rawAddress)
	}

	city := records[0].City
	if city == "" {
		city = records[0].Region
	}
	if city == "" {
		return "", errs.NewLocationNotFoundError(rawAddress)
	}

	return city, nil
}
