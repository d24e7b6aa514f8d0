// Package cdek implements the CDEK carrier adapter: OAuth token exchange,
// city-code resolution through the suggestion API, and tariff calculation.
package cdek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/core/domain/model/quote"
	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"

	"go.uber.org/zap"
)

// ServiceName is the stable carrier identifier for credentials, caches and logs.
const ServiceName = "cdek"

const (
	calcPath    = "/v2/calculator/tariff"
	citiesPath  = "/v2/location/suggest/cities"
	displayName = "СДЭК"
	carrierURL  = "https://cdek.ru"
	carrierLogo = "https://upload.wikimedia.org/wikipedia/commons/1/14/CDEK_logo.svg"
)

// tariffCodes maps the delivery variant onto CDEK's warehouse/door tariff
// numbers. The mapping is part of the carrier contract and must not change.
var tariffCodes = map[kernel.DeliveryType]int{
	kernel.WarehouseWarehouse: 136,
	kernel.WarehouseDoor:      137,
	kernel.DoorWarehouse:      138,
	kernel.DoorDoor:           139,
}

// Adapter prices shipments with CDEK. It resolves city codes through the
// suggestion API (cached per input string) and issues one tariff calculation
// per request.
type Adapter struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenProvider
	locations  ports.LocationCache
	logger     *zap.Logger
}

// NewAdapter creates the CDEK adapter.
func NewAdapter(
	baseURL string,
	store ports.CredentialStore,
	locations ports.LocationCache,
	logger *zap.Logger,
) *Adapter {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	return &Adapter{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     NewTokenProvider(baseURL, httpClient, store),
		locations:  locations,
		logger:     logger.With(zap.String("carrier", ServiceName)),
	}
}

// Name implements ports.CarrierAdapter.
func (a *Adapter) Name() string {
	return ServiceName
}

// TokenProvider exposes the token lifecycle for the warm-up job.
func (a *Adapter) TokenProvider() *TokenProvider {
	return a.tokens
}

type calcLocation struct {
	Code int `json:"code"`
}

type calcPackage struct {
	Weight int `json:"weight"` // grams
	Length int `json:"length"` // centimetres
	Width  int `json:"width"`  // centimetres
	Height int `json:"height"` // centimetres
}

type calcRequest struct {
	TariffCode   int          `json:"tariff_code"`
	FromLocation calcLocation `json:"from_location"`
	ToLocation   calcLocation `json:"to_location"`
	Packages     []calcPackage `json:"packages"`
	Date         string       `json:"date,omitempty"`
	Currency     int          `json:"currency,omitempty"`
	Lang         string       `json:"lang,omitempty"`
}

type calcResponse struct {
	DeliverySum float64 `json:"delivery_sum"`
	PeriodMin   int     `json:"period_min"`
	PeriodMax   int     `json:"period_max"`
}

// Quote implements ports.CarrierAdapter. CDEK is a single-mode carrier and
// returns exactly one quote on success.
func (a *Adapter) Quote(ctx context.Context, req ports.QuoteRequest) ([]quote.Quote, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	fromCode, err := a.cityCode(ctx, token, req.FromCity)
	if err != nil {
		return nil, err
	}
	toCode, err := a.cityCode(ctx, token, req.ToCity)
	if err != nil {
		return nil, err
	}

	packages := make([]calcPackage, 0, len(req.Packages))
	for _, p := range req.Packages {
		packages = append(packages, calcPackage{
			Weight: int(p.Weight()),
			Length: int(p.Length()) / 10,
			Width:  int(p.Width()) / 10,
			Height: int(p.Height()) / 10,
		})
	}

	payload := calcRequest{
		TariffCode:   tariffCode(req.DeliveryType),
		FromLocation: calcLocation{Code: fromCode},
		ToLocation:   calcLocation{Code: toCode},
		Packages:     packages,
		Date:         req.ShipmentDate.ISO8601(),
		Currency:     req.Currency,
		Lang:         req.Lang,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, a.baseURL+calcPath, bytes.NewReader(body))
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewCarrierUnavailableError(
			ServiceName, fmt.Errorf("calculator returned status %d", resp.StatusCode))
	}

	var calc calcResponse
	if err := json.NewDecoder(resp.Body).Decode(&calc); err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}

	q, err := quote.NewQuote(
		displayName,
		quote.Kopecks(math.Round(calc.DeliverySum*100)),
		calc.PeriodMin,
		calc.PeriodMax,
		carrierURL,
		carrierLogo,
	)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}

	return []quote.Quote{q}, nil
}

func tariffCode(t kernel.DeliveryType) int {
	if code, ok := tariffCodes[t]; ok {
		return code
	}
	return tariffCodes[kernel.WarehouseWarehouse]
}

type citySuggestion struct {
	Code int `json:"code"`
}

// cityCode resolves a city name to CDEK's numeric location code, preferring
// the process-wide cache over the suggestion API.
func (a *Adapter) cityCode(ctx context.Context, token, city string) (int, error) {
	if cached, ok, err := a.locations.Get(ctx, ServiceName, city); err != nil {
		a.logger.Warn("location cache read failed", zap.Error(err))
	} else if ok {
		var code int
		if _, err := fmt.Sscanf(cached, "%d", &code); err == nil {
			return code, nil
		}
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		a.baseURL+citiesPath+"?name="+url.QueryEscape(city), nil)
	if err != nil {
		return 0, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return 0, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errs.NewCarrierUnavailableError(
			ServiceName, fmt.Errorf("city suggest returned status %d", resp.StatusCode))
	}

	var suggestions []citySuggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return 0, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	if len(suggestions) == 0 {
		return 0, errs.NewCarrierUnavailableError(
			ServiceName, errs.NewLocationNotFoundError(city))
	}

	code := suggestions[0].Code
	if err := a.locations.Put(ctx, ServiceName, city, fmt.Sprintf("%d", code)); err != nil {
		a.logger.Warn("location cache write failed", zap.String("city", city), zap.Error(err))
	}

	return code, nil
}
