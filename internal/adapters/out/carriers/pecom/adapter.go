package pecom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"logistic/internal/core/domain/model/quote"
	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"
)

// ServiceName identifies this carrier in the location cache.
const ServiceName = "pecom"

const (
	carrierURL  = "https://pecom.ru"
	carrierLogo = "https://pecom.ru/local/templates/main/img/logo.svg"

	displayAuto = "ПЭК (автоперевозка)"
	displayAvia = "ПЭК (авиаперевозка)"
)

// Adapter prices shipments with PEK's public calculator. The calculator
// needs no credentials; city identifiers come from the towns directory
// endpoint and are cached per cleaned city name.
type Adapter struct {
	calcURL    string
	townsURL   string
	httpClient *http.Client
	locations  ports.LocationCache
	logger     *zap.Logger
}

// NewAdapter creates the PEK adapter. calcURL and townsURL are full
// endpoint URLs; the two live on different hosts.
func NewAdapter(calcURL, townsURL string, locations ports.LocationCache, logger *zap.Logger) *Adapter {
	return &Adapter{
		calcURL:    calcURL,
		townsURL:   townsURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		locations:  locations,
		logger:     logger.With(zap.String("carrier", ServiceName)),
	}
}

// Name implements ports.CarrierAdapter.
func (a *Adapter) Name() string {
	return ServiceName
}

// calcResponse is the calculator's answer. The take, deliver and per-mode
// arrays mix numbers and strings, so elements are decoded lazily; index 2
// holds the price in each of them.
type calcResponse struct {
	Take     []json.RawMessage          `json:"take"`
	Deliver  []json.RawMessage          `json:"deliver"`
	Auto     []json.RawMessage          `json:"auto"`
	Avia     []json.RawMessage          `json:"avia"`
	Add1     map[string]json.RawMessage `json:"ADD_1"`
	Add2     map[string]json.RawMessage `json:"ADD_2"`
	Add3     map[string]json.RawMessage `json:"ADD_3"`
	Add4     map[string]json.RawMessage `json:"ADD_4"`
	Aperiods string                     `json:"aperiods"`
}

const priceIndex = 2

// Quote implements ports.CarrierAdapter.
func (a *Adapter) Quote(ctx context.Context, req ports.QuoteRequest) ([]quote.Quote, error) {
	fromID, err := a.cityID(ctx, req.FromCity)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	toID, err := a.cityID(ctx, req.ToCity)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}

	data, err := a.calculate(ctx, fromID, toID, req)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}

	base := a.basePrice(data, req)
	extras := a.additionalServices(data)
	periodMin, periodMax := extractPeriods(data.Aperiods, req.DeliveryType)

	quotes := make([]quote.Quote, 0, 2)
	for _, mode := range []struct {
		name   string
		values []json.RawMessage
	}{
		{displayAuto, data.Auto},
		{displayAvia, data.Avia},
	} {
		price, ok := arrayPrice(mode.values)
		if !ok {
			continue
		}
		q, err := quote.NewQuote(mode.name, base+extras+price, periodMin, periodMax, carrierURL, carrierLogo)
		if err != nil {
			return nil, errs.NewCarrierUnavailableError(ServiceName, err)
		}
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 {
		return nil, errs.NewCarrierUnavailableError(ServiceName,
			fmt.Errorf("calculator returned no transport prices"))
	}
	return quotes, nil
}

func (a *Adapter) calculate(ctx context.Context, fromID, toID int, req ports.QuoteRequest) (calcResponse, error) {
	pkg := req.Packages[0]

	// width, length, height and volume in metres, weight in kg, then two
	// zero flags the calculator expects for oversize and fragile cargo.
	place := []float64{
		pkg.WidthMetres(),
		pkg.LengthMetres(),
		pkg.HeightMetres(),
		pkg.VolumeCubicMetres(),
		pkg.WeightKg(),
		0,
		0,
	}

	params := url.Values{}
	for _, v := range place {
		params.Add("places[0][]", strconv.FormatFloat(v, 'f', -1, 64))
	}
	params.Set("take[town]", strconv.Itoa(fromID))
	params.Set("deliver[town]", strconv.Itoa(toID))

	var data calcResponse
	if err := a.getJSON(ctx, a.calcURL+"?"+params.Encode(), &data); err != nil {
		return calcResponse{}, err
	}
	return data, nil
}

// basePrice sums the door legs the route kind requires: courier delivery on
// the receiving side for warehouse-door, courier pickup for door-warehouse,
// both for door-door. Warehouse-warehouse has no door legs.
func (a *Adapter) basePrice(data calcResponse, req ports.QuoteRequest) quote.Kopecks {
	var base quote.Kopecks
	if !req.DeliveryType.DeliveryToWarehouse() {
		if price, ok := arrayPrice(data.Deliver); ok {
			base += price
		}
	}
	if !req.DeliveryType.PickupFromWarehouse() {
		if price, ok := arrayPrice(data.Take); ok {
			base += price
		}
	}
	return base
}

// additionalServices sums the mandatory extras (insurance and handling)
// across the ADD_1..ADD_4 blocks; key "3" holds each block's price.
func (a *Adapter) additionalServices(data calcResponse) quote.Kopecks {
	var total quote.Kopecks
	for _, block := range []map[string]json.RawMessage{data.Add1, data.Add2, data.Add3, data.Add4} {
		raw, ok := block["3"]
		if !ok {
			continue
		}
		if price, ok := parsePrice(raw); ok {
			total += price
		}
	}
	return total
}

// arrayPrice reads the price element of a take/deliver/mode array. Short
// arrays mean the leg or mode is not offered on the route.
func arrayPrice(values []json.RawMessage) (quote.Kopecks, bool) {
	if len(values) <= priceIndex {
		return 0, false
	}
	return parsePrice(values[priceIndex])
}

// parsePrice decodes a ruble amount the calculator renders either as a
// number or a quoted string, converting to kopecks.
func parsePrice(raw json.RawMessage) (quote.Kopecks, bool) {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return quote.Kopecks(math.Round(v * 100)), true
}

// cityID resolves a cleaned city name through the towns directory,
// consulting the cache first. Matching is a case-insensitive exact
// comparison against the directory names.
func (a *Adapter) cityID(ctx context.Context, city string) (int, error) {
	if cached, ok, err := a.locations.Get(ctx, ServiceName, city); err != nil {
		a.logger.Warn("location cache read failed", zap.Error(err))
	} else if ok {
		id, err := strconv.Atoi(cached)
		if err == nil {
			return id, nil
		}
		a.logger.Warn("malformed cached city id", zap.String("city", city), zap.String("cached", cached))
	}

	// region name -> city id -> city name
	var towns map[string]map[string]string
	if err := a.getJSON(ctx, a.townsURL, &towns); err != nil {
		return 0, err
	}

	for _, cities := range towns {
		for id, name := range cities {
			if !strings.EqualFold(name, city) {
				continue
			}
			numeric, err := strconv.Atoi(id)
			if err != nil {
				return 0, fmt.Errorf("malformed city id %q for %q", id, name)
			}
			if err := a.locations.Put(ctx, ServiceName, city, id); err != nil {
				a.logger.Warn("location cache write failed", zap.Error(err))
			}
			return numeric, nil
		}
	}
	return 0, errs.NewLocationNotFoundError(city)
}

func (a *Adapter) getJSON(ctx context.Context, rawURL string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", rawURL, httpResp.StatusCode)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
