package dellin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/core/domain/model/quote"
	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"
)

// ServiceName identifies this carrier in the credential store and the
// location cache.
const ServiceName = "dellin"

const (
	displayName = "Деловые Линии"
	carrierURL  = "https://www.dellin.ru"
	carrierLogo = "https://upload.wikimedia.org/wikipedia/commons/thumb/b/b4/Dellin_Logo_Black.svg/244px-Dellin_Logo_Black.svg.png"

	kladrPath = "/v2/public/kladr.json"
	calcPath  = "/v2/calculator.json"

	// insuranceStatedValue is the declared cargo value sent with every
	// calculation. The public calculator requires a non-zero value.
	insuranceStatedValue = 1000.0
)

// Transport modes, priced in this order.
const (
	ModeAuto    = "auto"
	ModeExpress = "express"
	ModeAvia    = "avia"
)

var modes = []string{ModeAuto, ModeExpress, ModeAvia}

// Adapter prices shipments with Dellin. A single request fans over the
// transport modes and yields up to one quote per mode; modes without an
// eligible terminal on a terminal-bound side are skipped.
type Adapter struct {
	baseURL    string
	httpClient *http.Client
	store      ports.CredentialStore
	locations  ports.LocationCache
	terminals  *TerminalDirectory
	logger     *zap.Logger
}

// NewAdapter creates the Dellin adapter.
func NewAdapter(
	baseURL string,
	store ports.CredentialStore,
	locations ports.LocationCache,
	terminals *TerminalDirectory,
	logger *zap.Logger,
) *Adapter {
	return &Adapter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		locations:  locations,
		terminals:  terminals,
		logger:     logger.With(zap.String("carrier", ServiceName)),
	}
}

// Name implements ports.CarrierAdapter.
func (a *Adapter) Name() string {
	return ServiceName
}

// Terminals exposes the directory for the nightly reload job.
func (a *Adapter) Terminals() *TerminalDirectory {
	return a.terminals
}

type calcRequest struct {
	Appkey   string       `json:"appkey"`
	Delivery calcDelivery `json:"delivery"`
	Cargo    calcCargo    `json:"cargo"`
	Payment  calcPayment  `json:"payment"`
}

type calcDelivery struct {
	DeliveryType calcDeliveryType `json:"deliveryType"`
	Derival      calcDerival      `json:"derival"`
	Arrival      calcArrival      `json:"arrival"`
}

type calcDeliveryType struct {
	Type string `json:"type"`
}

type calcDerival struct {
	ProduceDate string `json:"produceDate"`
	Variant     string `json:"variant"`
	TerminalID  string `json:"terminalID,omitempty"`
}

type calcArrival struct {
	Variant    string `json:"variant"`
	TerminalID string `json:"terminalID,omitempty"`
}

type calcCargo struct {
	Quantity    int           `json:"quantity"`
	Length      float64       `json:"length"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Weight      float64       `json:"weight"`
	TotalVolume float64       `json:"totalVolume"`
	TotalWeight float64       `json:"totalWeight"`
	Insurance   calcInsurance `json:"insurance"`
}

type calcInsurance struct {
	StatedValue float64 `json:"statedValue"`
	Term        bool    `json:"term"`
}

type calcPayment struct {
	Type        string `json:"type"`
	PaymentCity string `json:"paymentCity"`
}

type calcResponse struct {
	Metadata struct {
		Status int `json:"status"`
	} `json:"metadata"`
	Data json.RawMessage `json:"data"`
}

type calcData struct {
	Price      flexNumber `json:"price"`
	OrderDates struct {
		GiveoutFromOspReceiver    string `json:"giveoutFromOspReceiver"`
		GiveoutFromOspReceiverMax string `json:"giveoutFromOspReceiverMax"`
	} `json:"orderDates"`
	DeliveryTerm flexNumber `json:"deliveryTerm"`
}

// flexNumber decodes a JSON number that the calculator sometimes quotes as
// a string.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*n = flexNumber(v)
	return nil
}

// Quote implements ports.CarrierAdapter.
func (a *Adapter) Quote(ctx context.Context, req ports.QuoteRequest) ([]quote.Quote, error) {
	appkey, err := a.appkey(ctx)
	if err != nil {
		return nil, err
	}

	fromCode, err := a.cityCode(ctx, appkey, req.FromCity)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}
	toCode, err := a.cityCode(ctx, appkey, req.ToCity)
	if err != nil {
		return nil, errs.NewCarrierUnavailableError(ServiceName, err)
	}

	derivalByTerminal := req.DeliveryType.PickupFromWarehouse()
	arrivalByTerminal := req.DeliveryType.DeliveryToWarehouse()

	pkg := req.Packages[0]

	quotes := make([]quote.Quote, 0, len(modes))
	for _, mode := range modes {
		var fromTerminal, toTerminal string
		if derivalByTerminal {
			id, ok := a.terminals.Lookup(fromCode, mode)
			if !ok {
				a.logger.Debug("no derival terminal, skipping mode",
					zap.String("mode", mode), zap.String("city_code", fromCode))
				continue
			}
			fromTerminal = id
		}
		if arrivalByTerminal {
			id, ok := a.terminals.Lookup(toCode, mode)
			if !ok {
				a.logger.Debug("no arrival terminal, skipping mode",
					zap.String("mode", mode), zap.String("city_code", toCode))
				continue
			}
			toTerminal = id
		}

		q, ok, err := a.quoteMode(ctx, modeQuote{
			appkey:       appkey,
			mode:         mode,
			fromCode:     fromCode,
			fromTerminal: fromTerminal,
			toTerminal:   toTerminal,
			pkg:          pkg,
			deliveryType: req.DeliveryType,
			shipmentDate: req.ShipmentDate,
		})
		if err != nil {
			a.logger.Warn("mode calculation failed", zap.String("mode", mode), zap.Error(err))
			continue
		}
		if ok {
			quotes = append(quotes, q)
		}
	}

	if len(quotes) == 0 {
		return nil, errs.NewCarrierUnavailableError(ServiceName,
			fmt.Errorf("no transport mode produced a price"))
	}
	return quotes, nil
}

type modeQuote struct {
	appkey       string
	mode         string
	fromCode     string
	fromTerminal string
	toTerminal   string
	pkg          kernel.Package
	deliveryType kernel.DeliveryType
	shipmentDate kernel.ShipmentDate
}

func (a *Adapter) quoteMode(ctx context.Context, mq modeQuote) (quote.Quote, bool, error) {
	derivalVariant, arrivalVariant := "address", "address"
	if mq.fromTerminal != "" {
		derivalVariant = "terminal"
	}
	if mq.toTerminal != "" {
		arrivalVariant = "terminal"
	}

	payload := calcRequest{
		Appkey: mq.appkey,
		Delivery: calcDelivery{
			DeliveryType: calcDeliveryType{Type: mq.mode},
			Derival: calcDerival{
				ProduceDate: mq.shipmentDate.Day(),
				Variant:     derivalVariant,
				TerminalID:  mq.fromTerminal,
			},
			Arrival: calcArrival{
				Variant:    arrivalVariant,
				TerminalID: mq.toTerminal,
			},
		},
		Cargo: calcCargo{
			Quantity:    1,
			Length:      mq.pkg.LengthMetres(),
			Width:       mq.pkg.WidthMetres(),
			Height:      mq.pkg.HeightMetres(),
			Weight:      mq.pkg.WeightKg(),
			TotalVolume: mq.pkg.VolumeCubicMetres(),
			TotalWeight: mq.pkg.WeightKg(),
			Insurance: calcInsurance{
				StatedValue: insuranceStatedValue,
				Term:        true,
			},
		},
		Payment: calcPayment{
			Type:        "cash",
			PaymentCity: mq.fromCode,
		},
	}

	var resp calcResponse
	if err := a.postJSON(ctx, calcPath, payload, &resp); err != nil {
		return quote.Quote{}, false, err
	}
	if resp.Metadata.Status != 200 {
		return quote.Quote{}, false, fmt.Errorf("calculator status %d", resp.Metadata.Status)
	}

	var data calcData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return quote.Quote{}, false, fmt.Errorf("parse calculator data: %w", err)
	}

	price := float64(data.Price)
	if price == 0 {
		price = a.modePrice(resp.Data, mq.mode)
	}
	if price == 0 {
		a.logger.Debug("no price in calculator response", zap.String("mode", mq.mode))
		return quote.Quote{}, false, nil
	}

	periodMin, periodMax := a.periods(data, mq.shipmentDate)

	q, err := quote.NewQuote(
		fmt.Sprintf("%s (%s)", displayName, mq.mode),
		quote.Kopecks(math.Round(price*100)),
		periodMin,
		periodMax,
		carrierURL,
		carrierLogo,
	)
	if err != nil {
		return quote.Quote{}, false, err
	}
	return q, true, nil
}

// modePrice digs the per-mode price out of the data object when the top
// level one is absent, e.g. data.avia.price.
func (a *Adapter) modePrice(data json.RawMessage, mode string) float64 {
	var byMode map[string]json.RawMessage
	if err := json.Unmarshal(data, &byMode); err != nil {
		return 0
	}
	raw, ok := byMode[mode]
	if !ok {
		return 0
	}
	var nested struct {
		Price flexNumber `json:"price"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return 0
	}
	return float64(nested.Price)
}

// periods derives transit bounds in whole days from the promised giveout
// dates. When the dates are absent or unparsable both bounds fall back to
// the carrier's deliveryTerm.
func (a *Adapter) periods(data calcData, shipmentDate kernel.ShipmentDate) (int, int) {
	fallback := int(data.DeliveryTerm)

	minDay, errMin := parseGiveoutDate(data.OrderDates.GiveoutFromOspReceiver)
	maxDay, errMax := parseGiveoutDate(data.OrderDates.GiveoutFromOspReceiverMax)
	if errMin != nil || errMax != nil {
		return fallback, fallback
	}
	return shipmentDate.DaysUntil(minDay), shipmentDate.DaysUntil(maxDay)
}

// parseGiveoutDate handles the "2006-01-02 15:04:05" timestamps the
// calculator returns; only the date part matters.
func parseGiveoutDate(s string) (time.Time, error) {
	day, _, _ := strings.Cut(s, " ")
	return time.Parse("2006-01-02", day)
}

func (a *Adapter) appkey(ctx context.Context) (string, error) {
	cred, err := a.store.Get(ctx, ServiceName)
	if err != nil {
		return "", errs.NewCredentialErrorWithCause(ServiceName, err)
	}
	if cred.Token == "" {
		return "", errs.NewCredentialError(ServiceName)
	}
	return cred.Token, nil
}

// cityCode resolves a cleaned city name to its KLADR code, consulting the
// cache first.
func (a *Adapter) cityCode(ctx context.Context, appkey, city string) (string, error) {
	if code, ok, err := a.locations.Get(ctx, ServiceName, city); err != nil {
		a.logger.Warn("location cache read failed", zap.Error(err))
	} else if ok {
		return code, nil
	}

	var resp struct {
		Cities []struct {
			Code string `json:"code"`
		} `json:"cities"`
	}
	payload := map[string]string{"appkey": appkey, "q": city}
	if err := a.postJSON(ctx, kladrPath, payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Cities) == 0 {
		return "", errs.NewLocationNotFoundError(city)
	}

	code := resp.Cities[0].Code
	if err := a.locations.Put(ctx, ServiceName, city, code); err != nil {
		a.logger.Warn("location cache write failed", zap.Error(err))
	}
	return code, nil
}

func (a *Adapter) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("post %s: unexpected status %d", path, httpResp.StatusCode)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}
