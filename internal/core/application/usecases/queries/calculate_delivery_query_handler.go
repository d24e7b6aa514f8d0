package queries

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/core/domain/model/quote"
	"logistic/internal/core/ports"
	"logistic/internal/pkg/errs"
)

// CalculateDeliveryQueryHandler fans a calculation out to every configured
// carrier adapter concurrently and merges the surviving quotes. A slow or
// failing carrier never cancels the others: each adapter call is isolated,
// its failure is logged and the rest of the results still come back.
//
// Example:
//
//	handler := NewCalculateDeliveryQueryHandler(cleaner, adapters, logger)
//	estimate, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrNoQuotesAvailable) {
//	    // every carrier failed or priced nothing
//	}
type CalculateDeliveryQueryHandler struct {
	cleaner  ports.AddressCleaner
	adapters []ports.CarrierAdapter
	logger   *zap.Logger
	now      func() time.Time
}

// NewCalculateDeliveryQueryHandler creates the aggregation handler. The
// adapter slice order fixes the order quotes appear in the estimate.
func NewCalculateDeliveryQueryHandler(
	cleaner ports.AddressCleaner,
	adapters []ports.CarrierAdapter,
	logger *zap.Logger,
) CalculateDeliveryQueryHandler {
	return CalculateDeliveryQueryHandler{
		cleaner:  cleaner,
		adapters: adapters,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle prices the shipment with every carrier.
//
// The anchor date is computed once and shared, both addresses are cleaned
// once before any carrier is contacted (a failed clean aborts the request
// with zero outbound carrier calls), and the adapters then run
// concurrently. Successes merge in adapter order; if nothing survives the
// caller gets ErrNoQuotesAvailable.
func (h CalculateDeliveryQueryHandler) Handle(
	ctx context.Context,
	query CalculateDeliveryQuery,
) (quote.DeliveryEstimate, error) {
	if err := query.Validate(); err != nil {
		return quote.DeliveryEstimate{}, err
	}

	log := h.logger.With(zap.String("request_id", uuid.NewString()))

	shipmentDate, err := kernel.NewShipmentDate(query.RequestedDate(), h.now())
	if err != nil {
		return quote.DeliveryEstimate{}, err
	}

	fromCity, err := h.cleaner.CleanCity(ctx, query.From())
	if err != nil {
		return quote.DeliveryEstimate{}, err
	}
	toCity, err := h.cleaner.CleanCity(ctx, query.To())
	if err != nil {
		return quote.DeliveryEstimate{}, err
	}

	req := ports.QuoteRequest{
		From:         query.From(),
		To:           query.To(),
		FromCity:     fromCity,
		ToCity:       toCity,
		Packages:     query.Packages(),
		DeliveryType: query.DeliveryType(),
		ShipmentDate: shipmentDate,
		Currency:     query.Currency(),
		Lang:         query.Lang(),
	}

	// Each adapter writes into its own slot, so the merge below is
	// deterministic regardless of completion order.
	results := make([][]quote.Quote, len(h.adapters))
	failures := make([]error, len(h.adapters))

	var wg sync.WaitGroup
	for i, adapter := range h.adapters {
		wg.Add(1)
		go func(i int, adapter ports.CarrierAdapter) {
			defer wg.Done()
			results[i], failures[i] = adapter.Quote(ctx, req)
		}(i, adapter)
	}
	wg.Wait()

	merged := make([]quote.Quote, 0)
	for i, adapter := range h.adapters {
		if failures[i] != nil {
			log.Warn("carrier failed, continuing without it",
				zap.String("carrier", adapter.Name()),
				zap.Error(failures[i]),
			)
			continue
		}
		merged = append(merged, results[i]...)
	}

	if len(merged) == 0 {
		carriers := make([]string, 0, len(h.adapters))
		for _, adapter := range h.adapters {
			carriers = append(carriers, adapter.Name())
		}
		return quote.DeliveryEstimate{}, errs.NewNoQuotesAvailableError(carriers)
	}

	return quote.NewDeliveryEstimate(
		query.From(),
		query.To(),
		fromCity,
		toCity,
		query.Packages(),
		query.DeliveryType(),
		shipmentDate,
		merged,
	)
}
