// Package http exposes the calculation and admin endpoints over echo.
package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"logistic/internal/core/application/usecases/commands"
	"logistic/internal/core/application/usecases/queries"
	"logistic/internal/core/domain/model/kernel"
	"logistic/internal/core/domain/model/quote"
	"logistic/internal/pkg/errs"
)

// CalculateDeliveryHandler prices a shipment across all carriers.
type CalculateDeliveryHandler interface {
	Handle(ctx context.Context, query queries.CalculateDeliveryQuery) (quote.DeliveryEstimate, error)
}

// SetCredentialHandler stores carrier credentials.
type SetCredentialHandler interface {
	Handle(ctx context.Context, cmd commands.SetCredentialCommand) error
}

// InvalidateLocationHandler drops cached city resolutions.
type InvalidateLocationHandler interface {
	Handle(ctx context.Context, cmd commands.InvalidateLocationCommand) error
}

// Server wires the use case handlers into HTTP routes.
type Server struct {
	calculateHandler          CalculateDeliveryHandler
	setCredentialHandler      SetCredentialHandler
	invalidateLocationHandler InvalidateLocationHandler
}

// NewServer creates the HTTP server facade.
func NewServer(
	calculateHandler CalculateDeliveryHandler,
	setCredentialHandler SetCredentialHandler,
	invalidateLocationHandler InvalidateLocationHandler,
) *Server {
	return &Server{
		calculateHandler:          calculateHandler,
		setCredentialHandler:      setCredentialHandler,
		invalidateLocationHandler: invalidateLocationHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/public/calculate", s.Calculate)
	e.PUT("/api/v1/admin/credentials/:carrier", s.SetCredential)
	e.DELETE("/api/v1/admin/locations/:carrier/:query", s.InvalidateLocation)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PackageRequest describes one package: weight in grams, dimensions in
// millimetres.
type PackageRequest struct {
	Weight int64 `json:"weight"`
	Length int64 `json:"length"`
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// CalculateRequest is the calculation input. Date accepts RFC3339 or a
// bare Y-m-d day and may be omitted.
type CalculateRequest struct {
	From         string           `json:"from"`
	To           string           `json:"to"`
	Packages     []PackageRequest `json:"packages"`
	DeliveryType int              `json:"delivery_type"`
	Date         string           `json:"date,omitempty"`
	Currency     int              `json:"currency,omitempty"`
	Lang         string           `json:"lang,omitempty"`
}

// QuoteResponse is one carrier offer. Prices are integer kopecks.
type QuoteResponse struct {
	ServiceName  string `json:"service_name"`
	PriceKopecks int64  `json:"price_kopecks"`
	PeriodMin    int    `json:"period_min"`
	PeriodMax    int    `json:"period_max"`
	ServiceURL   string `json:"service_url"`
	ServiceLogo  string `json:"service_logo"`
}

// CalculateResponse is the merged estimate.
type CalculateResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	FromCity     string          `json:"from_city"`
	ToCity       string          `json:"to_city"`
	DeliveryType string          `json:"delivery_type"`
	ShipmentDate string          `json:"shipment_date"`
	Quotes       []QuoteResponse `json:"quotes"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Calculate handles POST /api/v1/public/calculate.
func (s *Server) Calculate(ctx echo.Context) error {
	var req CalculateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	packages := make([]kernel.Package, 0, len(req.Packages))
	for _, p := range req.Packages {
		pkg, err := kernel.NewPackage(
			kernel.Grams(p.Weight),
			kernel.Millimetres(p.Length),
			kernel.Millimetres(p.Width),
			kernel.Millimetres(p.Height),
		)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid package: " + err.Error(),
			})
		}
		packages = append(packages, pkg)
	}

	requestedDate, err := parseDate(req.Date)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid date: expected RFC3339 or YYYY-MM-DD",
		})
	}

	query, err := queries.NewCalculateDeliveryQuery(
		req.From,
		req.To,
		packages,
		kernel.DeliveryTypeFromInt(req.DeliveryType),
		requestedDate,
		req.Currency,
		req.Lang,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid calculation request: " + err.Error(),
		})
	}

	estimate, err := s.calculateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.calculateError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCalculateResponse(estimate))
}

func (s *Server) calculateError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrLocationNotFound),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrNoQuotesAvailable):
		return ctx.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    http.StatusBadGateway,
			Message: "No carrier could price this shipment",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Calculation failed",
		})
	}
}

// CredentialRequest is the admin credential body.
type CredentialRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
	Token  string `json:"token"`
}

// SetCredential handles PUT /api/v1/admin/credentials/:carrier.
func (s *Server) SetCredential(ctx echo.Context) error {
	var req CredentialRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSetCredentialCommand(ctx.Param("carrier"), req.Login, req.Secret, req.Token)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid credential data: " + err.Error(),
		})
	}

	if err := s.setCredentialHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to store credentials",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// InvalidateLocation handles DELETE /api/v1/admin/locations/:carrier/:query.
func (s *Server) InvalidateLocation(ctx echo.Context) error {
	// city names arrive percent-encoded in the path
	query, err := url.PathUnescape(ctx.Param("query"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid location query encoding",
		})
	}

	cmd, err := commands.NewInvalidateLocationCommand(ctx.Param("carrier"), query)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid invalidation request: " + err.Error(),
		})
	}

	if err := s.invalidateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to invalidate location",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// parseDate accepts an empty string, RFC3339, or a bare day.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toCalculateResponse(estimate quote.DeliveryEstimate) CalculateResponse {
	quotes := make([]QuoteResponse, 0, len(estimate.Quotes()))
	for _, q := range estimate.Quotes() {
		quotes = append(quotes, QuoteResponse{
			ServiceName:  q.CarrierName(),
			PriceKopecks: int64(q.Amount()),
			PeriodMin:    q.PeriodMin(),
			PeriodMax:    q.PeriodMax(),
			ServiceURL:   q.URL(),
			ServiceLogo:  q.Logo(),
		})
	}

	return CalculateResponse{
		From:         estimate.From(),
		To:           estimate.To(),
		FromCity:     estimate.FromCity(),
		ToCity:       estimate.ToCity(),
		DeliveryType: estimate.DeliveryType().String(),
		ShipmentDate: estimate.ShipmentDate().Day(),
		Quotes:       quotes,
	}
}
