// Package handler exposes the surety operations over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	airlinemodels "flightsurety/internal/airline/models"
	flightmodels "flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/httputil"
	authmw "flightsurety/pkg/platform/middleware/auth"
	"flightsurety/pkg/requestcontext"
)

// Service is the surety application as seen by the transport.
type Service interface {
	AdmitAirline(ctx context.Context, candidate domain.Address) (*airlinemodels.AdmissionResult, error)
	FundAirline(ctx context.Context, value domain.Amount) (*airlinemodels.FundingResult, error)
	RegisterFlight(ctx context.Context, number string, timestamp int64, departure, arrival string) (*flightmodels.Flight, error)
	PurchaseInsurance(ctx context.Context, key domain.FlightKey, value domain.Amount) (*insurancemodels.Claim, error)
	RequestFlightStatus(ctx context.Context, airline domain.Address, flight string, timestamp int64) (*oraclemodels.StatusRequest, error)
	RegisterReporter(ctx context.Context, value domain.Amount) (*oraclemodels.Registration, error)
	GetMyIndices(ctx context.Context) ([oraclemodels.IndexCount]domain.Index, error)
	SubmitStatusReport(ctx context.Context, report oraclemodels.Report) (oraclemodels.ReportOutcome, error)
	Withdraw(ctx context.Context) (domain.Amount, error)
	SetOperational(ctx context.Context, on bool) error

	IsOperational(ctx context.Context) (bool, error)
	Airline(ctx context.Context, addr domain.Address) (*airlinemodels.Airline, error)
	AirlineCounts(ctx context.Context) (airlinemodels.Counts, error)
	Flight(ctx context.Context, key domain.FlightKey) (*flightmodels.Flight, error)
	Claims(ctx context.Context, key domain.FlightKey) ([]*insurancemodels.Claim, error)
	Balance(ctx context.Context, who domain.Address) (domain.Amount, error)
	Pool(ctx context.Context) (domain.Amount, error)
	StatusRequest(ctx context.Context, key domain.RequestKey) (*oraclemodels.Request, error)
}

// Handler wires surety endpoints to the service.
type Handler struct {
	service      Service
	jwtValidator authmw.JWTValidator
	logger       *slog.Logger
}

// New constructs a handler. Mutating routes authenticate with jwtValidator.
func New(service Service, jwtValidator authmw.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		service:      service,
		jwtValidator: jwtValidator,
		logger:       logger,
	}
}

// Register mounts the /v1 endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/operational", h.HandleGetOperational)
		r.Get("/airlines/counts", h.HandleAirlineCounts)
		r.Get("/airlines/{address}", h.HandleGetAirline)
		r.Get("/flights/{key}", h.HandleGetFlight)
		r.Get("/flights/{key}/claims", h.HandleGetClaims)
		r.Get("/status-requests/{key}", h.HandleGetStatusRequest)
		r.Get("/pool", h.HandleGetPool)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(h.jwtValidator, h.logger))
			r.Post("/airlines", h.HandleAdmitAirline)
			r.Post("/airlines/fund", h.HandleFundAirline)
			r.Post("/flights", h.HandleRegisterFlight)
			r.Post("/flights/{key}/insurance", h.HandlePurchaseInsurance)
			r.Post("/status-requests", h.HandleRequestStatus)
			r.Post("/reporters", h.HandleRegisterReporter)
			r.Get("/reporters/me/indices", h.HandleGetMyIndices)
			r.Post("/reports", h.HandleSubmitReport)
			r.Post("/withdrawals", h.HandleWithdraw)
			r.Get("/balance", h.HandleGetBalance)
			r.Put("/operational", h.HandleSetOperational)
		})
	})
}

// HandleAdmitAirline handles POST /v1/airlines.
func (h *Handler) HandleAdmitAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[AdmitAirlineRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.AdmitAirline(ctx, req.parsedCandidate)
	if err != nil {
		h.fail(ctx, w, "admit airline failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleFundAirline handles POST /v1/airlines/fund.
func (h *Handler) HandleFundAirline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ValueRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.service.FundAirline(ctx, req.parsedValue)
	if err != nil {
		h.fail(ctx, w, "fund airline failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleRegisterFlight handles POST /v1/flights.
func (h *Handler) HandleRegisterFlight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RegisterFlightRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	flight, err := h.service.RegisterFlight(ctx, req.Number, req.Timestamp, req.Departure, req.Arrival)
	if err != nil {
		h.fail(ctx, w, "register flight failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, flight)
}

// HandlePurchaseInsurance handles POST /v1/flights/{key}/insurance.
func (h *Handler) HandlePurchaseInsurance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key, err := domain.ParseFlightKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ValueRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	claim, err := h.service.PurchaseInsurance(ctx, key, req.parsedValue)
	if err != nil {
		h.fail(ctx, w, "purchase insurance failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, claim)
}

// HandleRequestStatus handles POST /v1/status-requests.
func (h *Handler) HandleRequestStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[StatusRequestRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.service.RequestFlightStatus(ctx, req.parsedAirline, req.Flight, req.Timestamp)
	if err != nil {
		h.fail(ctx, w, "status request failed", err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, res)
}

// HandleRegisterReporter handles POST /v1/reporters.
func (h *Handler) HandleRegisterReporter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ValueRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	reg, err := h.service.RegisterReporter(ctx, req.parsedValue)
	if err != nil {
		h.fail(ctx, w, "register reporter failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, reg)
}

// HandleGetMyIndices handles GET /v1/reporters/me/indices.
func (h *Handler) HandleGetMyIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := h.service.GetMyIndices(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "get indices failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, IndicesResponse{Indices: indices})
}

// HandleSubmitReport handles POST /v1/reports. Rejected reports are a 200
// with accepted=false.
func (h *Handler) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ReportRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	outcome, err := h.service.SubmitStatusReport(ctx, req.parsed)
	if err != nil {
		h.fail(ctx, w, "submit report failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, outcome)
}

// HandleWithdraw handles POST /v1/withdrawals.
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	amount, err := h.service.Withdraw(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "withdraw failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AmountResponse{Amount: amount})
}

// HandleSetOperational handles PUT /v1/operational.
func (h *Handler) HandleSetOperational(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[OperationalRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.service.SetOperational(ctx, *req.Operational); err != nil {
		h.fail(ctx, w, "set operational failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OperationalResponse{Operational: *req.Operational})
}

// HandleGetOperational handles GET /v1/operational.
func (h *Handler) HandleGetOperational(w http.ResponseWriter, r *http.Request) {
	on, err := h.service.IsOperational(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "get operational failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OperationalResponse{Operational: on})
}

func (h *Handler) HandleAirlineCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.AirlineCounts(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "count airlines failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, counts)
}

func (h *Handler) HandleGetAirline(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	airline, err := h.service.Airline(r.Context(), addr)
	if err != nil {
		h.fail(r.Context(), w, "get airline failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, airline)
}

func (h *Handler) HandleGetFlight(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseFlightKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	flight, err := h.service.Flight(r.Context(), key)
	if err != nil {
		h.fail(r.Context(), w, "get flight failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, flight)
}

func (h *Handler) HandleGetClaims(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseFlightKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	claims, err := h.service.Claims(r.Context(), key)
	if err != nil {
		h.fail(r.Context(), w, "list claims failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"claims": claims})
}

func (h *Handler) HandleGetStatusRequest(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseRequestKey(chi.URLParam(r, "key"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := h.service.StatusRequest(r.Context(), key)
	if err != nil {
		h.fail(r.Context(), w, "get status request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRequest(req))
}

// HandleGetBalance handles GET /v1/balance for the caller.
func (h *Handler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	balance, err := h.service.Balance(ctx, caller)
	if err != nil {
		h.fail(ctx, w, "get balance failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AmountResponse{Amount: balance})
}

func (h *Handler) HandleGetPool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.service.Pool(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "get pool failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AmountResponse{Amount: pool})
}

// fail logs at a level matching the error class and writes the response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"caller", requestcontext.Caller(ctx).String(),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
