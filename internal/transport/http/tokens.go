package httptransport

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/httputil"
	"flightsurety/pkg/requestcontext"
)

var tokenRoles = []string{"", "airline", "passenger", "reporter", "owner"}

// TokenIssuer signs caller tokens.
type TokenIssuer interface {
	GenerateAccessToken(addr domain.Address, role string, expiresIn time.Duration) (string, error)
}

// TokenHandler issues caller tokens to operators.
type TokenHandler struct {
	issuer TokenIssuer
	ttl    time.Duration
	logger *slog.Logger
}

func NewTokenHandler(issuer TokenIssuer, ttl time.Duration, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{issuer: issuer, ttl: ttl, logger: logger}
}

// Register mounts token routes. The caller guards them with the admin token.
func (h *TokenHandler) Register(r chi.Router) {
	r.Post("/admin/tokens", h.HandleIssueToken)
}

// IssueTokenRequest is the body for POST /admin/tokens.
type IssueTokenRequest struct {
	Address    string `json:"address"`
	Role       string `json:"role"`
	TTLSeconds int64  `json:"ttl_seconds"`

	parsedAddress domain.Address
}

func (r *IssueTokenRequest) Normalize() {
	r.Address = strings.TrimSpace(r.Address)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

func (r *IssueTokenRequest) Validate() error {
	if r.Address == "" {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if !slices.Contains(tokenRoles, r.Role) {
		return dErrors.New(dErrors.CodeValidation, "role must be airline, passenger, reporter or owner")
	}
	if r.TTLSeconds < 0 {
		return dErrors.New(dErrors.CodeValidation, "ttl_seconds cannot be negative")
	}
	addr, err := domain.ParseAddress(r.Address)
	if err != nil {
		return err
	}
	r.parsedAddress = addr
	return nil
}

// TokenResponse is returned by POST /admin/tokens.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *TokenHandler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[IssueTokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	ttl := h.ttl
	if req.TTLSeconds > 0 {
		ttl = min(time.Duration(req.TTLSeconds)*time.Second, h.ttl)
	}
	token, err := h.issuer.GenerateAccessToken(req.parsedAddress, req.Role, ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "token issued",
		"event", "token_issued",
		"log_type", "audit",
		"request_id", requestID,
		"address", req.parsedAddress.String(),
		"role", req.Role,
	)
	httputil.WriteJSON(w, http.StatusCreated, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	})
}
