package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/httputil"
)

const defaultClientTimeout = 10 * time.Second

// API is the slice of the flightsurety HTTP API a reporter fleet uses.
type API interface {
	IssueToken(ctx context.Context, addr domain.Address, role string) (string, error)
	RegisterReporter(ctx context.Context, token string, value domain.Amount) (*oraclemodels.Registration, error)
	Indices(ctx context.Context, token string) ([oraclemodels.IndexCount]domain.Index, error)
	SubmitReport(ctx context.Context, token string, report oraclemodels.Report) (oraclemodels.ReportOutcome, error)
}

// Client calls the HTTP API. Error envelopes come back as domain errors
// carrying the server's code and description.
type Client struct {
	baseURL    string
	adminToken string
	http       *http.Client
}

// NewClient returns a client for baseURL. adminToken is only needed to mint
// reporter tokens.
func NewClient(baseURL, adminToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminToken: adminToken,
		http:       httpClient,
	}
}

func (c *Client) IssueToken(ctx context.Context, addr domain.Address, role string) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"address": addr.String(), "role": role}
	headers := map[string]string{"X-Admin-Token": c.adminToken}
	if err := c.do(ctx, http.MethodPost, "/admin/tokens", headers, body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *Client) RegisterReporter(ctx context.Context, token string, value domain.Amount) (*oraclemodels.Registration, error) {
	var reg oraclemodels.Registration
	body := map[string]string{"value": value.String()}
	if err := c.do(ctx, http.MethodPost, "/v1/reporters", bearer(token), body, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (c *Client) Indices(ctx context.Context, token string) ([oraclemodels.IndexCount]domain.Index, error) {
	var resp struct {
		Indices [oraclemodels.IndexCount]domain.Index `json:"indices"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/reporters/me/indices", bearer(token), nil, &resp); err != nil {
		return resp.Indices, err
	}
	return resp.Indices, nil
}

func (c *Client) SubmitReport(ctx context.Context, token string, report oraclemodels.Report) (oraclemodels.ReportOutcome, error) {
	var outcome oraclemodels.ReportOutcome
	body := map[string]any{
		"index":     int(report.Index),
		"airline":   report.Airline.String(),
		"flight":    report.Flight,
		"timestamp": report.Timestamp,
		"status":    int(report.Status),
	}
	err := c.do(ctx, http.MethodPost, "/v1/reports", bearer(token), body, &outcome)
	return outcome, err
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope httputil.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("%s %s: status %d", method, path, resp.StatusCode))
		}
		return dErrors.New(dErrors.Code(envelope.Error), envelope.ErrorDescription)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
