package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/rules"
)

const defaultTimeout = 15 * time.Second

// Client talks to the validator service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a validator client. A nil httpClient gets a default with a timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CreateSession submits the configuration fields, and only those, to the validator.
func (c *Client) CreateSession(
	ctx context.Context,
	input domain.ConfigurationInput,
	idempotencyKey string,
) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession
	if err := c.postJSON(ctx, "/v1/checkout/sessions", input, idempotencyKey, &session); err != nil {
		return nil, err
	}

	if session.ID == "" {
		return nil, &domain.RejectionError{
			Code:    domain.RejectionUnavailable,
			Message: "validator returned no session id",
		}
	}

	return &session, nil
}

// ResolveSession asks the validator where the user should pay for sessionID.
func (c *Client) ResolveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession
	if err := c.get(ctx, "/v1/checkout/sessions/"+url.PathEscape(sessionID), &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Quote asks the validator to price input.
func (c *Client) Quote(ctx context.Context, input domain.ConfigurationInput) (domain.PriceQuote, error) {
	var body struct {
		AmountMinorUnits int64  `json:"amountMinorUnits"`
		RulesVersion     string `json:"rulesVersion"`
	}
	if err := c.postJSON(ctx, "/v1/quotes", input, "", &body); err != nil {
		return domain.PriceQuote{}, err
	}

	return domain.PriceQuote{
		AmountMinorUnits: body.AmountMinorUnits,
		Currency:         domain.GBP,
		RulesVersion:     body.RulesVersion,
	}, nil
}

// Rules fetches the validator's active rule table.
func (c *Client) Rules(ctx context.Context) (*domain.RuleTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/rules", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeRejection(resp)
	}

	return rules.DecodeJSON(resp.Body)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, idempotencyKey string, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeRejection(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RejectionError{
			Code:       domain.RejectionUnavailable,
			Message:    "validator returned an unreadable response",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return nil
}

func unreachable(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &domain.RejectionError{
		Code:    domain.RejectionUnavailable,
		Message: "validator could not be reached",
		Err:     err,
	}
}

// decodeRejection reads either error shape the validator may send:
// {"error":{"code","message","field"}} or {"error":"message"}.
func decodeRejection(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	rejection := &domain.RejectionError{
		Code:       codeForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Error) == 0 {
		rejection.Message = strings.TrimSpace(string(data))
		if rejection.Message == "" {
			rejection.Message = http.StatusText(resp.StatusCode)
		}
		return rejection
	}

	var plain string
	if err := json.Unmarshal(envelope.Error, &plain); err == nil {
		rejection.Message = plain
		return rejection
	}

	var structured struct {
		Code    domain.RejectionCode `json:"code"`
		Message string               `json:"message"`
		Field   string               `json:"field"`
	}
	if err := json.Unmarshal(envelope.Error, &structured); err == nil {
		if structured.Code != "" {
			rejection.Code = structured.Code
		}
		rejection.Message = structured.Message
		rejection.Field = structured.Field
		return rejection
	}

	rejection.Message = string(envelope.Error)
	return rejection
}

func codeForStatus(status int) domain.RejectionCode {
	switch {
	case status == http.StatusUnprocessableEntity:
		return domain.RejectionInvalidField
	case status == http.StatusConflict:
		return domain.RejectionConflict
	case status == http.StatusTooManyRequests:
		return domain.RejectionRateLimited
	case status == http.StatusBadGateway:
		return domain.RejectionPaymentError
	case status >= 400 && status < 500:
		return domain.RejectionMalformedRequest
	default:
		return domain.RejectionUnavailable
	}
}
