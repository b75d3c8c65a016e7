package salon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/chairside/internal/contract"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

// Endpoint paths as exposed by the salon backend.
const (
	pathPendingAppointments = "/stylist/pending_appoitments"
	pathDoneAppointments    = "/stylist/done_appoitments"
	pathAppointmentDetail   = "/stylist/appoitment_detail/"
	pathStylistInfo         = "/stylist/info"
	pathAppointmentStatus   = "/stylist/appointments/"
	pathUpdateProfile       = "/stylist/update_info"
)

// RequestIDHeader carries the client-generated id of each call.
const RequestIDHeader = "X-Request-Id"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client provides access to the stylist endpoints of the salon backend.
type Client interface {
	// PendingAppointments returns the stylist's pending appointments in
	// server order.
	PendingAppointments(ctx context.Context) ([]domain.Appointment, error)

	// DoneAppointments returns the stylist's completed appointments.
	DoneAppointments(ctx context.Context) ([]domain.Appointment, error)

	// AppointmentItems returns the work items attached to an appointment.
	AppointmentItems(ctx context.Context, id domain.AppointmentID) ([]domain.WorkItem, error)

	// StylistInfo returns the profile of the authenticated stylist.
	StylistInfo(ctx context.Context) (*domain.Stylist, error)

	// UpdateAppointmentStatus sets the status of an appointment.
	UpdateAppointmentStatus(ctx context.Context, id domain.AppointmentID, status domain.AppointmentStatus) (*domain.Appointment, error)

	// UpdateProfile edits the authenticated stylist's profile and returns
	// it as stored.
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Stylist, error)
}

// httpClient implements Client over HTTP/JSON.
type httpClient struct {
	cfg      Config
	base     *url.URL
	loc      *time.Location
	http     *http.Client
	limiter  *rateLimiter
	observer Observer
}

// NewClient creates a Client for cfg. The config must have passed Validate.
func NewClient(cfg Config, observer Observer) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &httpClient{
		cfg:      cfg,
		base:     base,
		loc:      loc,
		http:     &http.Client{Transport: newTransport(cfg)},
		limiter:  newRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		observer: observer,
	}, nil
}

// newTransport builds the traced transport, adding bearer auth when a token
// is configured.
func newTransport(cfg Config) http.RoundTripper {
	var rt http.RoundTripper = otelhttp.NewTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost: 4,
	})
	if cfg.Token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
			Base:   rt,
		}
	}
	return rt
}

func (c *httpClient) PendingAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return c.listAppointments(ctx, OpPendingAppointments, pathPendingAppointments)
}

func (c *httpClient) DoneAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return c.listAppointments(ctx, OpDoneAppointments, pathDoneAppointments)
}

func (c *httpClient) listAppointments(ctx context.Context, op Operation, path string) ([]domain.Appointment, error) {
	var resp contract.AppointmentListResponse
	if err := c.call(ctx, op, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	appts, err := resp.ToDomain(c.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return appts, nil
}

func (c *httpClient) AppointmentItems(ctx context.Context, id domain.AppointmentID) ([]domain.WorkItem, error) {
	var resp contract.AppointmentDetailResponse
	path := pathAppointmentDetail + url.PathEscape(id.String())
	if err := c.call(ctx, OpAppointmentItems, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *httpClient) StylistInfo(ctx context.Context) (*domain.Stylist, error) {
	var resp contract.StylistInfoResponse
	if err := c.call(ctx, OpStylistInfo, http.MethodGet, pathStylistInfo, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Info.ToDomain(), nil
}

func (c *httpClient) UpdateAppointmentStatus(ctx context.Context, id domain.AppointmentID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	var resp contract.StatusUpdateResponse
	body := contract.StatusUpdateRequest{Status: string(status)}
	path := pathAppointmentStatus + url.PathEscape(id.String())
	if err := c.call(ctx, OpUpdateStatus, http.MethodPut, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.Appointment == nil {
		return nil, nil
	}
	a, err := resp.Appointment.ToDomain(c.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &a, nil
}

func (c *httpClient) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Stylist, error) {
	var resp contract.ProfileUpdateResponse
	body := contract.NewProfileUpdateRequest(update)
	if err := c.call(ctx, OpUpdateProfile, http.MethodPut, pathUpdateProfile, body, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("%w: profile missing from response", ErrInvalidResponse)
	}
	return resp.User.ToDomain(), nil
}

// call performs one logical request with timeout, throttling and retries.
// Only idempotent GETs are retried, and only on transport failures.
func (c *httpClient) call(ctx context.Context, op Operation, method, path string, body, out any) error {
	start := time.Now()

	reqID := RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		payload = data
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += c.cfg.MaxRetries
	}

	var (
		lastErr error
		status  int
		tried   int
	)
	for i := 0; i < attempts; i++ {
		tried++
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}
		status, lastErr = c.doRequest(ctx, method, path, reqID, payload, out)
		if lastErr == nil {
			c.observer.OnCallComplete(CallEvent{
				Op:        op,
				RequestID: reqID,
				Status:    status,
				Attempts:  tried,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		if ctx.Err() != nil || !isTransportError(lastErr) {
			break
		}
	}

	err := c.classify(ctx, lastErr, tried)
	c.observer.OnCallComplete(CallEvent{
		Op:        op,
		RequestID: reqID,
		Status:    status,
		Attempts:  tried,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *httpClient) doRequest(ctx context.Context, method, path, reqID string, payload []byte, out any) (int, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rdr)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, reqID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, &transportError{err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return httpResp.StatusCode, &transportError{err: fmt.Errorf("reading response: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		if httpResp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordTooManyRequests(httpResp.Header.Get("Retry-After"))
		}
		return httpResp.StatusCode, &ServerError{Status: httpResp.StatusCode, Body: summarize(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return httpResp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return httpResp.StatusCode, nil
}

func (c *httpClient) classify(ctx context.Context, err error, tried int) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
	}
	var te *transportError
	if errors.As(err, &te) {
		if tried > 1 {
			return fmt.Errorf("%w: %w: %v", ErrNetwork, ErrRetryExhausted, te.err)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, te.err)
	}
	return err
}

// transportError marks failures below the HTTP layer.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransportError(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// summarize extracts the backend's "msg" field, or a trimmed prefix of the body.
func summarize(body []byte) string {
	var m struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(body, &m) == nil && m.Msg != "" {
		return m.Msg
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "…"
	}
	return s
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrNetwork):
		return "NETWORK"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	}
	if status, ok := StatusOf(err); ok {
		return fmt.Sprintf("HTTP_%d", status)
	}
	return "UNKNOWN"
}

type ctxKey int

const ctxKeyRequestID ctxKey = iota

// WithRequestID attaches a request id that call sends as X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestIDFromContext returns the id set by WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
