// Package client is the REST consumer behind every console list view and
// edit modal. It translates domain operations into single HTTP calls and
// normalizes every response into the {success, data, error} envelope.
//
// Failure policy per operation:
//   - GetAll degrades to an empty list plus a default pagination block; the
//     error is reported on a separate channel (the second return value).
//   - Create/Update/Delete surface a typed *APICallError carrying the
//     server's message, for the caller to present and handle.
//
// Every request runs under a fixed client-side deadline. A deadline hit
// resolves as a Failure with the distinct "timeout" reason, so callers can
// tell a slow backend from one that answered with an error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/infra"
)

// DefaultTimeout is the fixed client-side deadline for one request.
const DefaultTimeout = 10 * time.Second

// RequestState tracks the lifecycle of the most recent call:
// Idle → Pending → {Success, Failure, Timeout}.
type RequestState int

const (
	StateIdle RequestState = iota
	StatePending
	StateSuccess
	StateFailure
	StateTimeout
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	case StateTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Failure reasons carried by APICallError.
const (
	ReasonHTTPStatus = "http_status" // non-2xx with a server-reported message
	ReasonNetwork    = "network"     // transport-level failure
	ReasonTimeout    = "timeout"     // client-side deadline hit
	ReasonDecode     = "decode"      // malformed response body
)

// APICallError is the typed error raised by mutation calls (and recorded,
// but swallowed, by list calls).
type APICallError struct {
	Op      string // "getAll" | "create" | "update" | "delete"
	Entity  string
	Reason  string
	Status  int // HTTP status when Reason == ReasonHTTPStatus
	Message string
}

func (e *APICallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Op, e.Entity, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Entity, e.Reason, e.Message)
}

// IsTimeout reports whether the call failed on the client-side deadline.
func (e *APICallError) IsTimeout() bool { return e.Reason == ReasonTimeout }

// Service is the per-entity REST client. One instance per list view /
// entity (medicines, customers, suppliers, categories, sales…).
type Service[T any] struct {
	base    string
	entity  string
	http    *http.Client
	breaker *infra.CircuitBreaker

	mu    sync.Mutex
	state RequestState
}

type Option func(*options)

type options struct {
	timeout time.Duration
	breaker *infra.CircuitBreaker
}

// WithTimeout overrides the fixed request deadline (tests use this).
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithBreaker routes every call through a circuit breaker so a downed
// backend fast-fails instead of burning the full deadline per call.
func WithBreaker(cb *infra.CircuitBreaker) Option {
	return func(o *options) { o.breaker = cb }
}

// New creates a Service for one entity, e.g. New[dto.CustomerResponse](base, "customers").
func New[T any](baseURL, entity string, opts ...Option) *Service[T] {
	o := options{timeout: DefaultTimeout}
	for _, fn := range opts {
		fn(&o)
	}
	return &Service[T]{
		base:    baseURL,
		entity:  entity,
		http:    &http.Client{Timeout: o.timeout},
		breaker: o.breaker,
		state:   StateIdle,
	}
}

// State returns the lifecycle state of the most recent request.
func (s *Service[T]) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service[T]) setState(st RequestState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// GetAll issues the list request. On any failure it returns an empty list
// and a default pagination block; the error is reported separately and the
// caller may ignore it and render the empty table.
func (s *Service[T]) GetAll(ctx context.Context, page, limit int, search string) (dto.ListPayload[T], error) {
	// The search term is arbitrary user text and must be query-escaped, or a
	// term containing "&" or "=" would smuggle extra parameters into the call.
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("search", search)
	listURL := fmt.Sprintf("%s/%s?%s", s.base, s.entity, q.Encode())

	var payload dto.ListPayload[T]
	err := s.do(ctx, "getAll", http.MethodGet, listURL, nil, &payload)
	if err != nil {
		log.Error().Err(err).Str("entity", s.entity).Msg("list fetch failed — degrading to empty result")
		return dto.ListPayload[T]{
			Data:       []T{},
			Pagination: dto.DefaultPagination(page, limit),
		}, err
	}
	if payload.Data == nil {
		payload.Data = []T{}
	}
	return payload, nil
}

// Create POSTs a new entity. Failures raise *APICallError.
func (s *Service[T]) Create(ctx context.Context, body any) (*T, error) {
	var payload dto.MutationPayload[T]
	endpoint := fmt.Sprintf("%s/%s", s.base, s.entity)
	if err := s.do(ctx, "create", http.MethodPost, endpoint, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// Update PUTs an existing entity. Failures raise *APICallError.
func (s *Service[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	var payload dto.MutationPayload[T]
	endpoint := fmt.Sprintf("%s/%s/%s", s.base, s.entity, id)
	if err := s.do(ctx, "update", http.MethodPut, endpoint, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// Delete removes an entity. Failures raise *APICallError.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/%s/%s", s.base, s.entity, id)
	return s.do(ctx, "delete", http.MethodDelete, endpoint, nil, nil)
}

// do executes one HTTP call and decodes the envelope into dataOut (which may
// be nil for delete). It owns the state machine transitions.
func (s *Service[T]) do(ctx context.Context, op, method, endpoint string, body, dataOut any) error {
	s.setState(StatePending)

	call := func() error { return s.roundTrip(ctx, op, method, endpoint, body, dataOut) }

	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(call)
		if errors.Is(err, infra.ErrCircuitOpen) {
			err = &APICallError{Op: op, Entity: s.entity, Reason: ReasonNetwork, Message: err.Error()}
		}
	} else {
		err = call()
	}

	switch {
	case err == nil:
		s.setState(StateSuccess)
	case isTimeoutErr(err):
		s.setState(StateTimeout)
	default:
		s.setState(StateFailure)
	}
	return err
}

func (s *Service[T]) roundTrip(ctx context.Context, op, method, endpoint string, body, dataOut any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APICallError{Op: op, Entity: s.entity, Reason: ReasonDecode, Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APICallError{Op: op, Entity: s.entity, Reason: ReasonNetwork, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		reason := ReasonNetwork
		if isDeadlineErr(err) {
			reason = ReasonTimeout
		}
		return &APICallError{Op: op, Entity: s.entity, Reason: reason, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the server-reported envelope error over a bare status line.
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var env dto.Envelope[json.RawMessage]
		if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		return &APICallError{Op: op, Entity: s.entity, Reason: ReasonHTTPStatus, Status: resp.StatusCode, Message: msg}
	}

	if dataOut == nil {
		return nil
	}

	var env dto.Envelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APICallError{Op: op, Entity: s.entity, Reason: ReasonDecode, Message: err.Error()}
	}
	if !env.Success {
		return &APICallError{Op: op, Entity: s.entity, Reason: ReasonHTTPStatus, Status: resp.StatusCode, Message: env.Error}
	}
	if env.Data == nil {
		return &APICallError{Op: op, Entity: s.entity, Reason: ReasonDecode, Message: "missing data payload"}
	}
	if err := json.Unmarshal(*env.Data, dataOut); err != nil {
		return &APICallError{Op: op, Entity: s.entity, Reason: ReasonDecode, Message: err.Error()}
	}
	return nil
}

func isTimeoutErr(err error) bool {
	var apiErr *APICallError
	return errors.As(err, &apiErr) && apiErr.IsTimeout()
}

// isDeadlineErr distinguishes deadline expiry from other transport errors.
func isDeadlineErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
