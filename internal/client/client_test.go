package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/infra"
)

func TestGetAll_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "jo", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"data":[{"id":"c1","name":"Jones","active":true}],` +
			`"pagination":{"currentPage":2,"totalPages":5,"totalItems":90,"itemsPerPage":20}}}`))
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers")
	page, err := svc.GetAll(context.Background(), 2, 20, "jo")

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Jones", page.Data[0].Name)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, int64(90), page.Pagination.TotalItems)
	assert.Equal(t, StateSuccess, svc.State())
}

func TestGetAll_EscapesSearchTerm(t *testing.T) {
	var gotSearch string
	var gotLimit []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		gotLimit = r.URL.Query()["limit"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"data":[],` +
			`"pagination":{"currentPage":1,"totalPages":1,"totalItems":0,"itemsPerPage":20}}}`))
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers")

	// Free-text terms with reserved characters must arrive verbatim and must
	// not smuggle extra query parameters alongside the real ones.
	for _, term := range []string{"a&limit=999", "50% off", "b=c #1", "two words"} {
		_, err := svc.GetAll(context.Background(), 1, 20, term)
		require.NoError(t, err, "term %q", term)
		assert.Equal(t, term, gotSearch, "term %q", term)
		assert.Equal(t, []string{"20"}, gotLimit, "term %q", term)
	}
}

func TestGetAll_ServerErrorDegradesToEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers")
	page, err := svc.GetAll(context.Background(), 1, 20, "")

	// No exception propagated as a panic; the caller gets a usable empty
	// result plus the error on its own channel.
	require.Error(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, dto.DefaultPagination(1, 20), page.Pagination)
	assert.Equal(t, StateFailure, svc.State())
}

func TestCreate_FailureRaisesTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"name already taken"}`))
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers")
	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Dup"})

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "create", apiErr.Op)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "name already taken", apiErr.Message)
	assert.False(t, apiErr.IsTimeout())
	assert.Equal(t, StateFailure, svc.State())
}

func TestCreate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"message":"Customer created","data":{"id":"c9","name":"New","active":true}}}`))
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers")
	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "New"})

	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
	assert.Equal(t, StateSuccess, svc.State())
}

func TestDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/customers/c1", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers")
	require.NoError(t, svc.Delete(context.Background(), "c1"))
}

func TestTimeout_DistinctFromServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	svc := New[dto.CustomerResponse](srv.URL, "customers", WithTimeout(30*time.Millisecond))
	_, err := svc.GetAll(context.Background(), 1, 20, "")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTimeout())
	assert.Equal(t, ReasonTimeout, apiErr.Reason)
	assert.Equal(t, StateTimeout, svc.State())
}

func TestNetworkError_ReasonNetwork(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc := New[dto.CustomerResponse](url, "customers")
	err := svc.Delete(context.Background(), "c1")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ReasonNetwork, apiErr.Reason)
}

func TestFixtureDashboard_NoDelayByDefault(t *testing.T) {
	start := time.Now()
	stats, err := FixtureDashboardSource{}.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(248), stats.TotalMedicines)
	assert.Less(t, time.Since(start), 40*time.Millisecond,
		"zero-latency fixture must answer immediately")
}

func TestBreaker_FastFailsWhenOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute})
	svc := New[dto.CustomerResponse](srv.URL, "customers", WithBreaker(cb))

	for i := 0; i < 2; i++ {
		_, err := svc.GetAll(context.Background(), 1, 20, "")
		require.Error(t, err)
	}
	require.Equal(t, infra.CBOpen, cb.State())

	// Breaker now short-circuits without touching the network.
	_, err := svc.GetAll(context.Background(), 1, 20, "")
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ReasonNetwork, apiErr.Reason)
	assert.Contains(t, apiErr.Message, infra.ErrCircuitOpen.Error())
}
