package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/server/http/dto"
	testhelpers "github.com/polkiloo/commerce-admin/internal/test"
	"github.com/polkiloo/commerce-admin/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, pattern, target string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestWriteErrorClassifiesKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{"validation", domainErrors.ErrEmptyItems, http.StatusBadRequest, dto.KindValidation, domainErrors.ErrEmptyItems.Error()},
		{"transition", &domainErrors.InvalidTransitionError{From: "CANCELLED", To: "DELIVERED"}, http.StatusBadRequest, dto.KindInvalidState, "status change CANCELLED -> DELIVERED is not allowed"},
		{"not found", &domainErrors.CustomerNotFoundError{CustomerID: 7}, http.StatusNotFound, dto.KindNotFound, "customer 7 not found"},
		{"conflict", domainErrors.ErrVersionConflict, http.StatusConflict, dto.KindConflict, domainErrors.ErrVersionConflict.Error()},
		{"internal", errors.New("connection refused to 10.0.0.1"), http.StatusInternalServerError, dto.KindInternal, dto.InternalErrorDetail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var recorded []*gin.Error
			resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) {
				writeError(c, tt.err)
				recorded = c.Errors
			}, nil)

			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Status != tt.status || body.Error != tt.kind || body.Message != tt.message {
				t.Fatalf("unexpected error body %+v", body)
			}
			if body.Timestamp.IsZero() {
				t.Fatal("expected timestamp to be set")
			}
			if tt.status == http.StatusInternalServerError && len(recorded) != 1 {
				t.Fatalf("expected internal cause attached to context, got %v", recorded)
			}
			if tt.status != http.StatusInternalServerError && len(recorded) != 0 {
				t.Fatalf("unexpected context errors %v", recorded)
			}
		})
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	address := testhelpers.RandomASCIIString(8, 24)
	var got usecase.CreateOrderInput
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{CreateFn: func(_ context.Context, in usecase.CreateOrderInput) (*usecase.OrderResult, error) {
		got = in
		order := testhelpers.SampleOrder(5)
		order.ShippingAddress = in.ShippingAddress
		return &order, nil
	}})

	body := []byte(`{"customerId":1,"shippingAddress":"` + address + `","items":[{"productId":10,"quantity":2}]}`)
	resp := performRequest(t, http.MethodPost, "/api/orders", "/api/orders", handler.Create, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.CustomerID != 1 || got.ShippingAddress != address || len(got.Items) != 1 || got.Items[0].ProductID != 10 || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected input passed to facade: %+v", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, field := range []string{"subtotal", "deliveryFee", "taxAmount", "grandTotal"} {
		if _, ok := decoded[field]; !ok {
			t.Fatalf("expected %s in response", field)
		}
	}
	raw := resp.Body.String()
	for _, fragment := range []string{`"subtotal":200.00`, `"deliveryFee":10.00`, `"taxAmount":42.00`, `"grandTotal":252.00`, `"width":0.5`, `"date":"2024-03-01"`} {
		if !strings.Contains(raw, fragment) {
			t.Fatalf("expected %s in %s", fragment, raw)
		}
	}
	if decoded["shippingAddress"] != address {
		t.Fatalf("unexpected address %v", decoded["shippingAddress"])
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "empty items", body: []byte(`{"customerId":1,"shippingAddress":"x","items":[]}`), err: domainErrors.ErrEmptyItems, status: http.StatusBadRequest},
		{name: "unknown customer", body: []byte(`{"customerId":9,"shippingAddress":"x","items":[{"productId":1,"quantity":1}]}`), err: &domainErrors.CustomerNotFoundError{CustomerID: 9}, status: http.StatusNotFound},
		{name: "storage failure", body: []byte(`{"customerId":1,"shippingAddress":"x","items":[{"productId":1,"quantity":1}]}`), err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := NewOrderHandler(testhelpers.CommerceFacadeStub{CreateFn: func(context.Context, usecase.CreateOrderInput) (*usecase.OrderResult, error) {
				called = true
				return nil, tt.err
			}})
			resp := performRequest(t, http.MethodPost, "/api/orders", "/api/orders", handler.Create, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.err == nil && called {
				t.Fatal("facade must not be called for malformed body")
			}
		})
	}
}

func TestOrderHandlerGet(t *testing.T) {
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{OrderFn: func(_ context.Context, id int64) (*usecase.OrderResult, error) {
		if id == 404 {
			return nil, domainErrors.ErrOrderNotFound
		}
		order := testhelpers.SampleOrder(id)
		return &order, nil
	}})

	resp := performRequest(t, http.MethodGet, "/api/orders/:id", "/api/orders/3", handler.Get, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var generic map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &generic); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if generic["id"].(float64) != 3 {
		t.Fatalf("unexpected id %v", generic["id"])
	}
	customer := generic["customer"].(map[string]any)
	if customer["name"] != "Ada Lovelace" {
		t.Fatalf("unexpected customer %v", customer)
	}

	resp = performRequest(t, http.MethodGet, "/api/orders/:id", "/api/orders/404", handler.Get, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	for _, target := range []string{"/api/orders/abc", "/api/orders/0", "/api/orders/-1"} {
		resp = performRequest(t, http.MethodGet, "/api/orders/:id", target, handler.Get, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", target, resp.Code)
		}
	}
}

func TestOrderHandlerList(t *testing.T) {
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/api/orders", "/api/orders", handler.List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one order, got %d", len(decoded))
	}

	handler = NewOrderHandler(testhelpers.CommerceFacadeStub{OrdersFn: func(context.Context) ([]usecase.OrderResult, error) {
		return nil, nil
	}})
	resp = performRequest(t, http.MethodGet, "/api/orders", "/api/orders", handler.List, nil)
	if strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
}

func TestOrderHandlerPage(t *testing.T) {
	var got usecase.OrderQuery
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{PageFn: func(_ context.Context, q usecase.OrderQuery) (paging.Page[usecase.OrderResult], error) {
		got = q
		return paging.Page[usecase.OrderResult]{
			Content:       []usecase.OrderResult{testhelpers.SampleOrder(11)},
			TotalElements: 15,
			Page:          q.Page,
			Size:          q.Size,
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/api/orders/page", "/api/orders/page?page=2&size=5&sort=createdAt&direction=desc&status=ORDERED", handler.Page, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Page != 2 || got.Size != 5 || got.Sort == nil || got.Sort.Field != "createdAt" || got.Sort.Direction != paging.Desc {
		t.Fatalf("unexpected query %+v", got)
	}
	if got.Status == nil || *got.Status != model.OrderStatusOrdered {
		t.Fatalf("unexpected status filter %v", got.Status)
	}

	var decoded struct {
		Content       []map[string]any `json:"content"`
		TotalElements int64            `json:"totalElements"`
		TotalPages    int              `json:"totalPages"`
		Page          int              `json:"page"`
		Size          int              `json:"size"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.TotalElements != 15 || decoded.TotalPages != 3 || decoded.Page != 2 || decoded.Size != 5 || len(decoded.Content) != 1 {
		t.Fatalf("unexpected page %+v", decoded)
	}
}

func TestOrderHandlerPageRejectsBadParameters(t *testing.T) {
	called := false
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{PageFn: func(context.Context, usecase.OrderQuery) (paging.Page[usecase.OrderResult], error) {
		called = true
		return paging.Page[usecase.OrderResult]{}, nil
	}})

	for _, query := range []string{"page=x", "size=0", "size=-3", "sort=createdAt&direction=sideways"} {
		resp := performRequest(t, http.MethodGet, "/api/orders/page", "/api/orders/page?"+query, handler.Page, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %q, got %d", query, resp.Code)
		}
	}
	if called {
		t.Fatal("facade must not be called for bad parameters")
	}
}

func TestOrderHandlerPatch(t *testing.T) {
	var gotID int64
	var got usecase.PatchOrderInput
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{PatchFn: func(_ context.Context, id int64, in usecase.PatchOrderInput) (*usecase.OrderResult, error) {
		gotID, got = id, in
		order := testhelpers.SampleOrder(id)
		order.Status = model.OrderStatusCancelled
		order.Returned = true
		return &order, nil
	}})

	resp := performRequest(t, http.MethodPatch, "/api/orders/:id", "/api/orders/8", handler.Patch, []byte(`{"returned":true,"status":"CANCELLED","version":2}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotID != 8 || got.Returned == nil || !*got.Returned || got.Status == nil || *got.Status != model.OrderStatusCancelled || got.Version == nil || *got.Version != 2 {
		t.Fatalf("unexpected patch input %d %+v", gotID, got)
	}
	if got.ShippingAddress != nil {
		t.Fatal("omitted address must stay nil")
	}
}

func TestOrderHandlerPatchFailures(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   []byte
		err    error
		status int
	}{
		{name: "bad id", target: "/api/orders/x", body: []byte(`{}`), status: http.StatusBadRequest},
		{name: "bad json", target: "/api/orders/1", body: []byte("{"), status: http.StatusBadRequest},
		{name: "illegal transition", target: "/api/orders/1", body: []byte(`{"status":"DELIVERED"}`), err: &domainErrors.InvalidTransitionError{From: "CANCELLED", To: "DELIVERED"}, status: http.StatusBadRequest},
		{name: "missing", target: "/api/orders/1", body: []byte(`{"returned":true}`), err: domainErrors.ErrOrderNotFound, status: http.StatusNotFound},
		{name: "stale version", target: "/api/orders/1", body: []byte(`{"version":1}`), err: domainErrors.ErrVersionConflict, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.CommerceFacadeStub{PatchFn: func(context.Context, int64, usecase.PatchOrderInput) (*usecase.OrderResult, error) {
				return nil, tt.err
			}})
			resp := performRequest(t, http.MethodPatch, "/api/orders/:id", tt.target, handler.Patch, tt.body)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
			if tt.name == "illegal transition" && decodeError(t, resp).Error != dto.KindInvalidState {
				t.Fatalf("expected invalid state kind, got %s", resp.Body.String())
			}
		})
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{DeleteFn: func(_ context.Context, id int64) error {
		if id == 2 {
			return domainErrors.ErrOrderNotFound
		}
		return nil
	}})

	resp := performRequest(t, http.MethodDelete, "/api/orders/:id", "/api/orders/1", handler.Delete, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
	if resp.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", resp.Body.String())
	}

	resp = performRequest(t, http.MethodDelete, "/api/orders/:id", "/api/orders/2", handler.Delete, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerPending(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	handler := NewOrderHandler(testhelpers.CommerceFacadeStub{PendingFn: func(context.Context) ([]model.PendingOrder, error) {
		return []model.PendingOrder{{OrderID: 4, Reference: "ORD1", GrandTotal: decimal.RequireFromString("71.96"), CreatedAt: created, ItemCount: 2}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/api/orders/pending", "/api/orders/pending", handler.Pending, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	raw := resp.Body.String()
	for _, fragment := range []string{`"orderId":4`, `"grandTotal":71.96`, `"itemCount":2`} {
		if !strings.Contains(raw, fragment) {
			t.Fatalf("expected %s in %s", fragment, raw)
		}
	}

	handler = NewOrderHandler(testhelpers.CommerceFacadeStub{PendingFn: func(context.Context) ([]model.PendingOrder, error) {
		return nil, errors.New("boom")
	}})
	resp = performRequest(t, http.MethodGet, "/api/orders/pending", "/api/orders/pending", handler.Pending, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "boom") {
		t.Fatal("internal cause must not leak")
	}
}

func TestSearchHandlerProducts(t *testing.T) {
	var got usecase.ProductQuery
	handler := NewSearchHandler(testhelpers.CommerceFacadeStub{ProductsFn: func(_ context.Context, q usecase.ProductQuery) (paging.Page[model.Product], error) {
		got = q
		return paging.Page[model.Product]{
			Content:       []model.Product{{ID: 1, Reference: "DESK-1", Price: decimal.NewFromInt(100), Width: decimal.NewNullDecimal(decimal.RequireFromString("0.5"))}},
			TotalElements: 1,
			Page:          q.Page,
			Size:          10,
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/api/products/page", "/api/products/page?query=+desk+&categoryId=3&stockFrom=1&stockTo=9", handler.Products, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Text != "desk" || got.CategoryID == nil || *got.CategoryID != 3 || got.StockFrom == nil || *got.StockFrom != 1 || got.StockTo == nil || *got.StockTo != 9 {
		t.Fatalf("unexpected product query %+v", got)
	}
	raw := resp.Body.String()
	for _, fragment := range []string{`"price":100.00`, `"width":0.5`, `"height":null`, `"totalPages":1`} {
		if !strings.Contains(raw, fragment) {
			t.Fatalf("expected %s in %s", fragment, raw)
		}
	}

	resp = performRequest(t, http.MethodGet, "/api/products/page", "/api/products/page?stockFrom=many", handler.Products, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSearchHandlerUsers(t *testing.T) {
	var got usecase.UserQuery
	handler := NewSearchHandler(testhelpers.CommerceFacadeStub{UsersFn: func(_ context.Context, q usecase.UserQuery) (paging.Page[model.User], error) {
		got = q
		return paging.Page[model.User]{Content: []model.User{{ID: 1, FirstName: "Ada"}}, TotalElements: 1, Size: 10}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/api/users/page", "/api/users/page?query=ada&hasNewsletter=true&segmentId=2", handler.Users, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.Text != "ada" || got.HasNewsletter == nil || !*got.HasNewsletter || got.SegmentID == nil || *got.SegmentID != 2 {
		t.Fatalf("unexpected user query %+v", got)
	}
	if !strings.Contains(resp.Body.String(), `"segmentIds":[]`) {
		t.Fatalf("expected empty segment list, got %s", resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/api/users/page", "/api/users/page?hasNewsletter=maybe", handler.Users, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSearchHandlerReviews(t *testing.T) {
	var got usecase.ReviewQuery
	handler := NewSearchHandler(testhelpers.CommerceFacadeStub{ReviewsFn: func(_ context.Context, q usecase.ReviewQuery) (paging.Page[model.Review], error) {
		got = q
		return paging.Page[model.Review]{
			Content: []model.Review{{ID: 1, ProductID: q.ProductID, CustomerFirstName: "Ada", Rating: 5, Status: model.ReviewStatusAccepted}},
			Size:    10,
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/api/reviews/products/:productId", "/api/reviews/products/7?status=accepted&ratingMin=4&ratingMax=5&q=great", handler.Reviews, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got.ProductID != 7 || got.Status == nil || *got.Status != model.ReviewStatusAccepted || *got.RatingMin != 4 || *got.RatingMax != 5 || got.Text != "great" {
		t.Fatalf("unexpected review query %+v", got)
	}
	if !strings.Contains(resp.Body.String(), `"firstName":"Ada"`) {
		t.Fatalf("expected review author in %s", resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/api/reviews/products/:productId", "/api/reviews/products/zero", handler.Reviews, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", "/healthz", NewHealthHandler(testhelpers.CommerceFacadeStub{}).Check, nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected healthy response %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/healthz", "/healthz", NewHealthHandler(testhelpers.CommerceFacadeStub{HealthErr: errors.New("pool closed")}).Check, nil)
	if resp.Code != http.StatusServiceUnavailable || !strings.Contains(resp.Body.String(), `"status":"unavailable"`) {
		t.Fatalf("unexpected unhealthy response %d %s", resp.Code, resp.Body.String())
	}
}
