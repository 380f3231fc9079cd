package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"invoicedesk/internal/config"
	"invoicedesk/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const baseURL = "http://invoicedesk.test"

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Meta       json.RawMessage `json:"meta"`
	Error      string          `json:"error"`
}

type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newTestApp(t *testing.T) *client {
	t.Helper()
	cfg := &config.Config{
		Port:          "0",
		GinMode:       gin.TestMode,
		PublicBaseURL: baseURL,
		StoreDriver:   config.DriverMemory,
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		StorageDir:    t.TempDir(),
		UploadURLTTL:  time.Hour,
	}
	a, err := NewWithStores(cfg, MemoryStores(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return &client{t: t, h: a.Handler()}
}

func (c *client) as(token string) *client {
	return &client{t: c.t, h: c.h, token: token}
}

func (c *client) raw(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	return w
}

// do sends body as JSON and decodes the envelope, failing unless the status matches.
func (c *client) do(method, path string, body interface{}, wantStatus int) envelope {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	w := c.raw(method, path, "application/json", r)
	if w.Code != wantStatus {
		c.t.Fatalf("%s %s = %d, want %d: %s", method, path, w.Code, wantStatus, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		c.t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func (c *client) register(email string) *client {
	c.t.Helper()
	env := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Test", "email": email, "password": "secret123",
	}, http.StatusCreated)
	tok := decode[struct {
		Token string `json:"token"`
	}](c.t, env.Data)
	return c.as(tok.Token)
}

func invoicePayload() map[string]interface{} {
	return map[string]interface{}{
		"invoiceNumber":     "IGS2025030101",
		"status":            "draft",
		"companyName":       "Seller Ltd",
		"clientName":        "Acme GmbH",
		"issueDate":         "2025-03-01",
		"taxRate":           10,
		"commissionPercent": 5,
		"items": []map[string]interface{}{
			{"description": "Widget", "quantity": 2, "rate": 50, "amount": 100},
		},
	}
}

func TestHealth(t *testing.T) {
	c := newTestApp(t)
	if w := c.raw(http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
}

func TestInvoiceLifecycle(t *testing.T) {
	c := newTestApp(t).register("owner@example.com")

	created := c.do(http.MethodPost, "/api/invoices", invoicePayload(), http.StatusCreated)
	id := decode[struct {
		ID string `json:"id"`
	}](t, created.Data).ID

	got := decode[model.Invoice](t, c.do(http.MethodGet, "/api/invoices/"+id, nil, http.StatusOK).Data)
	if len(got.Items) != 2 || got.Subtotal != 5 || got.TaxAmount != 0.5 || got.Total != 5.5 {
		t.Errorf("totals = %d rows %v/%v/%v", len(got.Items), got.Subtotal, got.TaxAmount, got.Total)
	}
	if got.Items[1].Description != "Commission 5% of EUR 100.00" {
		t.Errorf("commission row = %q", got.Items[1].Description)
	}

	updated := decode[model.Invoice](t, c.do(http.MethodPatch, "/api/invoices/"+id,
		map[string]interface{}{"status": "paid"}, http.StatusOK).Data)
	if updated.Status != "paid" || updated.ClientName != "Acme GmbH" || updated.Total != 5.5 {
		t.Errorf("updated = %+v", updated)
	}

	list := decode[[]model.Invoice](t, c.do(http.MethodGet, "/api/invoices", nil, http.StatusOK).Data)
	if len(list) != 1 {
		t.Fatalf("list = %d", len(list))
	}

	dash := decode[model.Dashboard](t, c.do(http.MethodGet, "/api/analytics/dashboard", nil, http.StatusOK).Data)
	if dash.Summary.PaidInvoices != 1 || dash.Summary.PaidRevenue != 5.5 || len(dash.RecentActivity) != 2 {
		t.Errorf("dashboard = %+v", dash)
	}

	c.do(http.MethodDelete, "/api/invoices/"+id, nil, http.StatusOK)
	gone := c.do(http.MethodGet, "/api/invoices/"+id, nil, http.StatusNotFound)
	if gone.Error != "Invoice not found" {
		t.Errorf("error = %q", gone.Error)
	}

	events := c.do(http.MethodGet, "/api/analytics/events?limit=2", nil, http.StatusOK)
	page := decode[[]model.AnalyticsEvent](t, events.Data)
	meta := decode[struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	}](t, events.Meta)
	if len(page) != 2 || meta.Total != 3 || meta.TotalPages != 2 {
		t.Errorf("events = %d, meta = %+v", len(page), meta)
	}
	if page[0].EventType != model.EventInvoiceDeleted {
		t.Errorf("newest event = %s", page[0].EventType)
	}
}

func TestTenantIsolation(t *testing.T) {
	app := newTestApp(t)
	owner := app.register("a@example.com")
	other := app.register("b@example.com")

	id := decode[struct {
		ID string `json:"id"`
	}](t, owner.do(http.MethodPost, "/api/invoices", invoicePayload(), http.StatusCreated).Data).ID

	other.do(http.MethodGet, "/api/invoices/"+id, nil, http.StatusNotFound)
	other.do(http.MethodPatch, "/api/invoices/"+id, map[string]string{"status": "paid"}, http.StatusNotFound)
	other.do(http.MethodDelete, "/api/invoices/"+id, nil, http.StatusNotFound)
	if list := decode[[]model.Invoice](t, other.do(http.MethodGet, "/api/invoices", nil, http.StatusOK).Data); len(list) != 0 {
		t.Errorf("other user sees %d invoices", len(list))
	}

	anon := app.as("")
	if list := decode[[]model.Invoice](t, anon.do(http.MethodGet, "/api/invoices", nil, http.StatusOK).Data); len(list) != 0 {
		t.Errorf("anonymous list = %d", len(list))
	}
	anon.do(http.MethodPost, "/api/invoices", invoicePayload(), http.StatusUnauthorized)
	anon.do(http.MethodGet, "/api/invoices/"+id, nil, http.StatusUnauthorized)
	anon.do(http.MethodGet, "/api/analytics/dashboard", nil, http.StatusUnauthorized)
}

func TestDocumentValidationAndIDs(t *testing.T) {
	c := newTestApp(t).register("v@example.com")

	noItems := invoicePayload()
	noItems["items"] = []interface{}{}
	c.do(http.MethodPost, "/api/invoices", noItems, http.StatusBadRequest)

	badStatus := invoicePayload()
	badStatus["status"] = "archived"
	c.do(http.MethodPost, "/api/invoices", badStatus, http.StatusBadRequest)

	c.do(http.MethodGet, "/api/local-bills/not-a-uuid", nil, http.StatusNotFound)
}

func TestOtherKinds(t *testing.T) {
	c := newTestApp(t).register("k@example.com")
	today := time.Now().Format("20060102")

	chalan := map[string]interface{}{
		"invoiceNumber": "IGS" + today,
		"items": []map[string]interface{}{
			{"description": "Rice", "unit": "kg", "quantity": 10},
			{"description": "Lentils", "unit": "kg", "quantity": 5},
		},
	}
	c.do(http.MethodPost, "/api/local-chalans", chalan, http.StatusCreated)
	list := decode[[]model.LocalChalan](t, c.do(http.MethodGet, "/api/local-chalans", nil, http.StatusOK).Data)
	if len(list) != 1 || list[0].TotalQuantity != 15 {
		t.Errorf("chalans = %+v", list)
	}

	next := decode[struct {
		InvoiceNumber string `json:"invoiceNumber"`
	}](t, c.do(http.MethodGet, "/api/local-chalans/next-number", nil, http.StatusOK).Data)
	if next.InvoiceNumber != "IGS"+today {
		t.Errorf("chalan next number = %q", next.InvoiceNumber)
	}

	proforma := map[string]interface{}{
		"invoiceNumber": "GD" + today + "SAD-1",
		"companyName":   "Exporter Ltd",
		"items": []map[string]interface{}{
			{"description": "Jute", "unitPrice": "USD 10", "amount": 100.255},
		},
	}
	c.do(http.MethodPost, "/api/proforma-invoices", proforma, http.StatusCreated)
	next = decode[struct {
		InvoiceNumber string `json:"invoiceNumber"`
	}](t, c.do(http.MethodGet, "/api/proforma-invoices/next-number", nil, http.StatusOK).Data)
	if next.InvoiceNumber != "GD"+today+"SAD-2" {
		t.Errorf("proforma next number = %q", next.InvoiceNumber)
	}
}

func TestPreviewAppliesEdit(t *testing.T) {
	c := newTestApp(t)
	body := map[string]interface{}{
		"document": map[string]interface{}{
			"taxRate": 10,
			"items": []map[string]interface{}{
				{"description": "Widget", "quantity": 2, "rate": 50, "amount": 100},
			},
		},
		"edit": map[string]interface{}{"index": 0, "field": "quantity", "value": 3},
	}
	doc := decode[model.LocalBill](t, c.do(http.MethodPost, "/api/local-bills/preview", body, http.StatusOK).Data)
	if doc.Items[0].Amount != 150 || doc.Subtotal != 150 || doc.Total != 165 {
		t.Errorf("preview = %+v", doc)
	}

	body["edit"] = map[string]interface{}{"index": 7, "field": "quantity", "value": 3}
	c.do(http.MethodPost, "/api/local-bills/preview", body, http.StatusBadRequest)
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t)
	app.register("me@example.com")

	app.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "me@example.com", "password": "secret123",
	}, http.StatusConflict)
	app.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "me@example.com", "password": "wrong-password",
	}, http.StatusUnauthorized)

	body, _ := json.Marshal(map[string]string{"email": "me@example.com", "password": "secret123"})
	w := app.raw(http.MethodPost, "/api/auth/login", "application/json", bytes.NewReader(body))
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", w.Code, w.Body.String())
	}
	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "access_token" {
			cookie = ck
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("access_token cookie = %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	app.h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "me@example.com") {
		t.Errorf("me = %d %s", rec.Code, rec.Body.String())
	}

	app.do(http.MethodGet, "/api/auth/me", nil, http.StatusUnauthorized)
}

func TestFileFlow(t *testing.T) {
	c := newTestApp(t).register("files@example.com")

	uploadURL := decode[struct {
		UploadURL string `json:"uploadUrl"`
	}](t, c.do(http.MethodPost, "/api/files/upload-url", nil, http.StatusOK).Data).UploadURL
	path := strings.TrimPrefix(uploadURL, baseURL)

	anon := c.as("")
	w := anon.raw(http.MethodPut, path, "image/png", strings.NewReader("png-bytes"))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d: %s", w.Code, w.Body.String())
	}
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	storageID := decode[struct {
		StorageID string `json:"storageId"`
	}](t, env.Data).StorageID

	if w := anon.raw(http.MethodPut, path, "image/png", strings.NewReader("again")); w.Code != http.StatusConflict {
		t.Errorf("second upload = %d", w.Code)
	}

	c.do(http.MethodPost, "/api/files", map[string]string{
		"storageId": storageID, "fileName": "logo.png", "fileType": "image/png", "fileCategory": "banner",
	}, http.StatusBadRequest)
	fileID := decode[struct {
		ID string `json:"id"`
	}](t, c.do(http.MethodPost, "/api/files", map[string]string{
		"storageId": storageID, "fileName": "logo.png", "fileType": "image/png", "fileCategory": "logo",
	}, http.StatusCreated).Data).ID

	files := decode[[]struct {
		ID  string  `json:"id"`
		URL *string `json:"url"`
	}](t, c.do(http.MethodGet, "/api/files?category=logo", nil, http.StatusOK).Data)
	if len(files) != 1 || files[0].URL == nil {
		t.Fatalf("files = %+v", files)
	}

	obj := anon.raw(http.MethodGet, strings.TrimPrefix(*files[0].URL, baseURL), "", nil)
	if obj.Code != http.StatusOK || obj.Body.String() != "png-bytes" || obj.Header().Get("Content-Type") != "image/png" {
		t.Errorf("download = %d %q %q", obj.Code, obj.Body.String(), obj.Header().Get("Content-Type"))
	}

	c.register("intruder@example.com").do(http.MethodDelete, "/api/files/"+fileID, nil, http.StatusNotFound)
	c.do(http.MethodDelete, "/api/files/"+fileID, nil, http.StatusOK)
	if files := decode[[]json.RawMessage](t, c.do(http.MethodGet, "/api/files", nil, http.StatusOK).Data); len(files) != 0 {
		t.Errorf("files after delete = %d", len(files))
	}
}

func TestRequestIDHeader(t *testing.T) {
	c := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
}
