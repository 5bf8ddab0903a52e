package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/RajevHacker/codespark-invoice-wizard/auth"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/backend/backendtest"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/middleware"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/services"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/session"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/suggest"
)

type testEnv struct {
	fake    *backendtest.Fake
	store   session.Store
	handler http.Handler
	cookie  *http.Cookie
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&session.Record{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := session.NewGormStore(db)
	fake := backendtest.New(t)
	api := backend.New(fake.URL(), 5*time.Second)

	ah := NewAuthHandler(api, store)
	ch := NewCustomerHandler(api, store)
	ih := NewInvoiceHandler(api, store, services.NewInvoiceService(api))
	pch := NewPurchaseHandler(api, store, services.NewPurchaseService(api))
	pay := NewPaymentHandler(api, store, services.NewPaymentService(api))
	rh := NewReportHandler(api, store, services.NewReportService(api))
	dh := NewDashboardHandler(api, store)
	sh := NewSuggestHandler(api, store, suggest.Config{})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", ah.Login)
	mux.HandleFunc("POST /logout", ah.Logout)
	protect := func(pattern string, h http.HandlerFunc) { mux.Handle(pattern, auth.RequireAuth(h)) }
	protect("POST /customers/new", ch.Create)
	protect("GET /customers/edit", ch.Edit)
	protect("GET /invoices/new", ih.New)
	protect("POST /invoices/preview", ih.Preview)
	protect("POST /invoices", ih.Create)
	protect("GET /invoices/cancel", ih.CancelForm)
	protect("POST /invoices/cancel", ih.Cancel)
	protect("POST /purchases/preview", pch.Preview)
	protect("POST /purchases", pch.Create)
	protect("POST /payments/sales", pay.RecordSales)
	protect("POST /payments/purchase", pay.RecordPurchase)
	protect("GET /reports", rh.List)
	protect("GET /reports/pdf", rh.PDF)
	protect("GET /dashboard", dh.Show)
	protect("POST /financial-year/reset", dh.ResetYear)
	protect("GET /suggest/customers", sh.Customers)

	rec := httptest.NewRecorder()
	s := session.Session{Token: backendtest.Token, PartnerName: backendtest.Partner, Username: backendtest.Username}
	if err := auth.SignIn(context.Background(), rec, store, s); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("no session cookie")
	}
	return &testEnv{
		fake:    fake,
		store:   store,
		handler: middleware.Chain(mux, middleware.Prefs, auth.Middleware(store)),
		cookie:  cookie,
	}
}

func (e *testEnv) jsonReq(method, path string, body any) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = strings.NewReader(string(b))
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) formReq(method, path string, vals url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestLoginJSON(t *testing.T) {
	e := newEnv(t)
	e.cookie = nil

	w := e.jsonReq("POST", "/login", map[string]string{"partnerName": backendtest.Partner, "username": backendtest.Username, "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d", w.Code)
	}
	var er struct{ Error string }
	decodeBody(t, w, &er)
	if er.Error != "login_failed" {
		t.Fatalf("error code = %q", er.Error)
	}

	w = e.jsonReq("POST", "/login", map[string]string{"partnerName": backendtest.Partner, "username": backendtest.Username, "password": backendtest.Password})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", w.Code, w.Body.String())
	}
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("login did not set a session cookie")
	}
}

func TestLoginRequiresAllFields(t *testing.T) {
	e := newEnv(t)
	e.cookie = nil
	w := e.formReq("POST", "/login", url.Values{"partnerName": {"x"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	if e.fake.CallCount("/Auth/login") != 0 {
		t.Fatalf("invalid login reached the billing API")
	}
}

func TestProtectedRouteWithoutSession(t *testing.T) {
	e := newEnv(t)
	e.cookie = nil
	w := e.jsonReq("GET", "/dashboard", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("json status = %d", w.Code)
	}
	w = e.formReq("GET", "/dashboard", nil)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("html status = %d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestCustomerCreateForm(t *testing.T) {
	e := newEnv(t)
	w := e.formReq("POST", "/customers/new", url.Values{"name": {"Acme"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing contact status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `value="Acme"`) {
		t.Fatalf("input not kept on re-render")
	}

	w = e.formReq("POST", "/customers/new", url.Values{"name": {"Acme"}, "contactNumber": {"98765"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d body=%s", w.Code, w.Body.String())
	}
	e.fake.Lock()
	_, ok := e.fake.Customers["Acme"]
	e.fake.Unlock()
	if !ok {
		t.Fatalf("customer not stored")
	}

	w = e.jsonReq("GET", "/customers/edit?name=Acme", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("edit status = %d", w.Code)
	}
	var c models.Customer
	decodeBody(t, w, &c)
	if c.ContactNumber != "98765" {
		t.Fatalf("loaded customer = %+v", c)
	}
}

func TestInvoiceGenerateAndCancel(t *testing.T) {
	e := newEnv(t)

	w := e.jsonReq("GET", "/invoices/new", nil)
	var draft models.InvoiceDraft
	decodeBody(t, w, &draft)
	if draft.InvoiceNumber != "INV-001" {
		t.Fatalf("next number = %q", draft.InvoiceNumber)
	}

	body := map[string]any{
		"invoiceNumber": draft.InvoiceNumber,
		"name":          "Acme",
		"currentDate":   "2025-04-01",
		"items": []map[string]any{
			{"productName": "Cotton", "qty": 10, "price": "50"},
			{"productName": "Silk", "qty": "3", "price": 100},
		},
	}
	w = e.jsonReq("POST", "/invoices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("generate status = %d body=%s", w.Code, w.Body.String())
	}
	var out services.Submitted
	decodeBody(t, w, &out)
	if out.NextNumber != "INV-002" {
		t.Fatalf("next number after submit = %q", out.NextNumber)
	}
	if !out.Draft.GrandTotal.Equal(decimal.NewFromInt(840)) {
		t.Fatalf("grand total = %s", out.Draft.GrandTotal)
	}

	w = e.jsonReq("POST", "/invoices/cancel", map[string]string{"invoiceNumber": "INV-001"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel status = %d body=%s", w.Code, w.Body.String())
	}
	w = e.jsonReq("POST", "/invoices/cancel", map[string]string{"invoiceNumber": "INV-001"})
	if w.Code != http.StatusConflict {
		t.Fatalf("second cancel status = %d", w.Code)
	}
}

func TestInvoiceValidationNeverCallsAPI(t *testing.T) {
	e := newEnv(t)
	w := e.jsonReq("POST", "/invoices", map[string]any{"invoiceNumber": "INV-001", "items": []any{}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	var er struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, w, &er)
	if er.Details["name"] == "" || er.Details["items"] == "" {
		t.Fatalf("details = %v", er.Details)
	}
	if e.fake.CallCount("/Invoices/GenerateInvoice") != 0 {
		t.Fatalf("invalid invoice was sent")
	}
}

func TestInvoicePreviewAddsRow(t *testing.T) {
	e := newEnv(t)
	vals := url.Values{
		"invoiceNumber": {"INV-001"},
		"name":          {"Acme"},
		"productName":   {"Cotton"},
		"hsn":           {""},
		"qty":           {"2"},
		"price":         {"10"},
		"addItem":       {"1"},
	}
	w := e.formReq("POST", "/invoices/preview", vals)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if n := strings.Count(w.Body.String(), `name="productName"`); n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}
	if !strings.Contains(w.Body.String(), "21.00") {
		t.Fatalf("grand total missing")
	}
}

func TestPurchasePreviewRemovesRows(t *testing.T) {
	e := newEnv(t)
	vals := url.Values{
		"supplierName": {"Weavers Co"},
		"productName":  {"Cotton", "Silk"},
		"hsn":          {"", ""},
		"qty":          {"2", "1"},
		"price":        {"10", "99"},
		"taxRate":      {"5"},
		"removeItem":   {"1"},
	}
	w := e.formReq("POST", "/purchases/preview", vals)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if n := strings.Count(body, `name="productName"`); n != 1 || strings.Contains(body, "Silk") {
		t.Fatalf("expected only the Cotton row, got %d rows", n)
	}

	// dropping the only row leaves one blank default row
	vals = url.Values{"productName": {"Cotton"}, "qty": {"2"}, "price": {"10"}, "removeItem": {"0"}}
	w = e.formReq("POST", "/purchases/preview", vals)
	body = w.Body.String()
	if n := strings.Count(body, `name="productName"`); n != 1 || strings.Contains(body, `value="Cotton"`) {
		t.Fatalf("expected a single blank row: %d rows", n)
	}
	if !strings.Contains(body, `name="qty" value="1"`) {
		t.Fatalf("blank row should default to quantity 1")
	}
}

func TestExpiredTokenEndsSession(t *testing.T) {
	e := newEnv(t)
	id := ""
	{
		rec := httptest.NewRecorder()
		stale := session.Session{Token: "stale", PartnerName: backendtest.Partner, Username: backendtest.Username}
		if err := auth.SignIn(context.Background(), rec, e.store, stale); err != nil {
			t.Fatalf("sign in: %v", err)
		}
		for _, c := range rec.Result().Cookies() {
			if c.Name == "session" {
				e.cookie = c
				id, _, _ = strings.Cut(c.Value, ".")
			}
		}
	}
	w := e.jsonReq("GET", "/dashboard", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if _, err := e.store.Get(context.Background(), id); err != session.ErrNotFound {
		t.Fatalf("stale session still stored: %v", err)
	}
}

func TestSuggestMinimumLength(t *testing.T) {
	e := newEnv(t)
	e.fake.Lock()
	e.fake.Customers["Acme Mills"] = models.Customer{Name: "Acme Mills"}
	e.fake.Customers["Acorn"] = models.Customer{Name: "Acorn"}
	e.fake.Unlock()

	w := e.jsonReq("GET", "/suggest/customers?q=a", nil)
	var out struct {
		Query   string   `json:"query"`
		Results []string `json:"results"`
	}
	decodeBody(t, w, &out)
	if len(out.Results) != 0 || e.fake.CallCount("/Invoices/SearchCustomers") != 0 {
		t.Fatalf("single character lookup should not reach the API")
	}

	w = e.jsonReq("GET", "/suggest/customers?q=acm", nil)
	decodeBody(t, w, &out)
	if len(out.Results) != 1 || out.Results[0] != "Acme Mills" {
		t.Fatalf("results = %v", out.Results)
	}
}

func TestPurchaseAndPayment(t *testing.T) {
	e := newEnv(t)
	w := e.jsonReq("POST", "/purchases", map[string]any{
		"supplierName": "Loom Co", "poNumber": "PO-1", "poDate": "2025-04-02",
		"amountBeforeTax": "1000", "taxRate": "other", "customRate": "7.5",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("purchase status = %d body=%s", w.Code, w.Body.String())
	}
	var b struct {
		CGST       decimal.Decimal `json:"cgst"`
		GrandTotal decimal.Decimal `json:"grandTotal"`
	}
	decodeBody(t, w, &b)
	if !b.CGST.Equal(decimal.NewFromInt(38)) || !b.GrandTotal.Equal(decimal.NewFromInt(1076)) {
		t.Fatalf("breakdown = %+v", b)
	}

	pay := map[string]any{"supplierName": "Loom Co", "poNumber": "PO-1", "paymentAmount": 2000, "paymentDate": "2025-04-03", "paymentMode": "UPI"}
	w = e.jsonReq("POST", "/payments/purchase", pay)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("overpayment status = %d", w.Code)
	}
	pay["paymentAmount"] = 1076
	w = e.jsonReq("POST", "/payments/purchase", pay)
	if w.Code != http.StatusCreated {
		t.Fatalf("payment status = %d body=%s", w.Code, w.Body.String())
	}
	var res struct {
		Recent []models.Transaction `json:"recent"`
	}
	decodeBody(t, w, &res)
	if len(res.Recent) != 1 || res.Recent[0].Ref != "PO-1" {
		t.Fatalf("recent = %+v", res.Recent)
	}
}

func TestSalesPaymentRedirects(t *testing.T) {
	e := newEnv(t)
	w := e.formReq("POST", "/payments/sales", url.Values{
		"customerName": {"Acme"}, "date": {"2025-04-05"}, "bankName": {"SBI"}, "amount": {"500"},
	})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/payments/sales" {
		t.Fatalf("status = %d location=%q", w.Code, w.Header().Get("Location"))
	}
	e.fake.Lock()
	n := len(e.fake.Sales)
	e.fake.Unlock()
	if n != 1 {
		t.Fatalf("sales payments = %d", n)
	}
}

func TestSalesPaymentSavedWhenRecentListFails(t *testing.T) {
	e := newEnv(t)
	e.fake.Lock()
	e.fake.FailPaths["/Invoices/RecentTransactions"] = http.StatusInternalServerError
	e.fake.Unlock()

	w := e.formReq("POST", "/payments/sales", url.Values{
		"customerName": {"Acme"}, "date": {"2025-04-05"}, "bankName": {"SBI"}, "amount": {"500"},
	})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/payments/sales" {
		t.Fatalf("status = %d location=%q body=%s", w.Code, w.Header().Get("Location"), w.Body.String())
	}
	if n := e.fake.CallCount("/Invoices/PaymentEntry"); n != 1 {
		t.Fatalf("payment entries = %d", n)
	}
}

func TestReportPDF(t *testing.T) {
	e := newEnv(t)
	e.fake.Lock()
	e.fake.Bills["INV-001"] = models.BillEntry{InvoiceNumber: "INV-001", CustomerName: "Acme", Date: "2025-04-01", GrandTotal: decimal.NewFromInt(105)}
	e.fake.Unlock()

	w := e.jsonReq("GET", "/reports?reportType=sales", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	w = e.formReq("GET", "/reports/pdf?reportType=sales", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf status = %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "sales-report.pdf") {
		t.Fatalf("disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("not a pdf")
	}

	w = e.jsonReq("GET", "/reports/pdf?reportType=sales&startDate=2025-05-01&endDate=2025-04-01", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad range status = %d", w.Code)
	}
}

func TestResetYearValidates(t *testing.T) {
	e := newEnv(t)
	w := e.jsonReq("POST", "/financial-year/reset", map[string]string{"financialYear": "2025-27"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	w = e.jsonReq("POST", "/financial-year/reset", map[string]string{"financialYear": "2025-26"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	e.fake.Lock()
	years := append([]string(nil), e.fake.ResetYears...)
	e.fake.Unlock()
	if len(years) != 1 || years[0] != "2025-26" {
		t.Fatalf("reset years = %v", years)
	}
}
