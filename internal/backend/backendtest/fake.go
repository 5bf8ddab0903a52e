// Package backendtest provides an in-memory billing API for tests.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
)

// Credentials accepted by the fake login endpoint.
const (
	Partner  = "Sri Textiles"
	Username = "ravi"
	Password = "secret"
	Token    = "fake-token"
)

// Fake is a billing API backed by maps. All fields are guarded by mu.
type Fake struct {
	Server *httptest.Server

	mu         sync.Mutex
	next       int
	Customers  map[string]models.Customer
	Products   []models.Product
	Bills      map[string]models.BillEntry
	Drafts     []models.InvoiceDraft
	Purchases  []models.PurchaseEntry
	Sales      []models.PaymentRecord
	Paid       []models.PurchasePayment
	Balances   []models.PurchaseBalance
	ResetYears []string
	Calls      map[string]int
	// FailWith, when set, makes every tenant call answer that status.
	FailWith int
	// FailPaths makes single endpoints answer the mapped status.
	FailPaths map[string]int
}

// New starts a fake and closes it when t ends.
func New(t *testing.T) *Fake {
	t.Helper()
	f := &Fake{
		next:      1,
		Customers: map[string]models.Customer{},
		Bills:     map[string]models.BillEntry{},
		Calls:     map[string]int{},
		FailPaths: map[string]int{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Auth/login", f.login)
	mux.HandleFunc("POST /Invoices/AddCustomer", f.tenant(f.addCustomer))
	mux.HandleFunc("PUT /Invoices/UpdateCustomer", f.tenant(f.updateCustomer))
	mux.HandleFunc("GET /Invoices/GetCustomer", f.tenant(f.getCustomer))
	mux.HandleFunc("GET /Invoices/SearchCustomers", f.tenant(f.search))
	mux.HandleFunc("POST /Invoices/AddProduct", f.tenant(f.addProduct))
	mux.HandleFunc("GET /Invoices/GetNextInvoiceNumber", f.tenant(f.nextNumber))
	mux.HandleFunc("POST /Invoices/GenerateInvoice", f.tenant(f.generate))
	mux.HandleFunc("GET /Invoices/GetBillHistory", f.tenant(f.billHistory))
	mux.HandleFunc("POST /Invoices/CancelInvoice", f.tenant(f.cancel))
	mux.HandleFunc("GET /Invoices/GetSalesList", f.tenant(f.salesList))
	mux.HandleFunc("GET /Invoices/GetPurchaseList", f.tenant(f.purchaseList))
	mux.HandleFunc("GET /Invoices/DashboardSummary", f.tenant(f.dashboard))
	mux.HandleFunc("POST /Invoices/PurchaseEntry", f.tenant(f.purchaseEntry))
	mux.HandleFunc("POST /Invoices/PaymentEntry", f.tenant(f.paymentEntry))
	mux.HandleFunc("GET /Invoices/RecentTransactions", f.tenant(f.recent))
	mux.HandleFunc("GET /Invoices/getSalesBalanceList", f.tenant(f.salesBalances))
	mux.HandleFunc("GET /Invoices/getPurchaseBalanceList", f.tenant(f.purchaseBalances))
	mux.HandleFunc("POST /Invoices/resetFinancialYear", f.tenant(f.resetYear))
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to hand to backend.New.
func (f *Fake) URL() string { return f.Server.URL }

// CallCount returns how many times path was hit.
func (f *Fake) CallCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[path]
}

// Lock exposes the mutex so tests can seed or inspect state.
func (f *Fake) Lock() { f.mu.Lock() }

func (f *Fake) Unlock() { f.mu.Unlock() }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *Fake) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PartnerName string `json:"partnerName"`
		Username    string `json:"username"`
		Password    string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.PartnerName != Partner || in.Username != Username || in.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token})
}

// tenant checks the bearer token and partner, counts the call and holds mu for h.
func (f *Fake) tenant(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Calls[r.URL.Path]++
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token expired"})
			return
		}
		if r.URL.Query().Get("partnerName") != Partner {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "unknown partner"})
			return
		}
		status := f.FailWith
		if st, ok := f.FailPaths[r.URL.Path]; ok {
			status = st
		}
		if status != 0 {
			w.WriteHeader(status)
			fmt.Fprint(w, "fake failure")
			return
		}
		h(w, r)
	}
}

func (f *Fake) addCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if _, exists := f.Customers[c.Name]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Customer already exists"})
		return
	}
	f.Customers[c.Name] = c
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	_ = json.NewDecoder(r.Body).Decode(&c)
	if _, exists := f.Customers[c.Name]; !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Customer not found"})
		return
	}
	f.Customers[c.Name] = c
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, ok := f.Customers[r.URL.Query().Get("customerName")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Customer not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (f *Fake) search(w http.ResponseWriter, r *http.Request) {
	needle := strings.ToLower(r.URL.Query().Get("searchValue"))
	var pool []string
	switch r.URL.Query().Get("sheetName") {
	case "CustomerDetails":
		for name := range f.Customers {
			pool = append(pool, name)
		}
	case "ProductDetails":
		for _, p := range f.Products {
			pool = append(pool, p.ProductName)
		}
	case "BillHistory":
		for n := range f.Bills {
			pool = append(pool, n)
		}
	}
	sort.Strings(pool)
	out := []string{}
	for _, s := range pool {
		if strings.Contains(strings.ToLower(s), needle) {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) addProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	_ = json.NewDecoder(r.Body).Decode(&p)
	f.Products = append(f.Products, p)
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) number() string { return fmt.Sprintf("INV-%03d", f.next) }

func (f *Fake) nextNumber(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"invoiceNumber": f.number()})
}

func (f *Fake) generate(w http.ResponseWriter, r *http.Request) {
	var d models.InvoiceDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	number := f.number()
	f.next++
	f.Drafts = append(f.Drafts, d)
	var qty int64
	for _, it := range d.Items {
		qty += it.Quantity
	}
	f.Bills[number] = models.BillEntry{
		Date: d.Date, CustomerName: d.CustomerName, InvoiceNumber: number,
		Qty: decimal.NewFromInt(qty), TotalBeforeGST: d.Subtotal, IGST: d.GST, GrandTotal: d.GrandTotal,
		Status: models.InvoiceStatusActive,
	}
	writeJSON(w, http.StatusOK, models.GeneratedInvoice{InvoiceNumber: number, FileURL: "https://files.example/" + number + ".pdf"})
}

func (f *Fake) billHistory(w http.ResponseWriter, r *http.Request) {
	b, ok := f.Bills[r.URL.Query().Get("invoiceNumber")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Invoice not found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (f *Fake) cancel(w http.ResponseWriter, r *http.Request) {
	n := r.URL.Query().Get("invoiceNumber")
	b, ok := f.Bills[n]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Invoice not found"})
		return
	}
	b.Status = models.InvoiceStatusCancelled
	f.Bills[n] = b
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) salesList(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customerName")
	out := []models.BillEntry{}
	for _, b := range f.Bills {
		if customer == "" || b.CustomerName == customer {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) purchaseList(w http.ResponseWriter, r *http.Request) {
	out := []models.PurchaseRecord{}
	for _, p := range f.Purchases {
		out = append(out, models.PurchaseRecord{
			PODate: p.PODate, SupplierName: p.SupplierName, GSTNumber: p.GSTNumber, PONumber: p.PONumber,
			TotalBeforeGST: p.SubtotalBeforeTax, CGST: p.CGST, SGST: p.SGST, IGST: p.IGST, GrandTotal: p.GrandTotal,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) dashboard(w http.ResponseWriter, r *http.Request) {
	s := models.DashboardSummary{TotalInvoices: len(f.Bills), ActiveCustomers: len(f.Customers)}
	for _, b := range f.Bills {
		if !b.Cancelled() {
			s.TotalOutstanding = s.TotalOutstanding.Add(b.GrandTotal)
		}
	}
	for _, p := range f.Sales {
		s.TotalPaid = s.TotalPaid.Add(p.Amount)
	}
	s.TotalOutstanding = s.TotalOutstanding.Sub(s.TotalPaid)
	writeJSON(w, http.StatusOK, s)
}

func (f *Fake) purchaseEntry(w http.ResponseWriter, r *http.Request) {
	var p models.PurchaseEntry
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	f.Purchases = append(f.Purchases, p)
	f.Balances = append(f.Balances, models.PurchaseBalance{
		PONumber: p.PONumber, SupplierName: p.SupplierName, TotalAmount: p.GrandTotal,
		PaidAmount: decimal.Zero, BalanceAmount: p.GrandTotal, PODate: p.PODate,
	})
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) paymentEntry(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "sales":
		var p models.PaymentRecord
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.Sales = append(f.Sales, p)
	case "purchase":
		var p models.PurchasePayment
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.Paid = append(f.Paid, p)
		for i, b := range f.Balances {
			if b.PONumber == p.PONumber {
				b.PaidAmount = b.PaidAmount.Add(p.PaymentAmount)
				b.BalanceAmount = b.TotalAmount.Sub(b.PaidAmount)
				f.Balances[i] = b
			}
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "type must be sales or purchase"})
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) recent(w http.ResponseWriter, r *http.Request) {
	out := []models.Transaction{}
	if r.URL.Query().Get("type") == "purchase" {
		for i := len(f.Paid) - 1; i >= 0; i-- {
			p := f.Paid[i]
			out = append(out, models.Transaction{Name: p.SupplierName, Date: p.PaymentDate, Mode: p.PaymentMode, Amount: p.PaymentAmount, Ref: p.PONumber})
		}
	} else {
		for i := len(f.Sales) - 1; i >= 0; i-- {
			p := f.Sales[i]
			out = append(out, models.Transaction{Name: p.CustomerName, Date: p.Date, Mode: p.BankName, Amount: p.Amount})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) salesBalances(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customerName")
	out := []models.SalesBalance{}
	for _, b := range f.Bills {
		if b.Cancelled() || (customer != "" && b.CustomerName != customer) {
			continue
		}
		out = append(out, models.SalesBalance{
			CustomerName: b.CustomerName, InvoiceNumber: b.InvoiceNumber, Date: b.Date,
			GrandTotal: b.GrandTotal, BalanceAmount: b.GrandTotal, PaymentStatus: "Pending",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) purchaseBalances(w http.ResponseWriter, r *http.Request) {
	supplier := r.URL.Query().Get("supplierName")
	out := []models.PurchaseBalance{}
	for _, b := range f.Balances {
		if supplier == "" || b.SupplierName == supplier {
			out = append(out, b)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) resetYear(w http.ResponseWriter, r *http.Request) {
	f.ResetYears = append(f.ResetYears, r.URL.Query().Get("financialYear"))
	f.next = 1
	w.WriteHeader(http.StatusOK)
}
