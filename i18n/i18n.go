// Package i18n holds the UI and validation message catalog.
package i18n

import (
	"context"
	"strings"
)

// Default is used when nothing better is known.
const Default = "en"

var catalog = map[string]map[string]string{
	"en": {
		// validation codes
		"required":           "Required",
		"must_be_positive":   "Must be greater than zero",
		"exceeds_balance":    "Exceeds the outstanding balance",
		"invalid_date":       "Invalid date",
		"end_before_start":   "End date is before start date",
		"invalid_format":     "Invalid format",
		"invalid_option":     "Invalid option",
		"at_least_one_item":  "Add at least one item",
		"item_name_required": "Every item needs a product name",
		"out_of_range":       "Out of range",
		"no_open_balance":    "No open balance for this purchase order",

		// flashes
		"customer_saved":    "Customer saved",
		"customer_updated":  "Customer updated",
		"product_saved":     "Product saved",
		"invoice_generated": "Invoice generated",
		"invoice_cancelled": "Invoice cancelled",
		"purchase_saved":    "Purchase entry saved",
		"payment_saved":     "Payment recorded",
		"year_reset":        "Financial year reset",
		"logged_out":        "You have been logged out",
		"session_expired":   "Your session expired, please login again",
		"login_failed":      "Login failed",
		"already_cancelled": "This invoice has been cancelled and cannot be processed further",

		// navigation and labels
		"nav_dashboard":   "Dashboard",
		"nav_customers":   "Customers",
		"nav_products":    "Products",
		"nav_invoices":    "New invoice",
		"nav_purchases":   "Purchases",
		"nav_payments":    "Payments",
		"nav_balances":    "Balances",
		"nav_reports":     "Reports",
		"nav_reset_year":  "Reset year",
		"login":           "Login",
		"logout":          "Logout",
		"save":            "Save",
		"preview":         "Preview",
		"cancel_invoice":  "Cancel invoice",
		"subtotal":        "Subtotal",
		"cgst":            "CGST",
		"sgst":            "SGST",
		"igst":            "IGST",
		"gst":             "GST",
		"grand_total":     "Grand total",
		"total_sales":     "Total sales",
		"total_purchases": "Total purchases",
		"outstanding":     "Outstanding",
		"no_results":      "No results",
	},
	"hi": {
		"required":           "आवश्यक",
		"must_be_positive":   "शून्य से अधिक होना चाहिए",
		"exceeds_balance":    "बकाया राशि से अधिक",
		"invalid_date":       "अमान्य तिथि",
		"end_before_start":   "अंतिम तिथि आरंभ तिथि से पहले है",
		"invalid_format":     "अमान्य प्रारूप",
		"invalid_option":     "अमान्य विकल्प",
		"at_least_one_item":  "कम से कम एक वस्तु जोड़ें",
		"item_name_required": "हर वस्तु का नाम आवश्यक है",

		"customer_saved":    "ग्राहक सहेजा गया",
		"invoice_generated": "बिल बनाया गया",
		"invoice_cancelled": "बिल रद्द किया गया",
		"payment_saved":     "भुगतान दर्ज किया गया",
		"logged_out":        "आप लॉग आउट हो गए हैं",
		"session_expired":   "सत्र समाप्त, कृपया फिर से लॉगिन करें",

		"nav_dashboard": "डैशबोर्ड",
		"nav_customers": "ग्राहक",
		"nav_products":  "उत्पाद",
		"nav_invoices":  "नया बिल",
		"nav_payments":  "भुगतान",
		"nav_reports":   "रिपोर्ट",
		"login":         "लॉगिन",
		"logout":        "लॉगआउट",
		"save":          "सहेजें",
		"grand_total":   "कुल योग",
	},
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// DetectLanguage picks the first supported primary tag of an Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		primary, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if Supported(primary) {
			return primary
		}
	}
	return Default
}

// T translates code, falling back to English and then to the code itself.
func T(lang, code string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[Default][code]; ok {
		return s
	}
	return code
}

type langKey struct{}

// WithLang returns a context carrying the UI language.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the language set by WithLang, or Default.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return Default
}
