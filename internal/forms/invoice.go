package forms

import (
	"net/url"
	"strconv"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/gst"
	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/validation"
	"github.com/shopspring/decimal"
)

// Item is one row of raw item input.
type Item struct {
	ProductName Value `json:"productName"`
	HSN         Value `json:"hsn"`
	Qty         Value `json:"qty"`
	Price       Value `json:"price"`
}

// readItems zips the repeated productName/hsn/qty/price inputs of an HTML form.
func readItems(v url.Values) []Item {
	names := v["productName"]
	n := len(names)
	for _, k := range []string{"hsn", "qty", "price"} {
		if len(v[k]) > n {
			n = len(v[k])
		}
	}
	at := func(k string, i int) Value {
		if i < len(v[k]) {
			return Value(v[k][i])
		}
		return ""
	}
	out := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Item{
			ProductName: at("productName", i),
			HSN:         at("hsn", i),
			Qty:         at("qty", i),
			Price:       at("price", i),
		})
	}
	return out
}

// LineItems converts raw rows into numbered line items; bad numbers become 0.
// An empty list yields the single default row.
func LineItems(rows []Item) gst.Items {
	if len(rows) == 0 {
		return gst.NewItems()
	}
	items := make(gst.Items, 0, len(rows))
	for i, r := range rows {
		items = items.Add().
			Set(i, gst.FieldProductName, r.ProductName.String()).
			Set(i, gst.FieldHSN, r.HSN.String()).
			Set(i, gst.FieldQuantity, string(r.Qty)).
			Set(i, gst.FieldUnitPrice, string(r.Price))
	}
	return items
}

// ItemRows turns line items back into form rows.
func ItemRows(items gst.Items) []Item {
	out := make([]Item, 0, len(items))
	for _, li := range items {
		out = append(out, Item{
			ProductName: Value(li.ProductName),
			HSN:         Value(li.HSN),
			Qty:         Value(strconv.FormatInt(li.Quantity, 10)),
			Price:       Value(li.UnitPrice.String()),
		})
	}
	return out
}

// BlankRows is the row list of a fresh document.
func BlankRows() []Item { return ItemRows(gst.NewItems()) }

// EditRows applies a row operation (add, remove) to raw form rows.
func EditRows(rows []Item, edit func(gst.Items) gst.Items) []Item {
	return ItemRows(edit(LineItems(rows)))
}

// Invoice is the generate-invoice screen. InvoiceNumber is display only; the
// number actually used is the one issued by the billing API.
type Invoice struct {
	InvoiceNumber Value  `json:"invoiceNumber"`
	CustomerName  Value  `json:"name"`
	Date          Value  `json:"currentDate"`
	NoOfBales     Value  `json:"noOfBales"`
	Transport     Value  `json:"transport"`
	Items         []Item `json:"items"`
}

func (f *Invoice) readValues(v url.Values) {
	f.InvoiceNumber = get(v, "invoiceNumber")
	f.CustomerName = get(v, "name")
	f.Date = get(v, "currentDate")
	f.NoOfBales = get(v, "noOfBales")
	f.Transport = get(v, "transport")
	f.Items = readItems(v)
}

func (f Invoice) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", f.CustomerName.String(), v)
	if len(f.Items) == 0 {
		v["items"] = "at_least_one_item"
	} else if LineItems(f.Items).HasUnnamed() {
		v["items"] = "item_name_required"
	}
	if f.Date.String() != "" {
		validation.ISODate("currentDate", f.Date.String(), v)
	}
	return v
}

// Totals is the flat 5% breakdown of the current rows.
func (f Invoice) Totals() gst.FlatBreakdown {
	return gst.ComputeFlatGst(gst.Subtotal(LineItems(f.Items)))
}

// Draft builds the request body for invoice generation.
func (f Invoice) Draft(number string) models.InvoiceDraft {
	date := f.Date.String()
	if date == "" {
		date = models.Today()
	}
	items := LineItems(f.Items)
	d := models.InvoiceDraft{
		InvoiceNumber: number,
		CustomerName:  f.CustomerName.String(),
		Date:          date,
		NoOfBales:     gst.ParseQuantity(string(f.NoOfBales)),
		Transport:     f.Transport.String(),
		Items:         items,
	}
	d.ApplyTotals(gst.ComputeFlatGst(gst.Subtotal(items)))
	return d
}

// PurchaseEntry is the add-purchase screen. When AmountBeforeTax is filled it
// replaces the item subtotal as the taxable amount.
type PurchaseEntry struct {
	SupplierName    Value  `json:"supplierName"`
	SupplierAddress Value  `json:"supplierAddress"`
	GSTNumber       Value  `json:"gstNumber"`
	PONumber        Value  `json:"poNumber"`
	PODate          Value  `json:"poDate"`
	Items           []Item `json:"items"`
	AmountBeforeTax Value  `json:"amountBeforeTax"`
	TaxRate         Value  `json:"taxRate"`
	CustomRate      Value  `json:"customRate"`
}

func (f *PurchaseEntry) readValues(v url.Values) {
	f.SupplierName = get(v, "supplierName")
	f.SupplierAddress = get(v, "supplierAddress")
	f.GSTNumber = get(v, "gstNumber")
	f.PONumber = get(v, "poNumber")
	f.PODate = get(v, "poDate")
	f.Items = readItems(v)
	f.AmountBeforeTax = get(v, "amountBeforeTax")
	f.TaxRate = get(v, "taxRate")
	f.CustomRate = get(v, "customRate")
}

// Rate resolves the selected option, defaulting to 5%.
func (f PurchaseEntry) Rate() gst.TaxRate {
	return gst.ParseTaxRate(f.TaxRate.String(), f.CustomRate.String())
}

// Subtotal is the taxable amount before GST.
func (f PurchaseEntry) Subtotal() decimal.Decimal {
	if f.AmountBeforeTax.String() != "" {
		return gst.ParsePrice(string(f.AmountBeforeTax))
	}
	return gst.Subtotal(LineItems(f.Items))
}

// Totals is the split CGST/SGST breakdown for the selected rate.
func (f PurchaseEntry) Totals() gst.Breakdown {
	return gst.ComputeSplitGst(f.Subtotal(), f.Rate())
}

func (f PurchaseEntry) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("supplierName", f.SupplierName.String(), v)
	validation.Required("poNumber", f.PONumber.String(), v)
	validation.ISODate("poDate", f.PODate.String(), v)
	if opt := f.TaxRate.String(); opt != "" && !gst.Rate(opt).Valid() {
		v["taxRate"] = "invalid_option"
	}
	validation.PositiveAmount("amountBeforeTax", f.Subtotal(), v)
	return v
}

func (f PurchaseEntry) Model() models.PurchaseEntry {
	var items []gst.LineItem
	if f.AmountBeforeTax.String() == "" {
		items = LineItems(f.Items)
	}
	return models.PurchaseEntry{
		SupplierName:    f.SupplierName.String(),
		SupplierAddress: f.SupplierAddress.String(),
		GSTNumber:       f.GSTNumber.String(),
		PONumber:        f.PONumber.String(),
		PODate:          f.PODate.String(),
		Items:           items,
		TaxRate:         f.Rate().Percent(),
		Breakdown:       f.Totals(),
	}
}

// Cancel is the cancel-invoice lookup.
type Cancel struct {
	InvoiceNumber Value `json:"invoiceNumber"`
}

func (f *Cancel) readValues(v url.Values) { f.InvoiceNumber = get(v, "invoiceNumber") }

func (f Cancel) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("invoiceNumber", f.InvoiceNumber.String(), v)
	return v
}
