package gst

import "testing"

func TestParseQuantity(t *testing.T) {
	cases := map[string]int64{
		"3":       3,
		" 12 ":    12,
		"2.7":     2,
		"4 bales": 4,
		"":        0,
		"abc":     0,
		"-5":      0,
		"99999999999999999999": 0,
	}
	for in, want := range cases {
		if got := ParseQuantity(in); got != want {
			t.Fatalf("ParseQuantity(%q) = %d want %d", in, got, want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		"100":   "100",
		"12.50": "12.5",
		" 7 ":   "7",
		"":      "0",
		"NaN":   "0",
		"12abc": "0",
		"-3.25": "0",
	}
	for in, want := range cases {
		if got := ParsePrice(in); !got.Equal(dec(want)) {
			t.Fatalf("ParsePrice(%q) = %s want %s", in, got, want)
		}
	}
}

func TestParseCustomRate(t *testing.T) {
	cases := map[string]string{
		"7.5":   "7.5",
		"12.34": "12.3",
		"0":     "0",
		"100":   "100",
		"100.1": "0",
		"-1":    "0",
		"x":     "0",
	}
	for in, want := range cases {
		if got := ParseCustomRate(in); !got.Equal(dec(want)) {
			t.Fatalf("ParseCustomRate(%q) = %s want %s", in, got, want)
		}
	}
}

func TestParseTaxRateFallsBackToFive(t *testing.T) {
	if r := ParseTaxRate("bogus", ""); !r.Percent().Equal(dec("5")) {
		t.Fatalf("expected 5 got %s", r.Percent())
	}
	if r := ParseTaxRate("18", "40"); !r.Percent().Equal(dec("18")) {
		t.Fatalf("custom value must be ignored for presets, got %s", r.Percent())
	}
	if r := ParseTaxRate("other", "oops"); !r.Percent().IsZero() {
		t.Fatalf("invalid custom rate should be 0, got %s", r.Percent())
	}
}

func TestItemsAddDefaults(t *testing.T) {
	items := NewItems().Add().Add()
	if len(items) != 3 {
		t.Fatalf("expected 3 rows got %d", len(items))
	}
	for i, li := range items {
		if li.SNo != i+1 || li.Quantity != 1 || !li.UnitPrice.IsZero() {
			t.Fatalf("row %d not default: %+v", i, li)
		}
	}
}

func TestItemsRemoveRenumbers(t *testing.T) {
	items := NewItems().Add().Add()
	items = items.Set(0, FieldProductName, "Cotton")
	items = items.Set(1, FieldProductName, "Silk")
	items = items.Set(2, FieldProductName, "Wool")
	out := items.Remove(1)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows got %d", len(out))
	}
	if out[0].ProductName != "Cotton" || out[1].ProductName != "Wool" {
		t.Fatalf("wrong rows kept: %+v", out)
	}
	if out[1].SNo != 2 {
		t.Fatalf("expected renumbered sNo 2 got %d", out[1].SNo)
	}
	if len(items) != 3 || items[1].ProductName != "Silk" {
		t.Fatalf("receiver mutated: %+v", items)
	}
}

func TestItemsRemoveLastRowClears(t *testing.T) {
	items := NewItems().
		Set(0, FieldProductName, "Cotton").
		Set(0, FieldQuantity, "9").
		Set(0, FieldUnitPrice, "45.5")
	out := items.Remove(0)
	if len(out) != 1 {
		t.Fatalf("expected a single cleared row, got %d rows", len(out))
	}
	if out[0].ProductName != "" || out[0].Quantity != 1 || !out[0].UnitPrice.IsZero() {
		t.Fatalf("row not cleared: %+v", out[0])
	}
}

func TestItemsSetCoercesInvalidNumbers(t *testing.T) {
	items := NewItems().Set(0, FieldQuantity, "lots").Set(0, FieldUnitPrice, "free")
	if items[0].Quantity != 0 || !items[0].UnitPrice.IsZero() {
		t.Fatalf("expected zeros got %+v", items[0])
	}
	if !Subtotal(items).IsZero() {
		t.Fatalf("expected zero subtotal")
	}
}

func TestItemsHasUnnamed(t *testing.T) {
	items := NewItems().Add().Set(0, FieldProductName, "Cotton")
	if !items.HasUnnamed() {
		t.Fatalf("second row has no name")
	}
	items = items.Set(1, FieldProductName, "  ")
	if !items.HasUnnamed() {
		t.Fatalf("blank name should count as unnamed")
	}
	items = items.Set(1, FieldProductName, "Silk")
	if items.HasUnnamed() {
		t.Fatalf("all rows named")
	}
}
