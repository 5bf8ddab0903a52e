package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("HI-in") != "hi" {
		t.Fatalf("expected hi for HI-in")
	}
	if DetectLanguage("fr-FR,hi;q=0.8") != "hi" {
		t.Fatalf("expected first supported tag")
	}
	if DetectLanguage("") != "en" {
		t.Fatalf("expected default en")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("hi", "required") != "आवश्यक" {
		t.Fatalf("expected hindi translation")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// missing hindi entry -> english
	if T("hi", "cgst") != "CGST" {
		t.Fatalf("expected en fallback for missing hi entry")
	}
	if T("es", "required") != "Required" {
		t.Fatalf("expected en fallback for unknown lang")
	}
}
