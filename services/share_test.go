package services

import (
	"reflect"
	"strings"
	"testing"
)

func TestShareRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		est  Estimate
	}{
		{
			name: "empty estimate",
			est:  Estimate{ID: "AAAA-0000", Lines: []LineItem{}},
		},
		{
			name: "full estimate",
			est: Estimate{
				ID:          "3F2A-9C1B",
				Client:      "Harbour View Condos",
				Project:     "Phase 2 balconies",
				Address:     "18 Waterfront Dr",
				Date:        "2026-08-31",
				ValidDays:   30,
				Notes:       "Install crew access via loading dock.",
				MarkupPct:   12.5,
				DiscountAmt: 250,
				TaxPct:      5,
				ScopeID:     "deck-rail",
				ScopeName:   "Deck railing package",
				Lines: []LineItem{
					{Name: "Oak Rail 8ft", Qty: 6, UnitPrice: 189.5, Note: "clear coat"},
					{Name: "Steel Post", Qty: 14, UnitPrice: 74, Note: ""},
				},
			},
		},
		{
			name: "unicode free text",
			est: Estimate{
				ID:     "CAFE-D00D",
				Client: "Café Añejo — 渋谷",
				Notes:  "Ø12mm bolts, témoin «échantillon»",
				Lines:  []LineItem{{Name: "Grille décorative", Qty: 1, UnitPrice: 999.99}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := EncodeShare(tt.est)
			if err != nil {
				t.Fatalf("EncodeShare: %v", err)
			}
			if strings.ContainsAny(payload, "+/=") {
				t.Errorf("payload is not URL-safe / unpadded: %q", payload)
			}

			got, err := DecodeShare(payload)
			if err != nil {
				t.Fatalf("DecodeShare: %v", err)
			}
			if !reflect.DeepEqual(got, tt.est) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tt.est)
			}
		})
	}
}

func TestDecodeShareToleratesPadding(t *testing.T) {
	est := Estimate{ID: "PAD1-PAD2", Lines: []LineItem{}}
	payload, err := EncodeShare(est)
	if err != nil {
		t.Fatalf("EncodeShare: %v", err)
	}

	got, err := DecodeShare(payload + "==")
	if err != nil {
		t.Fatalf("DecodeShare with padding: %v", err)
	}
	if got.ID != est.ID {
		t.Errorf("ID = %q, want %q", got.ID, est.ID)
	}
}

func TestDecodeShareRejectsGarbage(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not json", "bm90IGpzb24"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeShare(tt.payload); err == nil {
				t.Errorf("DecodeShare(%q) succeeded, want error", tt.payload)
			}
		})
	}
}
