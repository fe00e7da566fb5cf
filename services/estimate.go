// Package services provides the domain logic for the Ironwood demo site:
// estimate math, catalog filtering, scope template application, share link
// encoding and the export generators.
package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
)

// Qty bounds for a single line item.
const (
	MinLineQty = 0
	MaxLineQty = 999999
)

// LineItem is one row of an estimate. Extended price (Qty * UnitPrice) is
// always recomputed and never stored.
type LineItem struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Note      string  `json:"note"`
}

// Extended returns qty x unit price for the line.
func (l LineItem) Extended() float64 {
	return float64(l.Qty) * l.UnitPrice
}

// Estimate is the builder's central entity. The JSON form doubles as the
// share-link payload and the export snapshot, so the field tags are part of
// the wire format.
type Estimate struct {
	ID          string     `json:"id"`
	Client      string     `json:"client"`
	Project     string     `json:"project"`
	Address     string     `json:"address"`
	Date        string     `json:"date"`
	ValidDays   int        `json:"valid_days"`
	Notes       string     `json:"notes"`
	MarkupPct   float64    `json:"markup_pct"`
	DiscountAmt float64    `json:"discount_amt"`
	TaxPct      float64    `json:"tax_pct"`
	ScopeID     string     `json:"scope_id,omitempty"`
	ScopeName   string     `json:"scope_name,omitempty"`
	Lines       []LineItem `json:"lines"`
}

// NewEstimate returns a fresh estimate: new reference, today's date, 30 day
// validity, 5% tax, no lines.
func NewEstimate() Estimate {
	return Estimate{
		ID:        NewEstimateNumber(),
		Date:      TodayISO(),
		ValidDays: 30,
		TaxPct:    5,
		Lines:     []LineItem{},
	}
}

// NewEstimateNumber generates a short human-readable reference like
// "3F2A-9C1B" from a random UUID.
func NewEstimateNumber() string {
	s := uuid.NewString()
	return strings.ToUpper(s[:4] + "-" + s[9:13])
}

// TodayISO returns the current date as YYYY-MM-DD.
func TodayISO() string {
	return time.Now().Format("2006-01-02")
}

// ClampQty constrains a line quantity to [MinLineQty, MaxLineQty].
func ClampQty(n int) int {
	if n < MinLineQty {
		return MinLineQty
	}
	if n > MaxLineQty {
		return MaxLineQty
	}
	return n
}

// EstimateFromRecord rebuilds an Estimate from its stored record. A corrupt
// lines blob is treated as no lines rather than failing the page.
func EstimateFromRecord(rec *core.Record) Estimate {
	est := Estimate{
		ID:          rec.GetString("number"),
		Client:      rec.GetString("client"),
		Project:     rec.GetString("project"),
		Address:     rec.GetString("address"),
		Date:        rec.GetString("date"),
		ValidDays:   rec.GetInt("valid_days"),
		Notes:       rec.GetString("notes"),
		MarkupPct:   rec.GetFloat("markup_pct"),
		DiscountAmt: rec.GetFloat("discount_amt"),
		TaxPct:      rec.GetFloat("tax_pct"),
		ScopeID:     rec.GetString("scope_slug"),
		ScopeName:   rec.GetString("scope_name"),
		Lines:       []LineItem{},
	}
	if raw := rec.GetString("lines"); raw != "" {
		var lines []LineItem
		if err := json.Unmarshal([]byte(raw), &lines); err == nil && lines != nil {
			est.Lines = lines
		}
	}
	return est
}

// ApplyEstimateToRecord writes every estimate field back onto the record.
func ApplyEstimateToRecord(est Estimate, rec *core.Record) error {
	raw, err := json.Marshal(est.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	rec.Set("number", est.ID)
	rec.Set("client", est.Client)
	rec.Set("project", est.Project)
	rec.Set("address", est.Address)
	rec.Set("date", est.Date)
	rec.Set("valid_days", est.ValidDays)
	rec.Set("notes", est.Notes)
	rec.Set("markup_pct", est.MarkupPct)
	rec.Set("discount_amt", est.DiscountAmt)
	rec.Set("tax_pct", est.TaxPct)
	rec.Set("scope_slug", est.ScopeID)
	rec.Set("scope_name", est.ScopeName)
	rec.Set("lines", string(raw))
	return nil
}
