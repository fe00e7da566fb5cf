package services

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	deepcopy "github.com/tiendc/go-deepcopy"
)

// Scope application modes.
const (
	ScopeModeAdd     = "add"
	ScopeModeReplace = "replace"
)

// ScopeDefaults carries a template's suggested financial settings.
type ScopeDefaults struct {
	MarkupPct   float64 `json:"markup_pct"`
	DiscountAmt float64 `json:"discount_amt"`
	TaxPct      float64 `json:"tax_pct"`
}

// ScopeTemplate is a named, reusable bundle of line items with optional
// suggested markup/discount/tax and boilerplate terms. Templates are
// read-only after seeding.
type ScopeTemplate struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Group    string        `json:"group"`
	Summary  string        `json:"summary"`
	Lines    []LineItem    `json:"lines"`
	Defaults ScopeDefaults `json:"defaults"`
	Notes    string        `json:"notes"`
	Terms    []string      `json:"terms"`
}

// ApplyScope applies a template to an estimate in place.
//
// In "add" mode the template's lines are appended after the existing ones and
// the scope reference is recorded only if the estimate has none yet. In
// "replace" mode the existing lines are discarded entirely and the scope
// reference is always overwritten. Replace is destructive; the caller is
// responsible for confirming it with the user first.
//
// When applyDefaults is set, the template's suggested markup/discount/tax
// overlay the estimate's. Template notes are appended below a visible scope
// marker, never overwriting what the user already wrote.
//
// The inserted lines are deep copies, so later edits to the estimate can
// never leak back into the template.
func ApplyScope(est *Estimate, tpl ScopeTemplate, mode string, applyDefaults bool) error {
	var seeded []LineItem
	if err := deepcopy.Copy(&seeded, tpl.Lines); err != nil {
		return fmt.Errorf("copy template lines: %w", err)
	}
	if seeded == nil {
		seeded = []LineItem{}
	}

	switch mode {
	case ScopeModeAdd:
		est.Lines = append(est.Lines, seeded...)
		if est.ScopeID == "" {
			est.ScopeID = tpl.ID
			est.ScopeName = tpl.Name
		}
	case ScopeModeReplace:
		est.Lines = seeded
		est.ScopeID = tpl.ID
		est.ScopeName = tpl.Name
	default:
		return fmt.Errorf("unknown scope mode %q", mode)
	}

	if applyDefaults {
		est.MarkupPct = tpl.Defaults.MarkupPct
		est.DiscountAmt = tpl.Defaults.DiscountAmt
		est.TaxPct = tpl.Defaults.TaxPct
	}

	if tpl.Notes != "" {
		marker := fmt.Sprintf("— Scope: %s —", tpl.Name)
		if est.Notes != "" {
			est.Notes += "\n\n"
		}
		est.Notes += marker + "\n" + tpl.Notes
	}

	return nil
}

// ScopeTemplateFromRecord rebuilds a ScopeTemplate from its stored record.
func ScopeTemplateFromRecord(rec *core.Record) ScopeTemplate {
	tpl := ScopeTemplate{
		ID:      rec.GetString("slug"),
		Name:    rec.GetString("name"),
		Group:   rec.GetString("group"),
		Summary: rec.GetString("summary"),
		Notes:   rec.GetString("notes"),
		Defaults: ScopeDefaults{
			MarkupPct:   rec.GetFloat("default_markup_pct"),
			DiscountAmt: rec.GetFloat("default_discount_amt"),
			TaxPct:      rec.GetFloat("default_tax_pct"),
		},
		Lines: []LineItem{},
	}
	if raw := rec.GetString("lines"); raw != "" {
		var lines []LineItem
		if err := json.Unmarshal([]byte(raw), &lines); err == nil && lines != nil {
			tpl.Lines = lines
		}
	}
	decodeList(rec.GetString("terms"), &tpl.Terms)
	return tpl
}
