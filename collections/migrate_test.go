package collections_test

import (
	"testing"

	"ironwood/collections"
	"ironwood/services"
	"ironwood/testhelpers"
)

func TestMigrateDraftNumbers_BackfillsBlankReferences(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	old := testhelpers.CreateTestEstimate(t, app, services.Estimate{
		Client: "Legacy draft",
		Lines:  []services.LineItem{},
	})
	kept := testhelpers.CreateTestEstimate(t, app, services.Estimate{
		ID:     "AAAA-BBBB",
		Client: "Referenced draft",
		Lines:  []services.LineItem{},
	})

	if err := collections.MigrateDraftNumbers(app); err != nil {
		t.Fatalf("MigrateDraftNumbers() error: %v", err)
	}

	oldRec, err := app.FindRecordById("estimates", old.Id)
	if err != nil {
		t.Fatal(err)
	}
	if oldRec.GetString("number") == "" {
		t.Error("blank reference not backfilled")
	}

	keptRec, err := app.FindRecordById("estimates", kept.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got := keptRec.GetString("number"); got != "AAAA-BBBB" {
		t.Errorf("existing reference rewritten to %q", got)
	}
}

func TestMigrateDraftNumbers_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := testhelpers.CreateTestEstimate(t, app, services.Estimate{Client: "x", Lines: []services.LineItem{}})

	if err := collections.MigrateDraftNumbers(app); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	first, _ := app.FindRecordById("estimates", rec.Id)
	num := first.GetString("number")

	if err := collections.MigrateDraftNumbers(app); err != nil {
		t.Fatalf("second run error: %v", err)
	}
	second, _ := app.FindRecordById("estimates", rec.Id)
	if got := second.GetString("number"); got != num {
		t.Errorf("second run changed reference %q -> %q", num, got)
	}
}
