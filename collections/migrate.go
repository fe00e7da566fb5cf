package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"ironwood/services"
)

// MigrateDraftNumbers backfills the number field on estimate drafts saved
// before short references existed. Safe to run on every startup.
func MigrateDraftNumbers(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		return fmt.Errorf("migrate: could not find estimates collection: %w", err)
	}

	records, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("migrate: could not query estimates: %w", err)
	}

	migrated := 0
	for _, r := range records {
		if r.GetString("number") != "" {
			continue
		}
		r.Set("number", services.NewEstimateNumber())
		if err := app.Save(r); err != nil {
			return fmt.Errorf("migrate: backfill estimate %s: %w", r.Id, err)
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: backfilled references on %d estimate drafts", migrated)
	}
	return nil
}
