package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// GetSetting returns the stored value for key, or "" when it is unset.
func GetSetting(app *pocketbase.PocketBase, key string) string {
	records, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": key},
	)
	if err != nil || len(records) == 0 {
		return ""
	}
	return records[0].GetString("value")
}

// SaveSetting upserts a key/value pair in the settings collection.
func SaveSetting(app *pocketbase.PocketBase, key, value string) error {
	records, err := app.FindRecordsByFilter(
		"settings",
		"key = {:key}",
		"",
		1,
		0,
		map[string]any{"key": key},
	)
	if err != nil {
		return fmt.Errorf("settings: query %q: %w", key, err)
	}

	var record *core.Record
	if len(records) > 0 {
		record = records[0]
	} else {
		col, err := app.FindCollectionByNameOrId("settings")
		if err != nil {
			return fmt.Errorf("settings: find collection: %w", err)
		}
		record = core.NewRecord(col)
		record.Set("key", key)
	}

	record.Set("value", value)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("settings: save %q: %w", key, err)
	}
	return nil
}
