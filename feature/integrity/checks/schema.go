package checks

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"changeset-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of a database schema check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists the differences found for one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "error"
}

type column struct {
	name string
	typ  string
}

// CheckSchema verifies the database against the GORM column tags of models.
// Inspection failures are reported per table rather than aborting the check.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		table, expected, err := modelColumns(model)
		if err != nil {
			return nil, err
		}

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := compareColumns(expected, actual)
		if tbl.Status != "ok" {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}

func compareColumns(expected []column, actual []database.ColumnInfo) TableReport {
	tbl := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	for _, exp := range expected {
		act, ok := byName[exp.name]
		if !ok {
			tbl.MissingColumns = append(tbl.MissingColumns, exp.name)
			tbl.Status = "error"
			continue
		}
		// Loose match: "text" accepts mediumtext and longtext.
		if exp.typ != "" && !strings.Contains(act.Type, exp.typ) {
			tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", exp.name, exp.typ, act.Type))
			tbl.Status = "error"
		}
	}
	return tbl
}

// modelColumns reads the table name and the tagged columns of a GORM model.
func modelColumns(model any) (string, []column, error) {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model %s is not a struct", t)
	}

	tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
	if !ok {
		return "", nil, fmt.Errorf("model %s does not implement TableName", t)
	}

	var cols []column
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		name := gormSetting(tag, "column")
		if name == "" {
			continue
		}
		cols = append(cols, column{name: name, typ: strings.ToLower(gormSetting(tag, "type"))})
	}
	return tabler.TableName(), cols, nil
}

func gormSetting(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
