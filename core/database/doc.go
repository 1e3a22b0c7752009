// Package database handles database connections and schema inspection.
//
// Connect wraps GORM and opens either MySQL (the default) or SQLite, chosen by
// Config.Driver. SQLite is meant for single node deployments and tests.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns on either dialect. The integrity
// feature uses it to verify that the collections table matches its model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "collections")
package database
