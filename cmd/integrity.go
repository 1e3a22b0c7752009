package cmd

import (
	"fmt"

	"changeset-manager/core/config"
	"changeset-manager/core/database"
	"changeset-manager/core/logger"
	"changeset-manager/core/storage"
	"changeset-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the archive bucket and the database schema",
	Long:  `Checks that the plan archive bucket exists and that the collections table matches the model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService()
		if err != nil {
			return err
		}
		if err := checkStorage(cmd, svc, logg, false); err != nil {
			return err
		}
		return checkDatabase(svc, logg)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the plan archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService()
		if err != nil {
			return err
		}
		return checkStorage(cmd, svc, logg, fixFlag)
	},
}

// databaseCmd represents the integrity database command
var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the collections table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService()
		if err != nil {
			return err
		}
		return checkDatabase(svc, logg)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, databaseCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
}

func newIntegrityService() (*integrity.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	return integrity.NewService(store, cfg.Storage.Bucket, cfg.Archive.Prefix, logg, db), logg, nil
}

func checkStorage(cmd *cobra.Command, svc *integrity.Service, logg *zap.Logger, fix bool) error {
	logg.Info("Checking archive bucket...")
	report, err := svc.CheckStorage(cmd.Context())
	if err != nil {
		return fmt.Errorf("storage check failed: %w", err)
	}

	if report.Exists {
		logg.Info("Archive bucket is intact.", zap.String("bucket", report.Bucket), zap.Int("plans", report.Plans))
		return nil
	}

	logg.Warn("Archive bucket is missing", zap.String("bucket", report.Bucket))
	if !fix {
		logg.Info("Run 'integrity storage --fix' to create it.")
		return nil
	}
	if err := svc.FixStorage(cmd.Context()); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func checkDatabase(svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking database schema...")
	report, err := svc.CheckDatabase()
	if err != nil {
		logg.Error("Database schema check failed", zap.Error(err))
		return nil
	}

	if report.Matched {
		logg.Info("Database schema matches the collection model.", zap.String("driver", report.Driver))
		return nil
	}

	logg.Warn("Database schema mismatches found", zap.String("driver", report.Driver))
	for table, tbl := range report.Tables {
		if tbl.Status == "ok" {
			continue
		}
		if len(tbl.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
		}
		if len(tbl.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
	return nil
}
