package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	pg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const migrationsTable = "schema_migrations_migrate"

// RunMigrations applies the file migrations in dir. A database created by
// the legacy init script already has player_scores but no migrate metadata;
// it is baselined to version 1 so only later migrations run.
func RunMigrations(databaseURL, dir string) error {
	if databaseURL == "" {
		return errors.New("database URL is empty")
	}

	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open DB: %w", err)
	}
	defer sqlDB.Close()

	driver, err := pg.WithInstance(sqlDB, &pg.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if legacy, err := hasLegacySchema(sqlDB); err != nil {
		log.Printf("[MIGRATE] Could not inspect existing schema: %v", err)
	} else if legacy {
		log.Printf("[MIGRATE] Baseline DB to version 1 (player_scores already present)")
		if ferr := m.Force(1); ferr != nil {
			return fmt.Errorf("baseline to version 1 failed: %w", ferr)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", verr)
	}
	log.Printf("[MIGRATE] Schema at version %d (dirty=%v, latest on disk %d)", version, dirty, LatestVersion(dir))
	return nil
}

// hasLegacySchema reports whether player_scores exists without migrate's
// metadata table.
func hasLegacySchema(db *sql.DB) (bool, error) {
	var scoresExist, metaExist bool
	q := "SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)"
	if err := db.QueryRow(q, "player_scores").Scan(&scoresExist); err != nil {
		return false, err
	}
	if err := db.QueryRow(q, migrationsTable).Scan(&metaExist); err != nil {
		return false, err
	}
	return scoresExist && !metaExist, nil
}

var versionPrefix = regexp.MustCompile(`^0*([0-9]+)_.*\.up\.sql$`)

// LatestVersion returns the highest migration version found in dir, or 0.
func LatestVersion(dir string) int64 {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	var latest int64
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		m := versionPrefix.FindStringSubmatch(f.Name())
		if len(m) < 2 {
			continue
		}
		if v, _ := strconv.ParseInt(m[1], 10, 64); v > latest {
			latest = v
		}
	}
	return latest
}
