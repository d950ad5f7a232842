package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/migrate"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_suppliers_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS items",
		"FOREIGN KEY (supplier_id) REFERENCES suppliers(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"additional_info JSONB",
		"DROP TABLE IF EXISTS items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestTransactionsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_transactions.sql")

	checks := []string{
		"FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE SET NULL",
		"CHECK (status IN ('pending', 'success', 'failed'))",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_external",
		"CHECK (unit > 0)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
