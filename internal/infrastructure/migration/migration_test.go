package migration

import (
	"strings"
	"testing"
)

func TestMigrations_AreRerunnable(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Migrations() {
		if seen[m.Name] {
			t.Errorf("duplicate migration name %q", m.Name)
		}
		seen[m.Name] = true
		if !strings.Contains(strings.ToUpper(m.SQL), "IF NOT EXISTS") {
			t.Errorf("migration %q is not safe to run twice", m.Name)
		}
	}
	if Migrations()[0].Name != "create_resumes_table" {
		t.Fatal("table must be created before it is altered")
	}
}
