package postgres

import (
	"io"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	d, err := migrationSource()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()

	version, err := d.First()
	if err != nil {
		t.Fatalf("expected at least one migration: %v", err)
	}

	for {
		up, _, err := d.ReadUp(version)
		if err != nil {
			t.Fatalf("missing up migration %d: %v", version, err)
		}
		up.Close()

		down, _, err := d.ReadDown(version)
		if err != nil {
			t.Fatalf("missing down migration %d: %v", version, err)
		}
		down.Close()

		next, err := d.Next(version)
		if err != nil {
			break
		}
		version = next
	}
}

func TestInitialMigrationEnforcesLedgerIdentity(t *testing.T) {
	d, err := migrationSource()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()

	r, _, err := d.ReadUp(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"PRIMARY KEY (wallet_id, month)",
		"closing_balance = opening_balance + total_income - total_expense",
		"CHECK (amount > 0)",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected migration to contain %q", want)
		}
	}
}
