package bbolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/questline/internal/rpg"
)

func TestFindRPGFirstAccessDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questline.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	record, err := store.FindRPG(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("find rpg: %v", err)
	}
	if record.Health != rpg.MaxHealth {
		t.Fatalf("expected starting health %d, got %d", rpg.MaxHealth, record.Health)
	}
	if record.Level != 1 {
		t.Fatalf("expected starting level 1, got %d", record.Level)
	}
	if record.Items == nil {
		t.Fatal("expected items map to be initialised")
	}
}

func TestSaveAndFindRPGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questline.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	record := rpg.NewRecord()
	record.Money = 500
	record.Items["wood"] = 12
	record.EventProgress["forest"] = 2
	record.EventDeficit["forest"] = 4

	if err := store.SaveRPG(context.Background(), "user-2", record); err != nil {
		t.Fatalf("save rpg: %v", err)
	}

	loaded, err := store.FindRPG(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("find rpg: %v", err)
	}
	if loaded.Money != 500 {
		t.Fatalf("expected money 500, got %d", loaded.Money)
	}
	if loaded.Items["wood"] != 12 {
		t.Fatalf("expected 12 wood, got %d", loaded.Items["wood"])
	}
	if loaded.EventProgress["forest"] != 2 {
		t.Fatalf("expected forest progress 2, got %d", loaded.EventProgress["forest"])
	}
	if loaded.EventDeficit["forest"] != 4 {
		t.Fatalf("expected forest deficit 4, got %d", loaded.EventDeficit["forest"])
	}
}

func TestSaveRPGEmptyUserID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questline.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.SaveRPG(context.Background(), "  ", rpg.NewRecord()); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error")
	}
}
