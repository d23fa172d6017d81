package rpg

import "testing"

func TestAddHealthClampsAtMax(t *testing.T) {
	rec := NewRecord()
	rec.Health = 95

	rec.Add("health", 20)

	if rec.Health != MaxHealth {
		t.Fatalf("expected health %d, got %d", MaxHealth, rec.Health)
	}
}

func TestDebitFloorsAtZero(t *testing.T) {
	rec := NewRecord()
	rec.Energy = 10

	rec.Debit("energy", 50)

	if rec.Energy != 0 {
		t.Fatalf("expected energy 0, got %d", rec.Energy)
	}
}

func TestExpRoutesToExperience(t *testing.T) {
	rec := NewRecord()

	rec.Add("exp", 40)
	rec.Add("experience", 10)

	if rec.Experience != 50 {
		t.Fatalf("expected experience 50, got %d", rec.Experience)
	}
	if _, ok := rec.Items["exp"]; ok {
		t.Fatal("exp should not be stored as an item")
	}
}

func TestItemsFallback(t *testing.T) {
	rec := NewRecord()

	rec.Add("wood", 3)
	rec.Debit("wood", 1)

	if got := rec.Amount("wood"); got != 2 {
		t.Fatalf("expected 2 wood, got %d", got)
	}
}

func TestNormalizeRepairsLoadedRecord(t *testing.T) {
	rec := Record{Health: 180, Level: 0}

	rec.Normalize()

	if rec.Health != MaxHealth {
		t.Fatalf("expected health clamped to %d, got %d", MaxHealth, rec.Health)
	}
	if rec.Level != 1 {
		t.Fatalf("expected level 1, got %d", rec.Level)
	}
	if rec.Items == nil || rec.EventProgress == nil || rec.EventDeficit == nil {
		t.Fatal("expected maps to be initialised")
	}
}
