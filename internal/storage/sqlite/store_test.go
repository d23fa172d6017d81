package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/questline/internal/features/league"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "league.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestMatchesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	matches := []league.Match{
		{
			Date: "10/08/2018", HomeTeam: "man united", AwayTeam: "leicester",
			HomeGoals: 2, AwayGoals: 1, HomeShots: 8, AwayShots: 13,
			HomeCorners: 2, AwayCorners: 5, HomeYellow: 2, AwayYellow: 1,
			Referee: "A Marriner",
		},
		{
			Date: "11/08/2018", HomeTeam: "bournemouth", AwayTeam: "cardiff",
			HomeGoals: 2, AwayGoals: 0, Referee: "K Friend",
		},
	}
	if err := store.ReplaceMatches(ctx, "epl", matches); err != nil {
		t.Fatalf("ReplaceMatches: %v", err)
	}

	got, err := store.Matches(ctx, "epl")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0] != matches[0] || got[1] != matches[1] {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, matches)
	}
}

func TestMatchesEmptyLeague(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Matches(context.Background(), "laliga")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d matches, want none", len(got))
	}
}

func TestReplaceMatchesSwapsRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := []league.Match{
		{Date: "a", HomeTeam: "x", AwayTeam: "y", Referee: "r"},
		{Date: "b", HomeTeam: "y", AwayTeam: "x", Referee: "r"},
	}
	if err := store.ReplaceMatches(ctx, "seriea", first); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := []league.Match{{Date: "c", HomeTeam: "x", AwayTeam: "z", Referee: "r"}}
	if err := store.ReplaceMatches(ctx, "seriea", second); err != nil {
		t.Fatalf("second import: %v", err)
	}

	got, err := store.Matches(ctx, "seriea")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(got) != 1 || got[0].Date != "c" {
		t.Errorf("got %+v, want only the re-imported row", got)
	}
}

func TestReplaceMatchesIsolatedPerLeague(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.ReplaceMatches(ctx, "epl", []league.Match{{Date: "a", HomeTeam: "x", AwayTeam: "y"}}); err != nil {
		t.Fatalf("epl import: %v", err)
	}
	if err := store.ReplaceMatches(ctx, "laliga", []league.Match{{Date: "b", HomeTeam: "p", AwayTeam: "q"}}); err != nil {
		t.Fatalf("laliga import: %v", err)
	}

	epl, err := store.Matches(ctx, "epl")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(epl) != 1 || epl[0].HomeTeam != "x" {
		t.Errorf("epl rows = %+v", epl)
	}
}

func TestAnalysisRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	teams := []league.TeamSeason{
		{
			ID:    "89",
			Title: "Napoli",
			Matches: []league.SeasonMatch{
				{Venue: "h", XG: 2.1, XGA: 0.8, Result: "w", Date: "2018-08-18 17:00:00"},
				{Venue: "a", XG: 1.0, XGA: 1.4, Result: "l", Date: "2018-08-25 19:30:00"},
			},
		},
		{ID: "92", Title: "Juventus"},
	}
	if err := store.ReplaceAnalysis(ctx, "seriea", teams); err != nil {
		t.Fatalf("ReplaceAnalysis: %v", err)
	}

	got, err := store.Analysis(ctx, "seriea")
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d teams, want 2", len(got))
	}
	if got[0].Title != "Napoli" || got[1].Title != "Juventus" {
		t.Errorf("import order lost: %+v", got)
	}
	if len(got[0].Matches) != 2 || got[0].Matches[0].XG != 2.1 {
		t.Errorf("history mismatch: %+v", got[0].Matches)
	}
}
