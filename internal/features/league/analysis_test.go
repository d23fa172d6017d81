package league

import (
	"strings"
	"testing"
)

func TestParseAnalysisDecodesQuotedHistory(t *testing.T) {
	csv := "id,title,history\n" +
		`89,Napoli,"[{'h_a': 'h', 'xG': 2.1, 'xGA': 0.8, 'result': 'w', 'date': '2018-08-18 17:00:00'}, ` +
		`{'h_a': 'a', 'xG': 1.0, 'xGA': 1.4, 'result': 'l', 'date': '2018-08-25 19:30:00'}]"` + "\n"

	teams, err := ParseAnalysis(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("got %d teams, want 1", len(teams))
	}
	team := teams[0]
	if team.ID != "89" || team.Title != "Napoli" {
		t.Errorf("team = %+v", team)
	}
	if len(team.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(team.Matches))
	}
	first := team.Matches[0]
	if first.Venue != "h" || first.XG != 2.1 || first.Result != "w" {
		t.Errorf("first match = %+v", first)
	}
}

func TestParseAnalysisSkipsUntitledRows(t *testing.T) {
	csv := "id,title,history\n" +
		`1,,"[]"` + "\n" +
		`2,Lyon,"[]"` + "\n"
	teams, err := ParseAnalysis(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if len(teams) != 1 || teams[0].Title != "Lyon" {
		t.Fatalf("teams = %+v, want only Lyon", teams)
	}
}

func TestFindTeamSeasonPartialCaseInsensitive(t *testing.T) {
	teams := []TeamSeason{
		{Title: "Borussia Dortmund"},
		{Title: "Bayern Munich"},
	}

	team, found := FindTeamSeason(teams, "bayern")
	if !found || team.Title != "Bayern Munich" {
		t.Errorf("FindTeamSeason(bayern) = %+v, %v", team, found)
	}
	if _, found := FindTeamSeason(teams, "juventus"); found {
		t.Error("expected no match for juventus")
	}
}

func seasonWith(diff float64, n int) TeamSeason {
	matches := make([]SeasonMatch, n)
	for i := range matches {
		venue := "h"
		if i%2 == 1 {
			venue = "a"
		}
		matches[i] = SeasonMatch{Venue: venue, XG: 1.0 + diff, XGA: 1.0, Result: "d", Date: "2018-09-01 15:00:00"}
	}
	return TeamSeason{Title: "Arsenal", Matches: matches}
}

func TestAnalyzeTeamPerformanceTiers(t *testing.T) {
	tests := []struct {
		name string
		diff float64
		want string
	}{
		{"excellent", 0.8, "Excellent offensive threat"},
		{"good", 0.3, "Good attacking performance"},
		{"balanced", -0.2, "Balanced but room for improvement"},
		{"struggling", -0.9, "Struggling defensively"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := AnalyzeTeam(seasonWith(tc.diff, 4), "Premier League")
			if !strings.Contains(out, tc.want) {
				t.Errorf("analysis for diff %.1f missing %q:\n%s", tc.diff, tc.want, out)
			}
		})
	}
}

func TestAnalyzeTeamSections(t *testing.T) {
	out := AnalyzeTeam(seasonWith(0.5, 6), "Serie A")

	for _, want := range []string{
		"ARSENAL - SERIE A ANALYSIS",
		"• Total Matches: 6",
		"• Home Matches: 3",
		"• Away Matches: 3",
		"• Average xG: 1.50",
		"• Average xGA: 1.00",
		"• xG Difference: +0.50 (Positive)",
		"🏠 Home - xG: 1.50, xGA: 1.00, Diff: 0.50",
		"✈️ Away - xG: 1.50, xGA: 1.00, Diff: 0.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("analysis missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeTeamNoData(t *testing.T) {
	out := AnalyzeTeam(TeamSeason{Title: "Ghosts"}, "Ligue 1")
	if out != "❌ No match data available" {
		t.Errorf("got %q", out)
	}
}

func TestRecentMatchesShowsLastFive(t *testing.T) {
	team := TeamSeason{Title: "Juventus"}
	dates := []string{
		"2019-04-01 15:00:00", "2019-04-08 15:00:00", "2019-04-15 15:00:00",
		"2019-04-22 15:00:00", "2019-04-29 15:00:00", "2019-05-06 15:00:00",
		"2019-05-13 15:00:00",
	}
	for i, date := range dates {
		result := "w"
		if i == 6 {
			result = "l"
		}
		team.Matches = append(team.Matches, SeasonMatch{Venue: "h", XG: 1.2, XGA: 0.9, Result: result, Date: date})
	}

	out := RecentMatches(team, 5)
	if !strings.Contains(out, "Last 5 Matches for Juventus") {
		t.Errorf("missing title: %q", out)
	}
	if strings.Contains(out, "2019-04-08") {
		t.Errorf("older match leaked into output: %q", out)
	}
	if !strings.Contains(out, "3. 2019-04-15 | 🏠 Home") {
		t.Errorf("missing numbered entry: %q", out)
	}
	if !strings.Contains(out, "7. 2019-05-13 | 🏠 Home") {
		t.Errorf("missing final entry: %q", out)
	}
	if !strings.Contains(out, "xG: 1.20 - xGA: 0.90 | Result: l") {
		t.Errorf("missing match line: %q", out)
	}
}

func TestFormatSeasonTeamsSortsTitles(t *testing.T) {
	out := FormatSeasonTeams([]TeamSeason{
		{Title: "Roma"}, {Title: "Atalanta"}, {Title: "Milan"},
	}, "Serie A")

	if !strings.Contains(out, "Available SERIE A Teams") {
		t.Errorf("missing title: %q", out)
	}
	atalanta := strings.Index(out, "Atalanta")
	milan := strings.Index(out, "Milan")
	roma := strings.Index(out, "Roma")
	if !(atalanta < milan && milan < roma) {
		t.Errorf("teams not sorted: %q", out)
	}
	if !strings.Contains(out, "*Total: 3 teams*") {
		t.Errorf("missing total: %q", out)
	}
}

func TestExportTeamJSONShape(t *testing.T) {
	team := TeamSeason{
		Title:   "PSG",
		Matches: []SeasonMatch{{Venue: "h", XG: 2.0, XGA: 0.5, Result: "w", Date: "2018-08-12 15:00:00"}},
	}
	payload, err := ExportTeamJSON(team, "2026-09-01T00:00:00Z")
	if err != nil {
		t.Fatalf("ExportTeamJSON: %v", err)
	}
	out := string(payload)
	for _, want := range []string{`"teamName": "PSG"`, `"totalMatches": 1`, `"exportDate": "2026-09-01T00:00:00Z"`, `"h_a": "h"`} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}
