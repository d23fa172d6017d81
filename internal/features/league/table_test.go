package league

import (
	"strings"
	"testing"
)

func TestComputeTableScoringAndOrdering(t *testing.T) {
	matches := []Match{
		{HomeTeam: "arsenal", AwayTeam: "burnley", HomeGoals: 2, AwayGoals: 0},
		{HomeTeam: "burnley", AwayTeam: "cardiff", HomeGoals: 1, AwayGoals: 1},
		{HomeTeam: "cardiff", AwayTeam: "arsenal", HomeGoals: 0, AwayGoals: 1},
	}

	table := ComputeTable(matches)
	if len(table) != 3 {
		t.Fatalf("got %d rows, want 3", len(table))
	}

	// Arsenal wins both; burnley and cardiff tie on a point each but
	// cardiff's goal difference is better.
	wantOrder := []string{"arsenal", "cardiff", "burnley"}
	for i, team := range wantOrder {
		if table[i].Team != team {
			t.Fatalf("position %d = %q, want %q", i+1, table[i].Team, team)
		}
	}

	top := table[0]
	if top.Played != 2 || top.Won != 2 || top.Points != 6 {
		t.Errorf("arsenal = %+v, want P2 W2 Pts6", top)
	}
	if top.GoalsFor != 3 || top.GoalsAgainst != 0 || top.GoalDifference != 3 {
		t.Errorf("arsenal goals = %+v, want GF3 GA0 GD3", top)
	}

	if table[1].Points != 1 || table[2].Points != 1 {
		t.Errorf("draw points = %d/%d, want 1/1", table[1].Points, table[2].Points)
	}
}

func TestComputeTableBreaksGoalDifferenceTieOnGoalsFor(t *testing.T) {
	// a and b draw twice against each other, leaving both on equal
	// points with zero goal difference; a's higher-scoring draw against
	// c decides the tie.
	matches := []Match{
		{HomeTeam: "a", AwayTeam: "b", HomeGoals: 2, AwayGoals: 2},
		{HomeTeam: "b", AwayTeam: "a", HomeGoals: 0, AwayGoals: 0},
		{HomeTeam: "a", AwayTeam: "c", HomeGoals: 3, AwayGoals: 3},
		{HomeTeam: "b", AwayTeam: "c", HomeGoals: 1, AwayGoals: 1},
	}
	table := ComputeTable(matches)
	if table[0].Team != "a" {
		t.Errorf("leader = %q, want %q (more goals scored)", table[0].Team, "a")
	}
}

func TestFormatTableLayout(t *testing.T) {
	info, _ := LeagueInfo("epl")
	out := FormatTable([]Standing{{
		Team: "arsenal", Played: 38, Won: 21, Drawn: 7, Lost: 10,
		GoalsFor: 73, GoalsAgainst: 51, GoalDifference: 22, Points: 70,
	}}, info)

	if !strings.Contains(out, "ENGLISH PREMIER LEAGUE TABLE 2018/19") {
		t.Errorf("missing title: %q", out)
	}
	if !strings.Contains(out, "Pos | Team              | P  | W  | D  | L  | GF | GA | GD  | Pts") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, " 1  | Arsenal           | 38 | 21 |  7 | 10 | 73 | 51 |  22 |  70") {
		t.Errorf("missing row: %q", out)
	}
	if !strings.Contains(out, "_P=Played") {
		t.Errorf("missing legend: %q", out)
	}
}

func TestFormatTeamListTwoColumns(t *testing.T) {
	info, _ := LeagueInfo("epl")
	out := FormatTeamList([]string{"arsenal", "burnley", "cardiff"}, info)

	if !strings.Contains(out, "ALL ENGLISH PREMIER LEAGUE TEAMS (2018/19)") {
		t.Errorf("missing title: %q", out)
	}
	// Three teams split 2/1: cardiff sits beside arsenal.
	if !strings.Contains(out, " 1. Arsenal          3. Cardiff") {
		t.Errorf("missing paired row: %q", out)
	}
	if !strings.Contains(out, "*Total: 3 teams*") {
		t.Errorf("missing total: %q", out)
	}
}

func TestFindTeamsMatchesSubstrings(t *testing.T) {
	teams := []string{"arsenal", "man city", "man united"}
	found := FindTeams("how many goals did man city score against arsenal?", teams)
	if len(found) != 2 || found[0] != "arsenal" || found[1] != "man city" {
		t.Errorf("found = %v, want [arsenal, man city]", found)
	}
}

func TestStatHelpers(t *testing.T) {
	matches := []Match{
		{HomeTeam: "arsenal", AwayTeam: "chelsea", HomeGoals: 2, AwayGoals: 3, HomeShots: 10, AwayShots: 15},
		{HomeTeam: "chelsea", AwayTeam: "arsenal", HomeGoals: 1, AwayGoals: 1, HomeShots: 12, AwayShots: 8},
		{HomeTeam: "arsenal", AwayTeam: "burnley", HomeGoals: 4, AwayGoals: 0, HomeShots: 20, AwayShots: 3},
	}

	if got := MatchesPlayed(matches, "arsenal"); got != 3 {
		t.Errorf("MatchesPlayed = %d, want 3", got)
	}
	home, away := GoalsScored(matches, "arsenal")
	if home != 6 || away != 1 {
		t.Errorf("GoalsScored = %d home %d away, want 6/1", home, away)
	}
	if got := ShotsTaken(matches, "arsenal"); got != 38 {
		t.Errorf("ShotsTaken = %d, want 38", got)
	}
	if got := ShotsConceded(matches, "arsenal"); got != 30 {
		t.Errorf("ShotsConceded = %d, want 30", got)
	}

	h2h := HeadToHead(matches, "arsenal", "chelsea")
	if len(h2h) != 2 {
		t.Fatalf("HeadToHead returned %d fixtures, want 2", len(h2h))
	}
	if h2h[0].HomeTeam != "arsenal" || h2h[1].HomeTeam != "chelsea" {
		t.Errorf("fixtures out of season order: %+v", h2h)
	}
}
