package league

import (
	"fmt"
	"sort"
	"strings"
)

// Standing is one league table row.
type Standing struct {
	Team           string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// ComputeTable builds the standings from full-time results: three
// points for a win, one for a draw. Ties break on goal difference then
// goals scored.
func ComputeTable(matches []Match) []Standing {
	byTeam := make(map[string]*Standing)
	stat := func(team string) *Standing {
		s, ok := byTeam[team]
		if !ok {
			s = &Standing{Team: team}
			byTeam[team] = s
		}
		return s
	}

	for _, m := range matches {
		home, away := stat(m.HomeTeam), stat(m.AwayTeam)
		home.Played++
		away.Played++
		home.GoalsFor += m.HomeGoals
		home.GoalsAgainst += m.AwayGoals
		away.GoalsFor += m.AwayGoals
		away.GoalsAgainst += m.HomeGoals

		switch {
		case m.HomeGoals > m.AwayGoals:
			home.Won++
			home.Points += 3
			away.Lost++
		case m.HomeGoals < m.AwayGoals:
			away.Won++
			away.Points += 3
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	table := make([]Standing, 0, len(byTeam))
	for _, s := range byTeam {
		s.GoalDifference = s.GoalsFor - s.GoalsAgainst
		table = append(table, *s)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	return table
}

// FormatTable renders the standings as a monospace table.
func FormatTable(table []Standing, info Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s TABLE %s*\n", info.Emoji, strings.ToUpper(info.Name), info.Season)
	b.WriteString("```\n")
	b.WriteString("Pos | Team              | P  | W  | D  | L  | GF | GA | GD  | Pts\n")
	b.WriteString("────┼───────────────────┼────┼────┼────┼────┼────┼────┼─────┼────\n")

	for i, s := range table {
		fmt.Fprintf(&b, "%2d  | %-17s | %2d | %2d | %2d | %2d | %2d | %2d | %3d | %3d\n",
			i+1, capitalize(s.Team), s.Played, s.Won, s.Drawn, s.Lost,
			s.GoalsFor, s.GoalsAgainst, s.GoalDifference, s.Points)
	}

	b.WriteString("```\n")
	b.WriteString("_P=Played, W=Won, D=Drawn, L=Lost, GF=Goals For, GA=Goals Against, GD=Goal Difference_")
	return b.String()
}

// FormatTeamList renders the team names in two numbered columns.
func FormatTeamList(teams []string, info Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *ALL %s TEAMS (%s)*\n\n", info.Emoji, strings.ToUpper(info.Name), info.Season)

	half := (len(teams) + 1) / 2
	for i := 0; i < half; i++ {
		fmt.Fprintf(&b, "%2d. %-15s", i+1, capitalize(teams[i]))
		if j := i + half; j < len(teams) {
			fmt.Fprintf(&b, " %2d. %s", j+1, capitalize(teams[j]))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n📊 *Total: %d teams*", len(teams))
	return b.String()
}

// FindTeams returns the team names mentioned in a lowercased message,
// matched by substring.
func FindTeams(message string, teams []string) []string {
	var found []string
	for _, team := range teams {
		if strings.Contains(message, team) {
			found = append(found, team)
		}
	}
	return found
}

// MatchesPlayed counts a team's matches.
func MatchesPlayed(matches []Match, team string) int {
	count := 0
	for _, m := range matches {
		if m.HomeTeam == team || m.AwayTeam == team {
			count++
		}
	}
	return count
}

// GoalsScored sums a team's goals split by venue.
func GoalsScored(matches []Match, team string) (home, away int) {
	for _, m := range matches {
		if m.HomeTeam == team {
			home += m.HomeGoals
		}
		if m.AwayTeam == team {
			away += m.AwayGoals
		}
	}
	return home, away
}

// ShotsTaken sums a team's shots home and away.
func ShotsTaken(matches []Match, team string) int {
	total := 0
	for _, m := range matches {
		if m.HomeTeam == team {
			total += m.HomeShots
		}
		if m.AwayTeam == team {
			total += m.AwayShots
		}
	}
	return total
}

// ShotsConceded sums the shots faced by a team home and away.
func ShotsConceded(matches []Match, team string) int {
	total := 0
	for _, m := range matches {
		if m.HomeTeam == team {
			total += m.AwayShots
		}
		if m.AwayTeam == team {
			total += m.HomeShots
		}
	}
	return total
}

// HeadToHead returns the fixtures between two teams in season order.
func HeadToHead(matches []Match, a, b string) []Match {
	var found []Match
	for _, m := range matches {
		if (m.HomeTeam == a && m.AwayTeam == b) || (m.HomeTeam == b && m.AwayTeam == a) {
			found = append(found, m)
		}
	}
	return found
}

// capitalize upper-cases the first letter only, leaving the rest of
// the stored-lowercase name untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
