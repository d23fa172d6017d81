package league

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// TeamSeason is one team's expected-goals season history.
type TeamSeason struct {
	ID      string
	Title   string
	Matches []SeasonMatch
}

// SeasonMatch is one match from a season export.
type SeasonMatch struct {
	Venue  string  `json:"h_a"`
	XG     float64 `json:"xG"`
	XGA    float64 `json:"xGA"`
	Result string  `json:"result"`
	Date   string  `json:"date"`
}

type analysisRow struct {
	ID      string `csv:"id"`
	Title   string `csv:"title"`
	History string `csv:"history"`
}

// ParseAnalysis decodes a season export CSV. The history column holds
// a single-quoted JSON array of per-match records.
func ParseAnalysis(r io.Reader) ([]TeamSeason, error) {
	var rows []analysisRow
	if err := gocsv.UnmarshalCSV(gocsv.LazyCSVReader(r), &rows); err != nil {
		return nil, fmt.Errorf("parse analysis csv: %w", err)
	}

	var teams []TeamSeason
	for _, row := range rows {
		if row.Title == "" {
			continue
		}
		history := strings.ReplaceAll(row.History, "'", `"`)
		var matches []SeasonMatch
		if err := json.Unmarshal([]byte(history), &matches); err != nil {
			return nil, fmt.Errorf("parse history for %s: %w", row.Title, err)
		}
		teams = append(teams, TeamSeason{ID: row.ID, Title: row.Title, Matches: matches})
	}
	return teams, nil
}

// FindTeamSeason matches a team by partial, case-insensitive name.
func FindTeamSeason(teams []TeamSeason, name string) (TeamSeason, bool) {
	needle := strings.ToLower(name)
	for _, team := range teams {
		if strings.Contains(strings.ToLower(team.Title), needle) {
			return team, true
		}
	}
	return TeamSeason{}, false
}

// AnalyzeTeam builds the full analysis report for a team's season.
func AnalyzeTeam(team TeamSeason, leagueName string) string {
	if len(team.Matches) == 0 {
		return "❌ No match data available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s - %s ANALYSIS*\n", strings.ToUpper(team.Title), strings.ToUpper(leagueName))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	home, away := splitByVenue(team.Matches)
	b.WriteString("📈 *Basic Statistics:*\n")
	fmt.Fprintf(&b, "• Total Matches: %d\n", len(team.Matches))
	fmt.Fprintf(&b, "• Home Matches: %d\n", len(home))
	fmt.Fprintf(&b, "• Away Matches: %d\n\n", len(away))

	avgXG, avgXGA := averageXG(team.Matches)
	diff := avgXG - avgXGA
	b.WriteString("⚽ *Expected Goals Analysis:*\n")
	fmt.Fprintf(&b, "• Average xG: %.2f\n", avgXG)
	fmt.Fprintf(&b, "• Average xGA: %.2f\n", avgXGA)
	sign, polarity := "", "(Negative)"
	if diff > 0 {
		sign, polarity = "+", "(Positive)"
	}
	fmt.Fprintf(&b, "• xG Difference: %s%.2f %s\n\n", sign, diff, polarity)

	switch {
	case diff > 0.5:
		b.WriteString("📈 *Performance:* Excellent offensive threat\n\n")
	case diff > 0:
		b.WriteString("📊 *Performance:* Good attacking performance\n\n")
	case diff > -0.5:
		b.WriteString("📉 *Performance:* Balanced but room for improvement\n\n")
	default:
		b.WriteString("⚠️ *Performance:* Struggling defensively\n\n")
	}

	b.WriteString("🏠 *Home vs Away Performance:*\n")
	if len(home) > 0 {
		xg, xga := averageXG(home)
		fmt.Fprintf(&b, "🏠 Home - xG: %.2f, xGA: %.2f, Diff: %.2f\n", xg, xga, xg-xga)
	}
	if len(away) > 0 {
		xg, xga := averageXG(away)
		fmt.Fprintf(&b, "✈️ Away - xG: %.2f, xGA: %.2f, Diff: %.2f\n", xg, xga, xg-xga)
	}
	return b.String()
}

// RecentMatches lists the last n matches of a team's season.
func RecentMatches(team TeamSeason, n int) string {
	if len(team.Matches) == 0 {
		return "❌ No match data available"
	}
	if n <= 0 {
		n = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 *Last %d Matches for %s:*\n", n, team.Title)
	b.WriteString(strings.Repeat("-", 30) + "\n\n")

	start := len(team.Matches) - n
	if start < 0 {
		start = 0
	}
	for i, m := range team.Matches[start:] {
		num := start + i + 1
		venue := "✈️ Away"
		if m.Venue == "h" {
			venue = "🏠 Home"
		}
		date := m.Date
		if len(date) >= 10 {
			date = date[:10]
		} else if date == "" {
			date = fmt.Sprintf("Match %d", num)
		}
		result := m.Result
		if result == "" {
			result = "N/A"
		}
		fmt.Fprintf(&b, "%d. %s | %s\n", num, date, venue)
		fmt.Fprintf(&b, "   xG: %.2f - xGA: %.2f | Result: %s\n\n", m.XG, m.XGA, result)
	}
	return b.String()
}

// FormatSeasonTeams lists the season-export team names.
func FormatSeasonTeams(teams []TeamSeason, leagueName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 *Available %s Teams:*\n", strings.ToUpper(leagueName))
	b.WriteString(strings.Repeat("=", 30) + "\n\n")

	titles := make([]string, 0, len(teams))
	for _, team := range teams {
		titles = append(titles, team.Title)
	}
	sort.Strings(titles)
	for i, title := range titles {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, title)
	}

	fmt.Fprintf(&b, "\n*Total: %d teams*", len(titles))
	return b.String()
}

// ExportTeamJSON marshals a team's season for the export action.
func ExportTeamJSON(team TeamSeason, exportedAt string) ([]byte, error) {
	payload := struct {
		TeamName     string        `json:"teamName"`
		TotalMatches int           `json:"totalMatches"`
		ExportDate   string        `json:"exportDate"`
		Matches      []SeasonMatch `json:"matches"`
	}{
		TeamName:     team.Title,
		TotalMatches: len(team.Matches),
		ExportDate:   exportedAt,
		Matches:      team.Matches,
	}
	return json.MarshalIndent(payload, "", "  ")
}

func splitByVenue(matches []SeasonMatch) (home, away []SeasonMatch) {
	for _, m := range matches {
		if m.Venue == "h" {
			home = append(home, m)
		} else {
			away = append(away, m)
		}
	}
	return home, away
}

func averageXG(matches []SeasonMatch) (xg, xga float64) {
	if len(matches) == 0 {
		return 0, 0
	}
	for _, m := range matches {
		xg += m.XG
		xga += m.XGA
	}
	n := float64(len(matches))
	return xg / n, xga / n
}
