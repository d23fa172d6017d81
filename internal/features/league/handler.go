package league

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/questline/internal/session"
	"github.com/louisbranch/questline/internal/transport"
)

// QueryContext is the session payload while the Q&A flow owns the
// conversation.
type QueryContext struct {
	League string
}

// AnalysisContext is the session payload while the analysis flow owns
// the conversation.
type AnalysisContext struct {
	League string
}

// queryExamples seed the welcome message with league-appropriate team
// names.
type queryExamples struct {
	Matches      string
	Goals        string
	AwayGoals    string
	ShotsConcede string
	Fixture      string
}

var queryExamplesByLeague = map[string]queryExamples{
	"epl":    {"Liverpool", "Arsenal", "Brighton", "West Ham", "Chelsea vs Everton"},
	"laliga": {"Barcelona", "Real Madrid", "Valencia", "Sevilla", "Barcelona vs Real Madrid"},
	"seriea": {"Juventus", "AC Milan", "Napoli", "Roma", "Juventus vs Inter"},
}

type analysisExamples struct {
	Analyze string
	Recent  string
	Export  string
}

var analysisExamplesByLeague = map[string]analysisExamples{
	"epl":        {"Arsenal", "Liverpool", "Chelsea"},
	"laliga":     {"Barcelona", "Real Madrid", "Atletico"},
	"seriea":     {"Napoli", "Juventus", "Milan"},
	"bundesliga": {"Bayern Munich", "Borussia Dortmund", "RB Leipzig"},
	"ligue1":     {"PSG", "Marseille", "Lyon"},
}

var exportUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Handler runs the league Q&A and analysis flows.
type Handler struct {
	svc      *Service
	sessions *session.Table
	sender   transport.Sender
	logger   *zap.Logger

	clock func() time.Time
}

// NewHandler wires a league Handler. A nil logger disables logging.
func NewHandler(svc *Service, sessions *session.Table, sender transport.Sender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:      svc,
		sessions: sessions,
		sender:   sender,
		logger:   logger,
		clock:    time.Now,
	}
}

// StartQuery claims the conversation for a league's Q&A flow and sends
// the welcome message.
func (h *Handler) StartQuery(ctx context.Context, userID, leagueKey string) error {
	if _, ok := LeagueInfo(leagueKey); !ok {
		return fmt.Errorf("unknown league %q", leagueKey)
	}
	h.sessions.SetState(userID, session.StateLeagueQuery, QueryContext{League: leagueKey})
	return h.HandleQuery(ctx, userID, leagueKey, "hello")
}

// HandleQuery answers one Q&A message.
func (h *Handler) HandleQuery(ctx context.Context, userID, leagueKey, body string) error {
	info, ok := LeagueInfo(leagueKey)
	if !ok {
		return fmt.Errorf("unknown league %q", leagueKey)
	}
	msg := strings.ToLower(strings.TrimSpace(body))

	if msg == "cancel" || msg == "exit" || msg == "quit" {
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("❌ %s mode cancelled. You can now use other bot commands.", info.Name))
	}

	matches, err := h.svc.Matches(ctx, leagueKey)
	if err != nil {
		h.logger.Warn("league results unavailable",
			zap.String("league", leagueKey), zap.Error(err))
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("❌ Sorry, %s data could not be loaded. Please try again later.", info.Name))
	}
	teams := Teams(matches)

	if msg == "hello" || msg == leagueKey || msg == "help" {
		return h.sender.SendText(ctx, userID, h.welcomeMessage(info))
	}

	if strings.Contains(msg, "table") || strings.Contains(msg, "standings") {
		return h.sender.SendText(ctx, userID, FormatTable(ComputeTable(matches), info))
	}

	if strings.Contains(msg, "teams") {
		return h.sender.SendText(ctx, userID, FormatTeamList(teams, info))
	}

	found := FindTeams(msg, teams)
	if len(found) == 0 {
		return h.sender.SendText(ctx, userID,
			"❌ Sorry, we couldn't recognise any teams in your question.\n\n"+
				"💡 Type 'list teams' to see all available team names.\n"+
				"📝 Or type 'help' to see example questions.")
	}
	team := found[0]
	name := capitalize(team)

	if strings.Contains(msg, "matches") || strings.Contains(msg, "played") {
		count := MatchesPlayed(matches, team)
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("%s *%s* played *%d matches* in the %s season.", info.Flag, name, count, info.Season))
	}

	if strings.Contains(msg, "goals") {
		home, away := GoalsScored(matches, team)
		var reply string
		switch {
		case strings.Contains(msg, "away"):
			reply = fmt.Sprintf("%s *%s* scored *%d goals* away from home.", info.Flag, name, away)
		case strings.Contains(msg, "home"):
			reply = fmt.Sprintf("🏠 *%s* scored *%d goals* at home.", name, home)
		default:
			reply = fmt.Sprintf("%s *%s* scored *%d goals* overall (%d home, %d away).",
				info.Flag, name, home+away, home, away)
		}
		return h.sender.SendText(ctx, userID, reply)
	}

	if strings.Contains(msg, "shots") {
		var reply string
		if strings.Contains(msg, "concede") {
			reply = fmt.Sprintf("🎯 *%s* conceded *%d shots* in total.", name, ShotsConceded(matches, team))
		} else {
			reply = fmt.Sprintf("🎯 *%s* had *%d shots* in total.", name, ShotsTaken(matches, team))
		}
		return h.sender.SendText(ctx, userID, reply)
	}

	if len(found) == 2 {
		fixtures := HeadToHead(matches, found[0], found[1])
		if len(fixtures) == 0 {
			return h.sender.SendText(ctx, userID,
				fmt.Sprintf("❌ No matches found between *%s* and *%s*.", capitalize(found[0]), capitalize(found[1])))
		}
		return h.sender.SendText(ctx, userID, formatFixtures(fixtures))
	}

	return h.sender.SendText(ctx, userID,
		"❓ I'm sorry but I don't understand your question.\n\n"+
			"💡 Type 'help' to see example questions you can ask.")
}

func (h *Handler) welcomeMessage(info Info) string {
	ex, ok := queryExamplesByLeague[info.Key]
	if !ok {
		ex = queryExamples{"Team", "Team", "Team", "Team", "Team A vs Team B"}
	}
	return fmt.Sprintf("%s *Welcome to the %s %s Bot!*\n\n", info.Emoji, info.Name, info.Season) +
		"You can ask questions like:\n\n" +
		"📊 *Match Statistics:*\n" +
		fmt.Sprintf("• How many matches did %s play?\n", ex.Matches) +
		fmt.Sprintf("• How many goals did %s score?\n", ex.Goals) +
		fmt.Sprintf("• How many goals did %s score away from home?\n", ex.AwayGoals) +
		fmt.Sprintf("• How many shots did %s concede?\n\n", ex.ShotsConcede) +
		"🏆 *Match Results:*\n" +
		fmt.Sprintf("• What was the result of %s?\n\n", ex.Fixture) +
		"📋 *Tables & Lists:*\n" +
		"• Show table (displays the league table)\n" +
		"• List teams (shows all team names)\n\n" +
		"❌ Type 'cancel' to exit league mode"
}

func formatFixtures(fixtures []Match) string {
	var b strings.Builder
	for i, m := range fixtures {
		if len(fixtures) > 1 {
			if i == 0 {
				b.WriteString("*First Fixture:*\n")
			} else {
				b.WriteString("*Second Fixture:*\n")
			}
		}
		fmt.Fprintf(&b, "🏟️ *%s %d - %d %s*\n", capitalize(m.HomeTeam), m.HomeGoals, m.AwayGoals, capitalize(m.AwayTeam))
		fmt.Fprintf(&b, "📅 Date: %s\n", m.Date)
		fmt.Fprintf(&b, "👨‍⚖️ Referee: %s\n", m.Referee)
		fmt.Fprintf(&b, "🎯 Shots: %d - %d\n", m.HomeShots, m.AwayShots)
		fmt.Fprintf(&b, "🚩 Corners: %d - %d\n", m.HomeCorners, m.AwayCorners)
		fmt.Fprintf(&b, "🟨 Yellow cards: %d - %d\n", m.HomeYellow, m.AwayYellow)
		fmt.Fprintf(&b, "🟥 Red cards: %d - %d", m.HomeRed, m.AwayRed)
		if i < len(fixtures)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// StartAnalysis claims the conversation for a league's analysis flow
// and sends the action menu.
func (h *Handler) StartAnalysis(ctx context.Context, userID, leagueKey string) error {
	info, ok := LeagueInfo(leagueKey)
	if !ok {
		return fmt.Errorf("unknown league %q", leagueKey)
	}
	h.sessions.SetState(userID, session.StateLeagueAnalysis, AnalysisContext{League: leagueKey})

	if _, err := h.svc.Analysis(ctx, leagueKey); err != nil {
		h.logger.Warn("league analysis unavailable",
			zap.String("league", leagueKey), zap.Error(err))
		return h.sender.SendText(ctx, userID, analysisUnavailableMessage(info))
	}
	return h.sender.SendText(ctx, userID, analysisMenu(info))
}

// HandleAnalysis answers one analysis-flow message.
func (h *Handler) HandleAnalysis(ctx context.Context, userID, leagueKey, body string) error {
	info, ok := LeagueInfo(leagueKey)
	if !ok {
		return fmt.Errorf("unknown league %q", leagueKey)
	}
	input := strings.ToLower(strings.TrimSpace(body))

	if input == "cancel" {
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, fmt.Sprintf("❌ %s analysis cancelled.", analysisName(info)))
	}

	teams, err := h.svc.Analysis(ctx, leagueKey)
	if err != nil {
		h.logger.Warn("league analysis unavailable",
			zap.String("league", leagueKey), zap.Error(err))
		return h.sender.SendText(ctx, userID, analysisUnavailableMessage(info))
	}

	if input == "teams" {
		return h.sender.SendText(ctx, userID, FormatSeasonTeams(teams, analysisName(info)))
	}

	ex := analysisExamplesByLeague[info.Key]

	if strings.HasPrefix(input, "analyze ") {
		name := strings.TrimSpace(strings.TrimPrefix(input, "analyze "))
		if name == "" {
			return h.sender.SendText(ctx, userID,
				fmt.Sprintf("❌ Please specify a team name. Example: analyze %s", ex.Analyze))
		}
		team, found := FindTeamSeason(teams, name)
		if !found {
			return h.sender.SendText(ctx, userID, teamNotFoundMessage(name))
		}
		return h.sender.SendText(ctx, userID, AnalyzeTeam(team, analysisName(info)))
	}

	if strings.HasPrefix(input, "recent ") {
		name := strings.TrimSpace(strings.TrimPrefix(input, "recent "))
		if name == "" {
			return h.sender.SendText(ctx, userID,
				fmt.Sprintf("❌ Please specify a team name. Example: recent %s", ex.Recent))
		}
		team, found := FindTeamSeason(teams, name)
		if !found {
			return h.sender.SendText(ctx, userID, teamNotFoundMessage(name))
		}
		return h.sender.SendText(ctx, userID, RecentMatches(team, 5))
	}

	if strings.HasPrefix(input, "export ") {
		name := strings.TrimSpace(strings.TrimPrefix(input, "export "))
		if name == "" {
			return h.sender.SendText(ctx, userID,
				fmt.Sprintf("❌ Please specify a team name. Example: export %s", ex.Export))
		}
		team, found := FindTeamSeason(teams, name)
		if !found {
			return h.sender.SendText(ctx, userID, teamNotFoundMessage(name))
		}
		return h.exportTeam(ctx, userID, team)
	}

	return h.sender.SendText(ctx, userID,
		"❌ Invalid command. Available commands:\n\n"+
			"• *teams* - List all teams\n"+
			"• *analyze [team name]* - Team analysis\n"+
			"• *recent [team name]* - Recent matches\n"+
			"• *export [team name]* - Export data\n"+
			"• *cancel* - Exit\n\n"+
			fmt.Sprintf("Example: analyze %s", ex.Analyze))
}

func (h *Handler) exportTeam(ctx context.Context, userID string, team TeamSeason) error {
	if err := h.sender.SendText(ctx, userID, "⏳ Exporting team data..."); err != nil {
		return err
	}

	payload, err := ExportTeamJSON(team, h.clock().UTC().Format(time.RFC3339))
	if err != nil {
		h.logger.Warn("export marshal failed", zap.String("team", team.Title), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Failed to export team data.")
	}

	filename := exportUnsafe.ReplaceAllString(strings.ToLower(team.Title), "_") + "_matches.json"
	path := filepath.Join(os.TempDir(), filename)
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		h.logger.Warn("export write failed", zap.String("team", team.Title), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Failed to export team data.")
	}
	defer func() { _ = os.Remove(path) }()

	if err := h.sender.SendFile(ctx, userID, path); err != nil {
		h.logger.Warn("export send failed", zap.String("team", team.Title), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Failed to send the exported file. Please try again.")
	}
	return h.sender.SendText(ctx, userID,
		fmt.Sprintf("✅ %s match data exported successfully!", team.Title))
}

func teamNotFoundMessage(name string) string {
	return fmt.Sprintf("❌ Team %q not found. Use \"teams\" to see all available teams.", name)
}

// analysisName is the short league name used by the analysis flow.
func analysisName(info Info) string {
	switch info.Key {
	case "epl":
		return "Premier League"
	case "laliga":
		return "La Liga"
	case "seriea":
		return "Serie A"
	default:
		return info.Name
	}
}

func analysisUnavailableMessage(info Info) string {
	name := analysisName(info)
	return fmt.Sprintf("❌ *%s Analysis Data Not Available*\n\n", name) +
		fmt.Sprintf("The %s analysis data is not loaded.\n", name) +
		"Please try again later or contact support.\n\n" +
		"❌ Type \"cancel\" to exit"
}

func analysisMenu(info Info) string {
	ex := analysisExamplesByLeague[info.Key]
	name := analysisName(info)
	return fmt.Sprintf("%s *%s TEAM ANALYSIS*\n\n", info.Emoji, strings.ToUpper(name)) +
		"📊 *Available Options:*\n" +
		"• *teams* - List all available teams\n" +
		"• *analyze [team name]* - Full team analysis\n" +
		"• *recent [team name]* - Show recent matches\n" +
		"• *export [team name]* - Export team data as JSON\n\n" +
		"💡 *Examples:*\n" +
		"• teams\n" +
		fmt.Sprintf("• analyze %s\n", ex.Analyze) +
		fmt.Sprintf("• recent %s\n", ex.Recent) +
		fmt.Sprintf("• export %s\n\n", ex.Export) +
		"🔍 *Team Search Tips:*\n" +
		"• You can use partial names\n" +
		"• Search is case-insensitive\n\n" +
		"❌ Type \"cancel\" to exit"
}
