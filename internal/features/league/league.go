// Package league answers football questions over cached historical
// match data. Two conversational flows share the package: a Q&A flow
// over full-time results (standings, team stats, head-to-head) and an
// analysis flow over expected-goals season histories.
package league

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// Info describes one supported league.
type Info struct {
	Key    string
	Name   string
	Emoji  string
	Season string
	Flag   string

	// ResultsURL serves the full-time results CSV; AnalysisURL serves
	// the expected-goals season export. Either may be empty when the
	// league only participates in one flow.
	ResultsURL  string
	AnalysisURL string
}

var leagues = []Info{
	{
		Key:         "epl",
		Name:        "English Premier League",
		Emoji:       "🏴󠁧󠁢󠁥󠁮󠁧󠁿",
		Season:      "2018/19",
		Flag:        "⚽",
		ResultsURL:  "https://www.football-data.co.uk/mmz4281/1819/E0.csv",
		AnalysisURL: "https://raw.githubusercontent.com/Timvane-coder/MySite-/main/epl.csv",
	},
	{
		Key:         "laliga",
		Name:        "Spanish La Liga",
		Emoji:       "🇪🇸",
		Season:      "2018/19",
		Flag:        "⚽",
		ResultsURL:  "https://www.football-data.co.uk/mmz4281/1819/SP1.csv",
		AnalysisURL: "https://raw.githubusercontent.com/Timvane-coder/MySite-/main/laliga.csv",
	},
	{
		Key:         "seriea",
		Name:        "Italian Serie A",
		Emoji:       "🇮🇹",
		Season:      "2018/19",
		Flag:        "⚽",
		ResultsURL:  "https://www.football-data.co.uk/mmz4281/1819/I1.csv",
		AnalysisURL: "https://raw.githubusercontent.com/Timvane-coder/MySite-/main/seriea.csv",
	},
	{
		Key:         "bundesliga",
		Name:        "Bundesliga",
		Emoji:       "🇩🇪",
		Season:      "2018/19",
		Flag:        "⚽",
		AnalysisURL: "https://raw.githubusercontent.com/Timvane-coder/MySite-/main/bundesliga.csv",
	},
	{
		Key:         "ligue1",
		Name:        "Ligue 1",
		Emoji:       "🇫🇷",
		Season:      "2018/19",
		Flag:        "⚽",
		AnalysisURL: "https://raw.githubusercontent.com/Timvane-coder/MySite-/main/ligue1.csv",
	},
}

// LeagueInfo returns the descriptor for a league key.
func LeagueInfo(key string) (Info, bool) {
	for _, info := range leagues {
		if info.Key == key {
			return info, true
		}
	}
	return Info{}, false
}

// Match is one full-time result row. Team names are stored lowercase
// so user questions match case-insensitively.
type Match struct {
	Date        string `csv:"Date"`
	HomeTeam    string `csv:"HomeTeam"`
	AwayTeam    string `csv:"AwayTeam"`
	HomeGoals   int    `csv:"FTHG"`
	AwayGoals   int    `csv:"FTAG"`
	HomeShots   int    `csv:"HS"`
	AwayShots   int    `csv:"AS"`
	HomeCorners int    `csv:"HC"`
	AwayCorners int    `csv:"AC"`
	HomeYellow  int    `csv:"HY"`
	AwayYellow  int    `csv:"AY"`
	HomeRed     int    `csv:"HR"`
	AwayRed     int    `csv:"AR"`
	Referee     string `csv:"Referee"`
}

// ParseMatches decodes a results CSV. Columns beyond the modelled ones
// are ignored; ragged rows are tolerated.
func ParseMatches(r io.Reader) ([]Match, error) {
	var matches []Match
	if err := gocsv.UnmarshalCSV(gocsv.LazyCSVReader(r), &matches); err != nil {
		return nil, fmt.Errorf("parse results csv: %w", err)
	}
	for i := range matches {
		matches[i].HomeTeam = strings.ToLower(strings.TrimSpace(matches[i].HomeTeam))
		matches[i].AwayTeam = strings.ToLower(strings.TrimSpace(matches[i].AwayTeam))
	}
	return matches, nil
}

// Teams returns the sorted unique team names appearing in matches.
func Teams(matches []Match) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, m := range matches {
		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			if team == "" || seen[team] {
				continue
			}
			seen[team] = true
			teams = append(teams, team)
		}
	}
	sort.Strings(teams)
	return teams
}

// Store caches league data between restarts. Replace calls swap a
// league's rows atomically.
type Store interface {
	ReplaceMatches(ctx context.Context, league string, matches []Match) error
	Matches(ctx context.Context, league string) ([]Match, error)
	ReplaceAnalysis(ctx context.Context, league string, teams []TeamSeason) error
	Analysis(ctx context.Context, league string) ([]TeamSeason, error)
}

// Fetcher retrieves a CSV document. The production implementation is
// HTTP; tests substitute canned readers.
type Fetcher interface {
	FetchCSV(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher fetches CSVs over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// FetchCSV issues a GET and returns the body on a 200 response.
func (f *HTTPFetcher) FetchCSV(ctx context.Context, url string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build csv request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch csv: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch csv: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Service loads league data on demand, caching through the Store so a
// league is fetched at most once per process lifetime (and survives
// restarts).
type Service struct {
	store   Store
	fetcher Fetcher
	logger  *zap.Logger
}

// NewService wires a Service. A nil logger disables logging.
func NewService(store Store, fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, fetcher: fetcher, logger: logger}
}

// Matches returns the cached results for a league, fetching and
// importing them on first access.
func (s *Service) Matches(ctx context.Context, leagueKey string) ([]Match, error) {
	info, ok := LeagueInfo(leagueKey)
	if !ok || info.ResultsURL == "" {
		return nil, fmt.Errorf("no results source for league %q", leagueKey)
	}

	cached, err := s.store.Matches(ctx, leagueKey)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	s.logger.Info("loading league results", zap.String("league", leagueKey))
	body, err := s.fetcher.FetchCSV(ctx, info.ResultsURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	matches, err := ParseMatches(body)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("results csv for %q is empty", leagueKey)
	}
	if err := s.store.ReplaceMatches(ctx, leagueKey, matches); err != nil {
		return nil, err
	}
	s.logger.Info("league results loaded",
		zap.String("league", leagueKey), zap.Int("matches", len(matches)))
	return matches, nil
}

// Analysis returns the cached expected-goals seasons for a league,
// fetching and importing them on first access.
func (s *Service) Analysis(ctx context.Context, leagueKey string) ([]TeamSeason, error) {
	info, ok := LeagueInfo(leagueKey)
	if !ok || info.AnalysisURL == "" {
		return nil, fmt.Errorf("no analysis source for league %q", leagueKey)
	}

	cached, err := s.store.Analysis(ctx, leagueKey)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	s.logger.Info("loading league analysis", zap.String("league", leagueKey))
	body, err := s.fetcher.FetchCSV(ctx, info.AnalysisURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	teams, err := ParseAnalysis(body)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("analysis csv for %q is empty", leagueKey)
	}
	if err := s.store.ReplaceAnalysis(ctx, leagueKey, teams); err != nil {
		return nil, err
	}
	s.logger.Info("league analysis loaded",
		zap.String("league", leagueKey), zap.Int("teams", len(teams)))
	return teams, nil
}
