// Package session tracks per-user conversational state.
//
// A session records which feature currently owns the conversation as a
// single tagged state plus that feature's context payload. The tag
// replaces a bag of mutually-exclusive booleans: it is impossible for
// two features to be active at once.
package session

import "time"

// State identifies the feature awaiting the user's next message.
type State int

const (
	// StateIdle means the next message is parsed as a command.
	StateIdle State = iota
	// StateLeagueQuery routes messages to the league Q&A handler.
	StateLeagueQuery
	// StateLeagueAnalysis routes messages to the league analysis handler.
	StateLeagueAnalysis
	// StateChess routes messages to the chess game.
	StateChess
	// StateGraph routes messages to the graphing calculator.
	StateGraph
	// StateYouTubeQuery awaits a search term.
	StateYouTubeQuery
	// StateYouTubeRelated awaits a related-video selection.
	StateYouTubeRelated
	// StateYouTubeAction awaits an action menu reply.
	StateYouTubeAction
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLeagueQuery:
		return "league_query"
	case StateLeagueAnalysis:
		return "league_analysis"
	case StateChess:
		return "chess"
	case StateGraph:
		return "graph"
	case StateYouTubeQuery:
		return "youtube_query"
	case StateYouTubeRelated:
		return "youtube_related"
	case StateYouTubeAction:
		return "youtube_action"
	default:
		return "unknown"
	}
}

// Session is the transient conversational state for one user.
type Session struct {
	ID     string
	UserID string

	State State
	// Payload is owned exclusively by the feature named by State and is
	// cleared whenever the session resets.
	Payload any

	CreatedAt    time.Time
	LastActivity time.Time
}
