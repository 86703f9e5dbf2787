// Package payout splits a pot across the scoring checkpoints of a sport.
package payout

import (
	"regexp"
	"strings"
)

// Category is the closed set of sport families with their own payout schedule.
type Category int

const (
	Default Category = iota
	Football
	Basketball
	Soccer
)

// Categories lists every Category in declaration order.
var Categories = []Category{Default, Football, Basketball, Soccer}

func (c Category) String() string {
	switch c {
	case Football:
		return "football"
	case Basketball:
		return "basketball"
	case Soccer:
		return "soccer"
	default:
		return "default"
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	*c = ParseCategory(string(b))
	return nil
}

// ParseCategory maps a category name back to a Category; unknown names give Default.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "football":
		return Football
	case "basketball":
		return Basketball
	case "soccer":
		return Soccer
	default:
		return Default
	}
}

// leagueTokens are matched as case-insensitive substrings of a league code.
// Order matters: basketball is checked before football so "womens-college-basketball"
// is not caught by a shorter football token.
var leagueTokens = []struct {
	category Category
	tokens   []string
}{
	{Basketball, []string{"nba", "wnba", "ncaab", "mens-college-basketball", "womens-college-basketball", "basketball"}},
	{Football, []string{"nfl", "ncaaf", "college-football", "football", "cfl", "xfl", "ufl"}},
	{Soccer, []string{"mls", "epl", "eng.1", "uefa", "fifa", "soccer", "liga", "serie", "bundesliga", "nwsl"}},
}

// espnSoccerCode matches feed codes such as "esp.1" or "ger.2": a three-letter
// country code and a division number.
var espnSoccerCode = regexp.MustCompile(`^[a-z]{3}\.[0-9]+$`)

// DetectSportType classifies a free-text league identifier. It never fails:
// empty or unrecognised input yields Default.
func DetectSportType(league string) Category {
	l := strings.ToLower(strings.TrimSpace(league))
	if l == "" {
		return Default
	}
	for _, group := range leagueTokens {
		for _, tok := range group.tokens {
			if strings.Contains(l, tok) {
				return group.category
			}
		}
	}
	if espnSoccerCode.MatchString(l) {
		return Soccer
	}
	return Default
}
