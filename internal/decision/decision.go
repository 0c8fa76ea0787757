// Package decision turns a day's classifications into a trading verdict
// using an ordered, first-match-wins rule table.
package decision

import (
	"astrotrade/internal/navatara"
	"astrotrade/internal/types"
)

// Inputs are the day facts the rules look at.
type Inputs struct {
	Navatara           types.Navatara
	AshtamaMoon        bool
	AshtamaLagna       bool
	ChangeDuringMarket bool
	MoonPhase          types.MoonPhase
	Retrogrades        []types.Body
	IsHoliday          bool
	IsWeekend          bool
}

func (in Inputs) retrograde(b types.Body) bool {
	for _, r := range in.Retrogrades {
		if r == b {
			return true
		}
	}
	return false
}

// Rule is one row of the cascade. Match decides, Reason explains.
type Rule struct {
	Name    string
	Verdict types.Recommendation
	Match   func(Inputs) bool
	Reason  func(Inputs) string
}

// Result is the verdict with the reasons of the matching rule.
type Result struct {
	Recommendation types.Recommendation
	Reasons        []string
	Rule           string
}

func fixed(s string) func(Inputs) string {
	return func(Inputs) string { return s }
}

func navataraReason(in Inputs) string {
	return "Navatara: " + in.Navatara.String()
}

// DefaultRules returns the priority cascade, highest priority first. Order
// is the contract: a holiday Vipat day is CLOSED, never AVOID.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "holiday",
			Verdict: types.Closed,
			Match:   func(in Inputs) bool { return in.IsHoliday },
			Reason:  fixed("Market Holiday"),
		},
		{
			Name:    "weekend",
			Verdict: types.Closed,
			Match:   func(in Inputs) bool { return in.IsWeekend },
			Reason:  fixed("Weekend"),
		},
		{
			Name:    "unfavourable_navatara",
			Verdict: types.Avoid,
			Match:   func(in Inputs) bool { return navatara.Unfavourable(in.Navatara) },
			Reason:  navataraReason,
		},
		{
			Name:    "ashtama_moon",
			Verdict: types.Avoid,
			Match:   func(in Inputs) bool { return in.AshtamaMoon },
			Reason:  fixed("Moon in 8th from natal Moon"),
		},
		{
			Name:    "cautionary_navatara",
			Verdict: types.Light,
			Match:   func(in Inputs) bool { return navatara.Cautionary(in.Navatara) },
			Reason:  navataraReason,
		},
		{
			Name:    "ashtama_lagna",
			Verdict: types.Light,
			Match:   func(in Inputs) bool { return in.AshtamaLagna },
			Reason:  fixed("Moon in 8th from Lagna"),
		},
		{
			Name:    "market_hours_transition",
			Verdict: types.Light,
			Match:   func(in Inputs) bool { return in.ChangeDuringMarket },
			Reason:  fixed("Nakshatra changes during market hours"),
		},
		{
			Name:    "syzygy",
			Verdict: types.Light,
			Match: func(in Inputs) bool {
				return in.MoonPhase == types.FullMoon || in.MoonPhase == types.NewMoon
			},
			Reason: func(in Inputs) string { return string(in.MoonPhase) },
		},
		{
			Name:    "mercury_retrograde",
			Verdict: types.Light,
			Match:   func(in Inputs) bool { return in.retrograde(types.Mercury) },
			Reason:  fixed("Mercury Retrograde"),
		},
		{
			Name:    "favourable",
			Verdict: types.Trade,
			Match:   func(Inputs) bool { return true },
			Reason:  func(in Inputs) string { return "Favorable Navatara: " + in.Navatara.String() },
		},
	}
}

// Engine evaluates a rule table. The zero value is not usable; use New.
type Engine struct {
	rules []Rule
}

// New builds an engine over rules, or the default cascade when none given.
func New(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Rules returns a copy of the table in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate stops at the first matching rule. Only that rule's reason is
// reported. A table without a catch-all yields TRADE with no rule name.
func (e *Engine) Evaluate(in Inputs) Result {
	for _, r := range e.rules {
		if r.Match(in) {
			return Result{
				Recommendation: r.Verdict,
				Reasons:        []string{r.Reason(in)},
				Rule:           r.Name,
			}
		}
	}
	return Result{
		Recommendation: types.Trade,
		Reasons:        []string{"Favorable Navatara: " + in.Navatara.String()},
	}
}

// Decide evaluates the default cascade.
func Decide(in Inputs) Result {
	return defaultEngine.Evaluate(in)
}

var defaultEngine = New()
