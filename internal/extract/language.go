package extract

import (
	"regexp"
	"strconv"
	"time"
)

// DateRule pairs a matcher with the resolver that turns a match into a due date.
// Resolve may return nil: the rule still claims the input and later rules are
// not consulted.
type DateRule struct {
	Name    string
	Pattern *regexp.Regexp
	Resolve func(now time.Time, groups []string) *time.Time
}

// Language holds the phrase tables the extractor runs against lower-cased input.
// DateRules are evaluated in slice order and the first match wins.
// HighPriority is consulted before LowPriority.
type Language struct {
	Name         string
	DateRules    []DateRule
	HighPriority []string
	LowPriority  []string
}

// Russian is the phrase table used by the bot.
//
// Rule order is part of the contract:
//
//	to-day-month    к 15 мая            matched, left unresolved
//	until-day-month до 15 мая           matched, left unresolved
//	tomorrow        завтра              now + 1 day
//	next-week       на следующей неделе now + 7 days
//	in-days         через 3 дня         now + N days
//	in-weeks        через 2 недели      now + N weeks
//
// "завтра" is a substring match, so inflections starting with it
// ("завтрашнему") resolve to tomorrow too.
func Russian() Language {
	return Language{
		Name: "ru",
		DateRules: []DateRule{
			{
				Name:    "to-day-month",
				Pattern: regexp.MustCompile(`к (\d{1,2}(?:ому)? [А-Яа-я]+)`),
				Resolve: unresolved,
			},
			{
				Name:    "until-day-month",
				Pattern: regexp.MustCompile(`до (\d{1,2}(?:ого)? [А-Яа-я]+)`),
				Resolve: unresolved,
			},
			{
				Name:    "tomorrow",
				Pattern: regexp.MustCompile(`завтра`),
				Resolve: afterDays(1),
			},
			{
				Name:    "next-week",
				Pattern: regexp.MustCompile(`на следующей неделе`),
				Resolve: afterDays(7),
			},
			{
				Name:    "in-days",
				Pattern: regexp.MustCompile(`через (\d+) (?:день|дня|дней)`),
				Resolve: afterCount(1),
			},
			{
				Name:    "in-weeks",
				Pattern: regexp.MustCompile(`через (\d+) (?:неделю|недели|недель)`),
				Resolve: afterCount(7),
			},
		},
		HighPriority: []string{"срочно", "срочная", "важно", "важная", "высокий приоритет", "приоритетная"},
		LowPriority:  []string{"низкий приоритет", "не срочно", "когда будет время", "не приоритетная"},
	}
}

// unresolved claims a phrase without producing a due date.
func unresolved(time.Time, []string) *time.Time {
	return nil
}

func afterDays(days int) func(time.Time, []string) *time.Time {
	return func(now time.Time, _ []string) *time.Time {
		due := now.AddDate(0, 0, days)
		return &due
	}
}

// afterCount reads N from the first capture group and adds N*unitDays days.
func afterCount(unitDays int) func(time.Time, []string) *time.Time {
	return func(now time.Time, groups []string) *time.Time {
		if len(groups) < 2 {
			return nil
		}
		n, err := strconv.Atoi(groups[1])
		if err != nil {
			return nil
		}
		due := now.AddDate(0, 0, n*unitDays)
		return &due
	}
}
