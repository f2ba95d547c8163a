// Package extract derives structured task fields from free-form chat text.
//
// Extraction is a fixed sequence of literal splits, ordered regular expression
// rules and keyword lookups. It never fails: anything that does not match falls
// back to a default (empty description, no due date, medium priority, no
// assignee).
package extract

import (
	"regexp"
	"strings"
	"time"

	"taskbot/internal/task/domain"
)

var mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)

// Draft is the result of one extraction.
type Draft struct {
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Priority     domain.Priority `json:"priority"`
	AssigneeHint string          `json:"assignee_hint,omitempty"`
}

// Extractor is immutable after construction and safe for concurrent use.
type Extractor struct {
	lang Language
	now  func() time.Time
}

type Option func(*Extractor)

// WithClock replaces time.Now as the base for relative due dates.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

func New(lang Language, opts ...Option) *Extractor {
	e := &Extractor{
		lang: lang,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds a Draft from text.
func (e *Extractor) Extract(text string) Draft {
	lower := strings.ToLower(text)
	title, description := splitTitle(text)

	draft := Draft{
		Title:       title,
		Description: description,
		DueDate:     e.dueDate(lower),
		Priority:    e.priority(lower),
	}
	if handle, ok := e.ExtractMention(text); ok {
		draft.AssigneeHint = handle
	}
	return draft
}

// ExtractMention returns the handle of the first @mention in text, without the sigil.
func (e *Extractor) ExtractMention(text string) (string, bool) {
	m := mentionPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// splitTitle uses the first period-terminated segment as the title and the rest
// as the description. An empty first segment makes the whole trimmed input the
// title.
func splitTitle(text string) (string, string) {
	segments := strings.Split(text, ".")
	title := strings.TrimSpace(segments[0])
	if title == "" {
		return strings.TrimSpace(text), ""
	}
	if len(segments) == 1 {
		return title, ""
	}
	return title, strings.TrimSpace(strings.Join(segments[1:], "."))
}

func (e *Extractor) dueDate(lower string) *time.Time {
	for _, rule := range e.lang.DateRules {
		groups := rule.Pattern.FindStringSubmatch(lower)
		if groups == nil {
			continue
		}
		return rule.Resolve(e.now(), groups)
	}
	return nil
}

func (e *Extractor) priority(lower string) domain.Priority {
	if containsAny(lower, e.lang.HighPriority) {
		return domain.PriorityHigh
	}
	if containsAny(lower, e.lang.LowPriority) {
		return domain.PriorityLow
	}
	return domain.PriorityMedium
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
