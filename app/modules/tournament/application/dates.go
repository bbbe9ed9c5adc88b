package tournamentservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseEventDate accepts exact layouts first and falls back to natural
// language parsing relative to the current time.
func ParseEventDate(input string) (time.Time, error) {
	return parseEventDateAt(input, time.Now())
}

func parseEventDateAt(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("event date is required")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse event date %q: %w", input, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("could not understand event date %q", input)
	}
	return result.Time, nil
}
