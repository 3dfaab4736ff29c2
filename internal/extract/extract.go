// Package extract mines structured hints out of free-form issue bodies.
// Every function degrades to an empty result instead of returning an error;
// a body that matches nothing simply contributes nothing.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DetailPlaceholder is used when a body holds no extractable detail at all.
const DetailPlaceholder = "詳細情報なし"

var assigneePatterns = []*regexp.Regexp{
	regexp.MustCompile(`## 担当者\s*\n\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`担当者[:：]\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`担当[:：]\s*(.+?)(?:\n|$)`),
}

var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)## 期限\s*\n\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)期限[:：]\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)締切[:：]\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)deadline[:：]\s*(.+?)(?:\n|$)`),
}

var numericDate = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)

var detailSection = regexp.MustCompile(`(?s)## 詳細な作業内容\s*\n(.*?)(?:\n##|$)`)

// Assignee pulls the person in charge out of an issue body. The dedicated
// heading wins over the inline labels; no match yields "".
func Assignee(body string) string {
	for _, p := range assigneePatterns {
		if m := p.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Deadline pulls a due date out of an issue body, normalized to YYYY-MM-DD.
// A label whose text carries no numeric date is skipped in favor of the next
// pattern, so "期限: next sprint" never produces a value.
func Deadline(body string) string {
	for _, p := range deadlinePatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if d := numericDate.FindStringSubmatch(strings.TrimSpace(m[1])); d != nil {
			month, _ := strconv.Atoi(d[2])
			day, _ := strconv.Atoi(d[3])
			return fmt.Sprintf("%s-%02d-%02d", d[1], month, day)
		}
	}
	return ""
}

// Detail extracts the narrative part of an issue body. The bool reports
// whether it came from the dedicated work-detail section, which changes the
// label the renderer uses. Without that section the first line that is not
// a heading is taken, and an empty body yields the placeholder.
func Detail(body string) (string, bool) {
	if strings.Contains(body, "## 詳細な作業内容") {
		if m := detailSection.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[1]), true
		}
		return DetailPlaceholder, false
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return line, false
		}
	}
	return DetailPlaceholder, false
}
