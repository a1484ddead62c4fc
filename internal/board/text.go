package board

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"welfared/internal/models"
)

// wrapColumn is the message wrap width for the packet-radio report.
const wrapColumn = 54

// statusAbbrev compacts statuses for the bandwidth-constrained text
// report; anything else is cut to four characters.
var statusAbbrev = map[string]string{
	models.StatusSafe:           "OK",
	models.StatusNeedAssistance: "NEED",
	models.StatusTraffic:        "TRAF",
}

func abbreviateStatus(status string) string {
	if short, ok := statusAbbrev[status]; ok {
		return short
	}
	if len(status) > 4 {
		return status[:4]
	}
	return status
}

// GenerateText writes the minimum-bytes report for retransmission over
// the same low-bandwidth link the check-ins arrived on. Layout: header
// with counts, status tally, power tally, then per-checkin blocks with
// the current state first and history newest-first.
func (g *OutputGenerator) GenerateText(win *models.WindowInstance, checkins []*models.CheckinRecord, now time.Time) (string, error) {
	if err := os.MkdirAll(g.conf.Dir, 0o755); err != nil {
		return "", err
	}

	span := strings.ReplaceAll(win.Start, ":", "") + "-" + strings.ReplaceAll(win.End, ":", "")
	path := filepath.Join(g.conf.Dir, fmt.Sprintf("welfare_%s_%s.txt", win.Date, span))

	var lines []string
	lines = append(lines,
		fmt.Sprintf("WELFARE BOARD %s %s-%s", win.Date, win.Start, win.End),
		fmt.Sprintf("Total:%d Gen:%s", len(checkins), now.Format("15:04")))

	if tally := statusTally(checkins); tally != "" {
		lines = append(lines, tally)
	}
	if tally := powerTally(checkins); tally != "" {
		lines = append(lines, tally)
	}
	lines = append(lines, "")

	for i, rec := range byReceivedTime(checkins) {
		updInd := ""
		if rec.UpdateNumber > 0 {
			updInd = fmt.Sprintf(" [UPD%d]", rec.UpdateNumber)
		}
		pwrStr := ""
		if rec.Power != "" {
			pwrStr = " PWR:" + strings.ToUpper(rec.Power)
		}
		lines = append(lines, fmt.Sprintf("%d. %s(%s) %s%s%s",
			i+1,
			valueOr(rec.Callsign, "UNK"),
			valueOr(rec.Name, "Unknown"),
			valueOr(rec.Location, "Unknown"),
			pwrStr,
			updInd))

		lines = append(lines, historyBlock(
			clockOr(rec.ReceivedTime, "??:??"),
			abbreviateStatus(valueOr(rec.Status, "Unknown")),
			rec.Message)...)

		for j := len(rec.History) - 1; j >= 0; j-- {
			hist := rec.History[j]
			status := "??"
			if hist.Status != "" {
				status = abbreviateStatus(hist.Status)
			}
			lines = append(lines, historyBlock(
				clockOr(hist.ReceivedTime, "??:??"),
				status,
				hist.Message)...)
		}
	}

	lines = append(lines, "", "END "+now.Format("15:04"))

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// historyBlock renders one "   HH:MM STAT" line plus the wrapped
// message, continuation lines indented eight spaces.
func historyBlock(timeStr, statStr, message string) []string {
	entry := []string{fmt.Sprintf("   %s %s", timeStr, statStr)}
	for _, raw := range strings.Split(message, "\n") {
		line := []rune(strings.TrimSpace(raw))
		if len(line) == 0 {
			continue
		}
		for len(line) > wrapColumn {
			entry = append(entry, "        "+string(line[:wrapColumn]))
			line = line[wrapColumn:]
		}
		entry = append(entry, "        "+string(line))
	}
	return entry
}

func clockOr(t time.Time, fallback string) string {
	if t.IsZero() {
		return fallback
	}
	return t.Format("15:04")
}

func statusTally(checkins []*models.CheckinRecord) string {
	counts := make(map[string]int)
	for _, rec := range checkins {
		counts[valueOr(rec.Status, "UNK")]++
	}
	if len(counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(counts))
	for _, status := range sortedKeys(counts) {
		parts = append(parts, fmt.Sprintf("%s:%d", abbreviateStatus(status), counts[status]))
	}
	return strings.Join(parts, " ")
}

func powerTally(checkins []*models.CheckinRecord) string {
	counts := make(map[string]int)
	for _, rec := range checkins {
		if rec.Power != "" {
			counts[strings.ToUpper(rec.Power)]++
		}
	}
	if len(counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(counts))
	for _, pwr := range sortedKeys(counts) {
		parts = append(parts, fmt.Sprintf("PWR-%s:%d", pwr, counts[pwr]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
