package board

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"welfared/internal/models"
)

// Field extraction patterns. Values run to end of line; MESSAGE is
// handled separately because it may span multiple lines.
var (
	reCallsign = regexp.MustCompile(`(?i)CALLSIGN:[ \t]*(.+)`)
	reName     = regexp.MustCompile(`(?i)NAME:[ \t]*(.+)`)
	reLocation = regexp.MustCompile(`(?i)LOCATION:[ \t]*(.+)`)
	reStatus   = regexp.MustCompile(`(?i)STATUS:[ \t]*(.+)`)
	rePower    = regexp.MustCompile(`(?i)POWER:[ \t]*(.+)`)

	// MESSAGE captures everything to end of content; trailing blank
	// lines are trimmed off afterwards.
	reMessage = regexp.MustCompile(`(?is)MESSAGE:[ \t]*(.*)\z`)

	reCallsignField   = regexp.MustCompile(`(?i)CALLSIGN:\s*([A-Z0-9]{3,7})`)
	reCallsignPattern = regexp.MustCompile(`\b([A-Z]{1,2}[0-9][A-Z]{1,3})\b`)
)

// Parser extracts labeled fields from welfare check-in text. Parsing is
// pure and never fails: an absent label yields an empty field, and
// validation is a separate stage.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func firstMatch(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Parse extracts the labeled fields from raw check-in text. The caller
// attaches provenance (received time, filename).
func (p *Parser) Parse(raw string) *models.CheckinRecord {
	return &models.CheckinRecord{
		Callsign: firstMatch(reCallsign, raw),
		Name:     firstMatch(reName, raw),
		Location: firstMatch(reLocation, raw),
		Status:   firstMatch(reStatus, raw),
		Power:    firstMatch(rePower, raw),
		Message:  firstMatch(reMessage, raw),
	}
}

// ParseFile reads and parses one check-in file, stamping the received
// time. The only failure mode is unreadable input.
func (p *Parser) ParseFile(path string) (*models.CheckinRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec := p.Parse(string(data))
	rec.Filename = filepath.Base(path)
	rec.ReceivedTime = time.Now()
	return rec, nil
}

// ExtractCallsign pulls a callsign out of arbitrary text, trying the
// explicit CALLSIGN: field first and falling back to the common
// prefix-digit-suffix shape.
func ExtractCallsign(text string) string {
	if m := reCallsignField.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := reCallsignPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

// statusAliases maps common operator phrasings onto canonical statuses.
// Matching is by substring against the uppercased input, in order.
var statusAliases = []struct {
	match  string
	status string
}{
	{"OK", models.StatusSafe},
	{"OKAY", models.StatusSafe},
	{"GOOD", models.StatusSafe},
	{"ALL CLEAR", models.StatusSafe},
	{"SAFE", models.StatusSafe},
	{"NEED HELP", models.StatusNeedAssistance},
	{"HELP", models.StatusNeedAssistance},
	{"EMERGENCY", models.StatusNeedAssistance},
	{"NEED ASSISTANCE", models.StatusNeedAssistance},
	{"ASSISTANCE", models.StatusNeedAssistance},
	{"TRAFFIC", models.StatusTraffic},
	{"MESSAGE", models.StatusTraffic},
	{"MESSAGES", models.StatusTraffic},
}

// NormalizeStatus maps status variations (OK, HELP, ...) onto the
// canonical set. Unrecognized values are uppercased as-is so the
// validator can report them against the allow-list.
func NormalizeStatus(status string) string {
	s := strings.ToUpper(strings.TrimSpace(status))
	if s == "" {
		return ""
	}
	for _, alias := range statusAliases {
		if strings.Contains(s, alias.match) {
			return alias.status
		}
	}
	return s
}

// NormalizePower uppercases the optional power field.
func NormalizePower(power string) string {
	return strings.ToUpper(strings.TrimSpace(power))
}
