package board

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"welfared/internal/models"
)

// The board HTML is one self-contained rolling file, overwritten on
// every generation, styled for a monitor left running at the station.
const boardFileName = "welfare_board.html"

type htmlStatusCount struct {
	Status string
	Count  int
	Class  string
}

type htmlCheckin struct {
	Index        int
	Callsign     string
	Name         string
	Location     string
	Status       string
	StatusClass  string
	Power        string
	PowerClass   string
	MessageLines []string
	Received     string
	UpdateNumber int
	IsUpdated    bool
	PrevStatus   string
}

type htmlBoard struct {
	RefreshSeconds int
	DateLong       string
	WindowName     string
	Start          string
	End            string
	Total          int
	GeneratedAt    string
	StatusCounts   []htmlStatusCount
	Checkins       []htmlCheckin
}

func statusClass(status string) string {
	switch {
	case status == models.StatusSafe:
		return "safe"
	case strings.Contains(status, "ASSISTANCE"):
		return "assistance"
	default:
		return "traffic"
	}
}

func powerClass(power string) string {
	switch power {
	case models.PowerOff:
		return "pwr-off"
	case models.PowerGenerator:
		return "pwr-gen"
	default:
		return "pwr-on"
	}
}

// GenerateHTML writes the auto-refreshing dashboard. Updated records
// are visually distinguished and a changed status shows its previous
// value.
func (g *OutputGenerator) GenerateHTML(win *models.WindowInstance, checkins []*models.CheckinRecord, now time.Time) (string, error) {
	if err := os.MkdirAll(g.conf.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(g.conf.Dir, boardFileName)

	refresh := g.conf.HTMLAutoRefreshSeconds
	if refresh <= 0 {
		refresh = 30
	}

	counts := make(map[string]int)
	for _, rec := range checkins {
		counts[valueOr(rec.Status, "Unknown")]++
	}
	statusCounts := make([]htmlStatusCount, 0, len(counts))
	for _, status := range sortedKeys(counts) {
		statusCounts = append(statusCounts, htmlStatusCount{
			Status: status,
			Count:  counts[status],
			Class:  statusClass(status),
		})
	}

	data := htmlBoard{
		RefreshSeconds: refresh,
		DateLong:       win.DateValue().Format("Monday, January 2, 2006"),
		WindowName:     win.Name,
		Start:          win.Start,
		End:            win.End,
		Total:          len(checkins),
		GeneratedAt:    now.Format("15:04:05"),
		StatusCounts:   statusCounts,
	}

	for i, rec := range byReceivedTime(checkins) {
		status := valueOr(rec.Status, "Unknown")
		item := htmlCheckin{
			Index:        i + 1,
			Callsign:     valueOr(rec.Callsign, "Unknown"),
			Name:         valueOr(rec.Name, "Unknown"),
			Location:     valueOr(rec.Location, "Unknown"),
			Status:       status,
			StatusClass:  statusClass(status),
			Power:        strings.ToUpper(rec.Power),
			PowerClass:   powerClass(strings.ToUpper(rec.Power)),
			Received:     "Unknown",
			UpdateNumber: rec.UpdateNumber,
			IsUpdated:    rec.UpdateNumber > 0,
		}
		if !rec.ReceivedTime.IsZero() {
			item.Received = rec.ReceivedTime.Format("15:04:05")
		}
		if rec.UpdateNumber > 0 {
			if prev := rec.PreviousStatus(); prev != "" && prev != status {
				item.PrevStatus = prev
			}
		}
		if msg := strings.TrimSpace(rec.Message); msg != "" {
			item.MessageLines = strings.Split(msg, "\n")
		}
		data.Checkins = append(data.Checkins, item)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := boardTemplate.Execute(file, data); err != nil {
		return "", err
	}
	return path, nil
}

var boardTemplate = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="refresh" content="{{.RefreshSeconds}}">
    <title>Amateur Radio Welfare Board</title>
    <style>
        body {
            font-family: 'Courier New', monospace;
            background-color: #1a1a1a;
            color: #00ff00;
            margin: 0;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background-color: #0a0a0a;
            padding: 30px;
            border: 2px solid #00ff00;
            box-shadow: 0 0 20px rgba(0, 255, 0, 0.3);
        }
        h1 {
            text-align: center;
            color: #00ff00;
            text-transform: uppercase;
            border-bottom: 2px solid #00ff00;
            padding-bottom: 10px;
            margin-bottom: 20px;
        }
        .header-info {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
            padding: 20px;
            background-color: #0f0f0f;
            border: 1px solid #00ff00;
        }
        .info-item { padding: 10px; }
        .info-label {
            color: #00aa00;
            font-weight: bold;
        }
        .status-summary {
            margin: 20px 0;
            padding: 15px;
            background-color: #0f0f0f;
            border: 1px solid #00ff00;
        }
        .status-counts {
            display: flex;
            gap: 20px;
            flex-wrap: wrap;
        }
        .status-count {
            padding: 8px 15px;
            border-radius: 5px;
            font-weight: bold;
        }
        .status-safe { background-color: #004400; color: #00ff00; }
        .status-assistance { background-color: #440000; color: #ff0000; }
        .status-traffic { background-color: #444400; color: #ffff00; }
        .update-badge {
            display: inline-block;
            background-color: #0066ff;
            color: white;
            padding: 2px 8px;
            border-radius: 3px;
            font-size: 0.8em;
            margin-left: 10px;
        }
        .status-change {
            color: #ffaa00;
            font-style: italic;
            font-size: 0.9em;
            margin-top: 5px;
        }
        .checkin {
            margin: 20px 0;
            padding: 20px;
            background-color: #0f0f0f;
            border-left: 5px solid #00ff00;
        }
        .checkin.updated { border-left-color: #0066ff; }
        .checkin-header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 15px;
            padding-bottom: 10px;
            border-bottom: 1px solid #004400;
        }
        .callsign {
            font-size: 1.3em;
            font-weight: bold;
            color: #00ff00;
        }
        .received-time { color: #00aa00; }
        .checkin-field { margin: 8px 0; }
        .field-label {
            color: #00aa00;
            font-weight: bold;
            display: inline-block;
            width: 100px;
        }
        .status-indicator {
            display: inline-block;
            padding: 3px 10px;
            border-radius: 3px;
            font-weight: bold;
            margin-left: 10px;
        }
        .pwr-on { color: #00ff00; font-weight: bold; }
        .pwr-off { color: #ff4444; font-weight: bold; }
        .pwr-gen { color: #ffaa00; font-weight: bold; }
        .message-box {
            margin-top: 10px;
            padding: 10px;
            background-color: #050505;
            border-left: 3px solid #00aa00;
            font-style: italic;
        }
        .footer {
            text-align: center;
            margin-top: 30px;
            padding-top: 20px;
            border-top: 2px solid #00ff00;
            color: #00aa00;
        }
        @media print {
            body { background-color: white; color: black; }
            .container { background-color: white; border-color: black; }
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#128225; Amateur Radio Welfare Board &#128225;</h1>

        <div class="header-info">
            <div class="info-item">
                <div class="info-label">Date:</div>
                <div>{{.DateLong}}</div>
            </div>
            <div class="info-item">
                <div class="info-label">Time Window:</div>
                <div>{{.WindowName}}</div>
            </div>
            <div class="info-item">
                <div class="info-label">Period:</div>
                <div>{{.Start}} - {{.End}}</div>
            </div>
            <div class="info-item">
                <div class="info-label">Total Check-ins:</div>
                <div>{{.Total}}</div>
            </div>
            <div class="info-item">
                <div class="info-label">Last Updated:</div>
                <div>{{.GeneratedAt}}</div>
            </div>
            <div class="info-item">
                <div class="info-label">Auto-Refresh:</div>
                <div>Every {{.RefreshSeconds}} seconds</div>
            </div>
        </div>

        <div class="status-summary">
            <div class="info-label">Status Summary:</div>
            <div class="status-counts">
{{- range .StatusCounts}}
                <div class="status-count status-{{.Class}}">{{.Status}}: {{.Count}}</div>
{{- end}}
            </div>
        </div>

        <h2 style="color: #00aa00; margin-top: 30px;">Check-ins:</h2>
{{- range .Checkins}}
        <div class="checkin{{if .IsUpdated}} updated{{end}}">
            <div class="checkin-header">
                <div>
                    <span style="color: #00aa00;">#{{.Index}}</span>
                    <span class="callsign">{{.Callsign}}</span>
                    {{- if .IsUpdated}}
                    <span class="update-badge">UPDATE #{{.UpdateNumber}}</span>
                    {{- end}}
                </div>
                <div class="received-time">{{.Received}}</div>
            </div>

            <div class="checkin-field">
                <span class="field-label">NAME:</span>
                {{.Name}}
            </div>

            <div class="checkin-field">
                <span class="field-label">LOCATION:</span>
                {{.Location}}
            </div>

            <div class="checkin-field">
                <span class="field-label">STATUS:</span>
                <span class="status-indicator status-{{.StatusClass}}">{{.Status}}</span>
{{- if .PrevStatus}}
                <div class="status-change">Previously: {{.PrevStatus}}</div>
{{- end}}
            </div>
{{- if .Power}}
            <div class="checkin-field">
                <span class="field-label">POWER:</span>
                <span class="{{.PowerClass}}">{{.Power}}</span>
            </div>
{{- end}}
{{- if .MessageLines}}
            <div class="message-box">
                <strong>MESSAGE:</strong><br>
{{- range .MessageLines}}
                {{.}}<br>
{{- end}}
            </div>
{{- end}}
        </div>
{{- end}}

        <div class="footer">
            <p>Generated by Amateur Radio Welfare Board System</p>
            <p>This page auto-refreshes every {{.RefreshSeconds}} seconds</p>
        </div>
    </div>
</body>
</html>
`))
