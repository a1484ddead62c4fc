package board

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"welfared/internal/models"
)

var csvHeader = []string{
	"Date", "Window", "Callsign", "Name", "Location", "Status",
	"Power", "Message", "Received_Time", "Update_Number", "Previous_Status",
}

// GenerateCSV exports one row per check-in with the fixed column
// schema, ascending by received time.
func (g *OutputGenerator) GenerateCSV(win *models.WindowInstance, checkins []*models.CheckinRecord, _ time.Time) (string, error) {
	if err := os.MkdirAll(g.conf.Dir, 0o755); err != nil {
		return "", err
	}

	span := strings.ReplaceAll(win.Start, ":", "") + "-" + strings.ReplaceAll(win.End, ":", "")
	path := filepath.Join(g.conf.Dir, fmt.Sprintf("welfare_%s_%s.csv", win.Date, span))

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, rec := range byReceivedTime(checkins) {
		received := ""
		if !rec.ReceivedTime.IsZero() {
			received = rec.ReceivedTime.Format("15:04:05")
		}
		prevStatus := ""
		if rec.UpdateNumber > 0 {
			prevStatus = rec.PreviousStatus()
		}
		row := []string{
			win.Date,
			win.TimeRange(),
			rec.Callsign,
			rec.Name,
			rec.Location,
			rec.Status,
			strings.ToUpper(rec.Power),
			rec.Message,
			received,
			strconv.Itoa(rec.UpdateNumber),
			prevStatus,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
