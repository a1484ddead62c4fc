package board

import (
	"sort"
	"time"

	"welfared/internal/models"
	"welfared/internal/providers"
	"welfared/internal/structures"
)

// Output format keys in the GenerateAll result map.
const (
	FormatText = "text"
	FormatHTML = "html"
	FormatCSV  = "csv"
)

// OutputGenerator renders an immutable (window, checkins) snapshot into
// the enabled formats. Each renderer fails independently: an I/O error
// on one artifact is logged and does not block the others.
type OutputGenerator struct {
	conf    structures.OutputConfig
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewOutputGenerator(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *OutputGenerator {
	return &OutputGenerator{
		conf:    conf.Output,
		logger:  logger,
		metrics: metrics,
	}
}

// GenerateAll produces every enabled format and returns format -> path
// for whichever succeeded.
func (g *OutputGenerator) GenerateAll(win *models.WindowInstance, checkins []*models.CheckinRecord) map[string]string {
	return g.generateAllAt(win, checkins, time.Now())
}

func (g *OutputGenerator) generateAllAt(win *models.WindowInstance, checkins []*models.CheckinRecord, now time.Time) map[string]string {
	generated := make(map[string]string)

	run := func(format string, enabled bool, render func() (string, error)) {
		if !enabled {
			return
		}
		start := time.Now()
		path, err := render()
		if err != nil {
			g.metrics.IncRenderFailures(format)
			g.logger.Errorf(providers.TypeOutput, "Error generating %s output: %s", format, err)
			return
		}
		g.metrics.ObserveRenderDuration(format, time.Since(start))
		generated[format] = path
	}

	run(FormatText, g.conf.GenerateText, func() (string, error) { return g.GenerateText(win, checkins, now) })
	run(FormatHTML, g.conf.GenerateHTML, func() (string, error) { return g.GenerateHTML(win, checkins, now) })
	run(FormatCSV, g.conf.GenerateCSV, func() (string, error) { return g.GenerateCSV(win, checkins, now) })

	return generated
}

// byReceivedTime returns a copy of checkins sorted ascending by received
// time, the ordering all three formats share.
func byReceivedTime(checkins []*models.CheckinRecord) []*models.CheckinRecord {
	sorted := make([]*models.CheckinRecord, len(checkins))
	copy(sorted, checkins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReceivedTime.Before(sorted[j].ReceivedTime)
	})
	return sorted
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
