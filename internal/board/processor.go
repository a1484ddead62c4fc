package board

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"welfared/internal/board/interfaces"
	"welfared/internal/providers"
	"welfared/internal/services"
)

// Pipeline outcomes, used as the checkin counter label.
const (
	OutcomeAccepted     = "accepted"
	OutcomeUpdated      = "updated"
	OutcomeDuplicate    = "duplicate"
	OutcomeNoWindow     = "no_window"
	OutcomeInvalid      = "invalid"
	OutcomeParseFailure = "parse_error"
)

// Processor drains the watcher channel and runs each file through
// parse, validate, aggregate, render and filing. A single worker
// consumes the channel so all roster mutations are serialized; output
// generation works on copied snapshots and may overlap the next file.
type Processor struct {
	parser    *Parser
	validator *Validator
	service   services.AggregatorServiceInterface
	generator *OutputGenerator
	filer     *Filer
	watcher   interfaces.WatcherInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	wg        sync.WaitGroup
}

func NewProcessor(
	parser *Parser,
	validator *Validator,
	service services.AggregatorServiceInterface,
	generator *OutputGenerator,
	filer *Filer,
	watcher interfaces.WatcherInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *Processor {
	return &Processor{
		parser:    parser,
		validator: validator,
		service:   service,
		generator: generator,
		filer:     filer,
		watcher:   watcher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run starts the worker. It returns once the worker goroutine is up.
func (p *Processor) Run() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for path := range p.watcher.Events() {
			p.ProcessFile(path)
		}
	}()
}

// Stop halts event production and waits for queued files to finish
// their full cycle. A file already dequeued is never cut short.
func (p *Processor) Stop() {
	p.watcher.Stop()
	p.wg.Wait()
}

// ProcessFile runs one input file through the whole pipeline. Every
// rejection is a structured, non-fatal outcome routed to the archive or
// error folder; nothing here stops the watcher.
func (p *Processor) ProcessFile(path string) {
	// The watcher can fire more than once per logical file; a path that
	// is already gone was handled by an earlier event.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	name := filepath.Base(path)
	p.logger.Infof(providers.TypePipeline, "New file: %s", name)

	rec, err := p.parser.ParseFile(path)
	if err != nil {
		p.metrics.IncCheckins(OutcomeParseFailure)
		p.logger.Errorf(providers.TypePipeline, "Failed to parse %s: %s", name, err)
		p.fileToError(path, "Parse failed: "+err.Error())
		return
	}

	rec.Status = NormalizeStatus(rec.Status)
	rec.Power = NormalizePower(rec.Power)

	if ok, violations := p.validator.Validate(rec); !ok {
		p.metrics.IncCheckins(OutcomeInvalid)
		p.logger.Warnf(providers.TypePipeline, "Validation failed for %s: %s", name, strings.Join(violations, "; "))
		p.fileToError(path, "Validation: "+strings.Join(violations, "; "))
		return
	}

	accepted, message, win := p.service.AddCheckin(rec, rec.ReceivedTime)
	if !accepted {
		if strings.Contains(strings.ToLower(message), "identical") {
			// No new information was lost, so a retransmission is
			// archived rather than filed as an error.
			p.metrics.IncCheckins(OutcomeDuplicate)
			p.logger.Infof(providers.TypePipeline, "%s", message)
			p.fileToArchive(path)
		} else {
			p.metrics.IncCheckins(OutcomeNoWindow)
			p.logger.Warnf(providers.TypePipeline, "%s", message)
			p.fileToError(path, message)
		}
		return
	}

	if rec.UpdateNumber > 0 {
		p.metrics.IncCheckins(OutcomeUpdated)
	} else {
		p.metrics.IncCheckins(OutcomeAccepted)
	}
	p.logger.Infof(providers.TypePipeline, "%s", message)

	checkins := p.service.WindowCheckins(win.Key)
	p.metrics.SetRosterSize(win.Key, len(checkins))

	generated := p.generator.GenerateAll(win, checkins)
	for format, outPath := range generated {
		p.logger.Debugf(providers.TypeOutput, "Generated %s: %s", format, filepath.Base(outPath))
	}

	p.fileToArchive(path)
}

func (p *Processor) fileToArchive(path string) {
	if err := p.filer.ToArchive(path); err != nil {
		p.logger.Errorf(providers.TypePipeline, "Archive failed for %s: %s", filepath.Base(path), err)
	}
}

func (p *Processor) fileToError(path, reason string) {
	if err := p.filer.ToError(path, reason); err != nil {
		p.logger.Errorf(providers.TypePipeline, "Error move failed for %s: %s", filepath.Base(path), err)
	}
}
