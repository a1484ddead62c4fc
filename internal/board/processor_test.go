package board

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfared/internal/services"
	"welfared/internal/structures"
	"welfared/internal/testutil"
)

type pipelineFixture struct {
	processor *Processor
	service   services.AggregatorServiceInterface
	watcher   *testutil.MockWatcher
	metrics   *testutil.MockMetrics
	inputDir  string
	archive   string
	errors    string
	outputs   string
}

func newPipeline(t *testing.T, windows []structures.WindowConfig) *pipelineFixture {
	t.Helper()
	dir := t.TempDir()
	conf := &structures.Config{
		Watch: structures.WatchConfig{
			InputDir:   filepath.Join(dir, "incoming"),
			ArchiveDir: filepath.Join(dir, "archive"),
			ErrorDir:   filepath.Join(dir, "errors"),
		},
		TimeWindows: windows,
		Validation: structures.ValidationConfig{
			RequireCallsign: true,
			RequireName:     true,
			RequireLocation: true,
			RequireStatus:   true,
			ValidStatuses:   []string{"SAFE", "NEED ASSISTANCE", "TRAFFIC"},
		},
		Output: structures.OutputConfig{
			Dir:          filepath.Join(dir, "reports"),
			GenerateText: true,
			GenerateHTML: true,
			GenerateCSV:  true,
		},
	}
	require.NoError(t, os.MkdirAll(conf.Watch.InputDir, 0o755))

	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	service := services.NewAggregatorService(conf)
	watcher := testutil.NewMockWatcher()

	processor := NewProcessor(
		NewParser(),
		NewValidator(conf),
		service,
		NewOutputGenerator(conf, logger, metrics),
		NewFiler(conf, &testutil.MockCompressor{}, logger),
		watcher,
		logger,
		metrics,
	)
	return &pipelineFixture{
		processor: processor,
		service:   service,
		watcher:   watcher,
		metrics:   metrics,
		inputDir:  conf.Watch.InputDir,
		archive:   conf.Watch.ArchiveDir,
		errors:    conf.Watch.ErrorDir,
		outputs:   conf.Output.Dir,
	}
}

func allDay() []structures.WindowConfig {
	return []structures.WindowConfig{{Name: "All Day", Start: "00:00", End: "23:59"}}
}

func (f *pipelineFixture) drop(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.inputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFile_ValidCheckin(t *testing.T) {
	f := newPipeline(t, allDay())
	path := f.drop(t, "checkin1.txt", "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: OK\nPOWER: on\n")

	f.processor.ProcessFile(path)

	assert.Equal(t, map[string]int{OutcomeAccepted: 1}, f.metrics.Outcomes())

	// input archived
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(f.archive, "checkin1.txt"))
	assert.NoError(t, err)

	// record normalized and stored
	keys := f.service.WindowKeys()
	require.Len(t, keys, 1)
	recs := f.service.WindowCheckins(keys[0])
	require.Len(t, recs, 1)
	assert.Equal(t, "SAFE", recs[0].Status)
	assert.Equal(t, "ON", recs[0].Power)
	assert.Equal(t, "checkin1.txt", recs[0].Filename)

	// all three outputs rendered
	entries, err := os.ReadDir(f.outputs)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, f.metrics.RosterSizes[keys[0]])
}

func TestProcessFile_Update(t *testing.T) {
	f := newPipeline(t, allDay())

	first := f.drop(t, "a.txt", "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: SAFE\n")
	f.processor.ProcessFile(first)

	second := f.drop(t, "b.txt", "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: NEED HELP\n")
	f.processor.ProcessFile(second)

	assert.Equal(t, map[string]int{OutcomeAccepted: 1, OutcomeUpdated: 1}, f.metrics.Outcomes())

	keys := f.service.WindowKeys()
	recs := f.service.WindowCheckins(keys[0])
	require.Len(t, recs, 1)
	assert.Equal(t, "NEED ASSISTANCE", recs[0].Status)
	assert.Equal(t, 1, recs[0].UpdateNumber)
}

func TestProcessFile_DuplicateGoesToArchive(t *testing.T) {
	f := newPipeline(t, allDay())
	content := "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: SAFE\n"

	f.processor.ProcessFile(f.drop(t, "a.txt", content))
	f.processor.ProcessFile(f.drop(t, "b.txt", content))

	assert.Equal(t, map[string]int{OutcomeAccepted: 1, OutcomeDuplicate: 1}, f.metrics.Outcomes())

	_, err := os.Stat(filepath.Join(f.archive, "b.txt"))
	assert.NoError(t, err)

	// no error files for a duplicate
	_, err = os.Stat(f.errors)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFile_InvalidGoesToErrorFolder(t *testing.T) {
	f := newPipeline(t, allDay())
	path := f.drop(t, "bad.txt", "CALLSIGN: KA1ABC\nSTATUS: SAFE\n")

	f.processor.ProcessFile(path)

	assert.Equal(t, map[string]int{OutcomeInvalid: 1}, f.metrics.Outcomes())

	_, err := os.Stat(filepath.Join(f.errors, "bad.txt"))
	assert.NoError(t, err)

	note, err := os.ReadFile(filepath.Join(f.errors, "bad.error.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(note), "Missing required field: NAME")
	assert.Contains(t, string(note), "Missing required field: LOCATION")

	assert.Empty(t, f.service.WindowKeys())
}

func TestProcessFile_NoActiveWindow(t *testing.T) {
	f := newPipeline(t, nil) // no windows configured
	path := f.drop(t, "offhours.txt", "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: SAFE\n")

	f.processor.ProcessFile(path)

	assert.Equal(t, map[string]int{OutcomeNoWindow: 1}, f.metrics.Outcomes())

	note, err := os.ReadFile(filepath.Join(f.errors, "offhours.error.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(note), "No active time window")
}

func TestProcessFile_VanishedPathIsNoop(t *testing.T) {
	f := newPipeline(t, allDay())
	f.processor.ProcessFile(filepath.Join(f.inputDir, "never-existed.txt"))
	assert.Empty(t, f.metrics.Outcomes())
}

func TestProcessFile_UnreadableInput(t *testing.T) {
	f := newPipeline(t, allDay())
	// a directory can be stat'ed but not read as a file
	path := filepath.Join(f.inputDir, "subdir")
	require.NoError(t, os.MkdirAll(path, 0o755))

	f.processor.ProcessFile(path)
	assert.Equal(t, map[string]int{OutcomeParseFailure: 1}, f.metrics.Outcomes())
}

func TestProcessor_RunAndStop_DrainsQueue(t *testing.T) {
	f := newPipeline(t, allDay())

	paths := []string{
		f.drop(t, "one.txt", "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: SAFE\n"),
		f.drop(t, "two.txt", "CALLSIGN: W1XYZ\nNAME: Mary\nLOCATION: Ridgecrest\nSTATUS: TRAFFIC\n"),
	}
	for _, p := range paths {
		f.watcher.Ch <- p
	}

	f.processor.Run()
	f.processor.Stop()

	assert.Equal(t, map[string]int{OutcomeAccepted: 2}, f.metrics.Outcomes())
	keys := f.service.WindowKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, 2, f.service.WindowCount(keys[0]))
}

func TestProcessor_StopWaitsForInFlightFile(t *testing.T) {
	f := newPipeline(t, allDay())
	path := f.drop(t, "slow.txt", "CALLSIGN: KA1ABC\nNAME: John\nLOCATION: Oakville\nSTATUS: SAFE\n")

	f.processor.Run()
	f.watcher.Ch <- path
	// give the worker a moment to dequeue
	time.Sleep(50 * time.Millisecond)
	f.processor.Stop()

	_, err := os.Stat(filepath.Join(f.archive, "slow.txt"))
	assert.NoError(t, err)
}
