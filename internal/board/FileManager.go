package board

import (
	"os"

	json "github.com/goccy/go-json"

	"welfared/internal/models"
	"welfared/internal/providers"
	"welfared/internal/services"
)

// FileManager saves and restores the roster snapshot. The state file is
// a plain JSON map of window key to records so operators can inspect it
// with standard tools; timestamps round-trip exactly.
type FileManager struct {
	service services.AggregatorServiceInterface
	logger  providers.Logger
}

func NewFileManager(service services.AggregatorServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		service: service,
		logger:  logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	state := f.service.GetSnapshot()

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var state models.SnapshotState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	f.service.PutSnapshot(state)
	f.logger.Infof(providers.TypeApp, "Restored %d window(s) from %s", len(state), fileName)
	return nil
}
