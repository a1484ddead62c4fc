package board

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"welfared/internal/board/interfaces"
	"welfared/internal/providers"
	"welfared/internal/structures"
)

// Filer moves processed input files into the archive folder and failed
// ones into the error folder with a companion .error.txt. Name
// collisions get a timestamp suffix. A source file that has already
// vanished (duplicate watcher event) is a silent no-op.
type Filer struct {
	archiveDir string
	errorDir   string
	compress   bool
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFiler(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Filer {
	return &Filer{
		archiveDir: conf.Watch.ArchiveDir,
		errorDir:   conf.Watch.ErrorDir,
		compress:   conf.Archive.Compress,
		compressor: compressor,
		logger:     logger,
	}
}

// ToArchive files a successfully processed (or duplicate) check-in.
// With compression enabled the archived copy is zstd-compressed and the
// original removed instead of moved.
func (f *Filer) ToArchive(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(f.archiveDir, 0o755); err != nil {
		return err
	}

	if f.compress {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		packed, err := f.compressor.Compress(data)
		if err != nil {
			return err
		}
		dest := collisionSafe(f.archiveDir, filepath.Base(path)+".zst")
		if err := os.WriteFile(dest, packed, 0o644); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		f.logger.Infof(providers.TypePipeline, "Archived (compressed): %s", filepath.Base(dest))
		return nil
	}

	dest := collisionSafe(f.archiveDir, filepath.Base(path))
	if err := moveFile(path, dest); err != nil {
		return err
	}
	f.logger.Infof(providers.TypePipeline, "Archived: %s", filepath.Base(dest))
	return nil
}

// ToError files a rejected check-in alongside a .error.txt naming the
// reason, so operators can tell a bad message from a mistimed one.
func (f *Filer) ToError(path, reason string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(f.errorDir, 0o755); err != nil {
		return err
	}

	dest := collisionSafe(f.errorDir, filepath.Base(path))
	if err := moveFile(path, dest); err != nil {
		return err
	}

	companion := strings.TrimSuffix(dest, filepath.Ext(dest)) + ".error.txt"
	note := fmt.Sprintf("Error: %s\nTime: %s\n", reason, time.Now().Format(time.RFC3339))
	if err := os.WriteFile(companion, []byte(note), 0o644); err != nil {
		f.logger.Warnf(providers.TypePipeline, "Could not write error companion: %s", err)
	}

	f.logger.Warnf(providers.TypePipeline, "Moved to error folder: %s (%s)", filepath.Base(dest), reason)
	return nil
}

// ReadArchived reads an archived file back, transparently decompressing
// .zst entries.
func (f *Filer) ReadArchived(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".zst") {
		return f.compressor.Decompress(data)
	}
	return data, nil
}

func collisionSafe(dir, name string) string {
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		in.Close()
		return err
	}
	_, err = io.Copy(out, in)
	in.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}
