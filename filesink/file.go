package filesink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

const dirPerm = 0o700

// recoveryFile is written to a temporary file and renamed into place once it is synced,
// so that a crash never leaves a partial file under the final name.
type recoveryFile struct {
	file    afero.File
	gz      *gzip.Writer
	fwriter *bufio.Writer
	path    string
}

func newRecoveryFile(fs afero.Fs, path string) (*recoveryFile, error) {
	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("create dst dir %v: %w", filepath.Dir(path), err)
	}
	tmpf, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%w: create tmp file", err)
	}
	gz := gzip.NewWriter(tmpf)
	return &recoveryFile{
		file:    tmpf,
		gz:      gz,
		fwriter: bufio.NewWriter(gz),
		path:    path,
	}, nil
}

// writeRecord appends record as a single json line.
func (rf *recoveryFile) writeRecord(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := rf.fwriter.Write(data); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return rf.fwriter.WriteByte('\n')
}

func (rf *recoveryFile) save(fs afero.Fs) error {
	defer rf.file.Close()
	if err := rf.fwriter.Flush(); err != nil {
		return fmt.Errorf("flush tmp file: %w", err)
	}
	if err := rf.gz.Close(); err != nil {
		return fmt.Errorf("close gzip stream: %w", err)
	}
	if err := rf.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync tmp file", err)
	}
	if err := rf.file.Close(); err != nil {
		return fmt.Errorf("%w: close tmp file", err)
	}
	if err := fs.Rename(rf.file.Name(), rf.path); err != nil {
		return fmt.Errorf("%w: rename tmp file %v to %v", err, rf.file.Name(), rf.path)
	}
	return nil
}

func (rf *recoveryFile) abort(fs afero.Fs) {
	rf.file.Close()
	fs.Remove(rf.file.Name())
}

// ReadRecords decodes every json line of a file written by a Sink.
func ReadRecords[T any](fs afero.Fs, path string) ([]T, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open gzip stream %s: %w", path, err)
	}
	defer gz.Close()
	var rst []T
	dec := json.NewDecoder(gz)
	for dec.More() {
		var record T
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode record %d of %s: %w", len(rst), path, err)
		}
		rst = append(rst, record)
	}
	return rst, nil
}
