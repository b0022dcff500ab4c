// Package shares turns raw heartbeat reports of an epoch into valid and invalid shares.
package shares

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/hexmobile/mobile-verifier/common/types"
)

//go:generate mockgen -typed -package=shares -destination=./mocks.go -source=./source.go

const (
	// FilePrefix is the prefix of ingested heartbeat files: heartbeat.<unix millis>.json.
	FilePrefix = "heartbeat"
	fileExt    = ".json"
	schemaFile = "heartbeat.schema.json"
)

//go:embed schema.json
var schema string

// Source provides heartbeat reports received during an epoch.
type Source interface {
	Reports(ctx context.Context, epoch types.Epoch) ([]types.HeartbeatReport, error)
}

type FileSourceOpt func(*FileSource)

func WithLogger(logger *zap.Logger) FileSourceOpt {
	return func(s *FileSource) {
		s.logger = logger
	}
}

// FileSource reads reports from a directory of heartbeat files.
type FileSource struct {
	logger *zap.Logger
	fs     afero.Fs
	dir    string
	schema *jsonschema.Schema
}

func NewFileSource(fs afero.Fs, dir string, opts ...FileSourceOpt) (*FileSource, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaFile, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("add heartbeat json schema: %w", err)
	}
	sch, err := compiler.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("compile heartbeat json schema: %w", err)
	}
	s := &FileSource{
		logger: zap.NewNop(),
		fs:     fs,
		dir:    dir,
		schema: sch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FileName returns the name of a heartbeat file received at ts.
func FileName(ts time.Time) string {
	return FilePrefix + "." + strconv.FormatInt(ts.UnixMilli(), 10) + fileExt
}

func parseFileName(name string) (time.Time, bool) {
	millis, ok := strings.CutPrefix(name, FilePrefix+".")
	if !ok {
		return time.Time{}, false
	}
	millis, ok = strings.CutSuffix(millis, fileExt)
	if !ok {
		return time.Time{}, false
	}
	v, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(v).UTC(), true
}

type file struct {
	name string
	ts   time.Time
}

// files returns heartbeat files received during the epoch ordered by the time they were received.
func (s *FileSource) files(epoch types.Epoch) ([]file, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}
	var rst []file
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseFileName(entry.Name())
		if !ok || !epoch.Contains(ts) {
			continue
		}
		rst = append(rst, file{name: entry.Name(), ts: ts})
	}
	slices.SortFunc(rst, func(a, b file) int {
		return a.ts.Compare(b.ts)
	})
	return rst, nil
}

// Reports returns reports from files received during the epoch.
// Files that don't match the heartbeat schema are skipped.
func (s *FileSource) Reports(ctx context.Context, epoch types.Epoch) ([]types.HeartbeatReport, error) {
	files, err := s.files(epoch)
	if err != nil {
		return nil, err
	}
	var rst []types.HeartbeatReport
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, f.name)
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		reports, err := s.decode(data)
		if err != nil {
			s.logger.Warn("skipping malformed heartbeat file",
				zap.String("path", path),
				zap.Error(err),
			)
			malformedFiles.Inc()
			continue
		}
		rst = append(rst, reports...)
	}
	s.logger.Debug("loaded heartbeat reports",
		zap.Stringer("epoch", epoch),
		zap.Int("files", len(files)),
		zap.Int("reports", len(rst)),
	)
	return rst, nil
}

func (s *FileSource) decode(data []byte) ([]types.HeartbeatReport, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal heartbeat data: %w", err)
	}
	if err := s.schema.Validate(v); err != nil {
		return nil, fmt.Errorf("validate heartbeat data: %w", err)
	}
	var reports []types.HeartbeatReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("decode heartbeat data: %w", err)
	}
	return reports, nil
}
