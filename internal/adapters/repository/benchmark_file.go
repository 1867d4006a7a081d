package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/pkg/logger"
)

// Format is the on-disk encoding of a benchmark file.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

const documentVersion = 1

// FormatFor infers the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// document is the serialized shape: one record per role.
type document struct {
	Version     int                                `yaml:"version" json:"version"`
	GeneratedAt time.Time                          `yaml:"generatedAt" json:"generatedAt"`
	Benchmarks  map[string]benchmark.RoleBenchmark `yaml:"benchmarks" json:"benchmarks"`
}

// BenchmarkFile reads and writes a benchmark store at a fixed path.
type BenchmarkFile struct {
	path   string
	format Format
	logger logger.Logger
}

// NewBenchmarkFile returns a file store for path.
func NewBenchmarkFile(path string, opts ...FileOption) (*BenchmarkFile, error) {
	b := &BenchmarkFile{
		path:   path,
		logger: logger.Get().Named("benchmark-file"),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.format == "" {
		f, err := FormatFor(path)
		if err != nil {
			return nil, err
		}
		b.format = f
	}
	if b.format != FormatYAML && b.format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, b.format)
	}
	return b, nil
}

// Path returns the file location.
func (b *BenchmarkFile) Path() string { return b.path }

// Save writes the store atomically: the encoded document goes to a temp file
// in the same directory which is then renamed over the target.
func (b *BenchmarkFile) Save(ctx context.Context, store *benchmark.Store) error {
	if err := store.Available(); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	doc := document{
		Version:     documentVersion,
		GeneratedAt: time.Now().UTC(),
		Benchmarks:  make(map[string]benchmark.RoleBenchmark, store.Len()),
	}
	for r, rb := range store.Entries() {
		doc.Benchmarks[string(r)] = rb
	}

	data, err := b.encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.path, err)
	}
	if err := writeAtomic(b.path, data); err != nil {
		return err
	}

	b.logger.Info(ctx, "benchmark file saved",
		logger.String("path", b.path),
		logger.String("format", string(b.format)),
		logger.Int("roles", store.Len()),
	)
	return nil
}

// Load reads the store. A missing, unreadable or malformed file yields an
// error wrapping benchmark.ErrBenchmarkUnavailable; there is no partial result.
func (b *BenchmarkFile) Load(ctx context.Context) (*benchmark.Store, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", benchmark.ErrBenchmarkUnavailable, b.path, err)
	}

	doc, err := b.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: decode %s: %w",
			benchmark.ErrBenchmarkUnavailable, benchmark.ErrInvalidBenchmark, b.path, err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("%w: %w: %s: version %d",
			benchmark.ErrBenchmarkUnavailable, benchmark.ErrInvalidBenchmark, b.path, doc.Version)
	}

	entries := make(map[model.Role]benchmark.RoleBenchmark, len(doc.Benchmarks))
	for name, rb := range doc.Benchmarks {
		r, ok := model.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: %w: %s: unknown role %q",
				benchmark.ErrBenchmarkUnavailable, benchmark.ErrInvalidBenchmark, b.path, name)
		}
		entries[r] = rb
	}

	store, err := benchmark.NewStore(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", benchmark.ErrBenchmarkUnavailable, b.path, err)
	}
	if err := store.Available(); err != nil {
		return nil, fmt.Errorf("%s: %w", b.path, err)
	}

	b.logger.Info(ctx, "benchmark file loaded",
		logger.String("path", b.path),
		logger.Int("roles", store.Len()),
		logger.String("generated_at", doc.GeneratedAt.Format(time.RFC3339)),
	)
	return store, nil
}

func (b *BenchmarkFile) encode(doc document) ([]byte, error) {
	if b.format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *BenchmarkFile) decode(data []byte) (document, error) {
	var doc document
	if b.format == FormatJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err := dec.Decode(&doc)
		return doc, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
