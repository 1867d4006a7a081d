// Package repository persists benchmark tables and reads player seasons.
package repository

import (
	"github.com/okian/cupline/pkg/logger"
)

// FileOption applies a configuration option to a BenchmarkFile.
type FileOption func(*BenchmarkFile)

// WithFileFormat forces the serialization format instead of inferring it from the extension.
func WithFileFormat(f Format) FileOption {
	return func(b *BenchmarkFile) {
		if f != "" {
			b.format = f
		}
	}
}

// WithFileLogger sets a custom logger.
func WithFileLogger(l logger.Logger) FileOption {
	return func(b *BenchmarkFile) {
		if l != nil {
			b.logger = l
		}
	}
}

// SQLiteOption applies a configuration option to a SQLiteSource.
type SQLiteOption func(*SQLiteSource)

// WithSQLiteLogger sets a custom logger.
func WithSQLiteLogger(l logger.Logger) SQLiteOption {
	return func(s *SQLiteSource) {
		if l != nil {
			s.logger = l
		}
	}
}
