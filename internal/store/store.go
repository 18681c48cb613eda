// Package store owns the persisted article metadata: a tabular record
// file keyed by URL plus one body artifact per article under a docs
// folder. Records are created only through Update and never mutated
// afterwards except for the is_new flag.
package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pgherardini/ainewswire/internal/types"
)

const (
	recordsFileName = "articles.csv"
	docsDirName     = "docs"
)

var recordHeader = []string{"url", "article_file_path", "title", "source", "publish_date", "has_text", "is_new"}

// ArtifactSaver persists an article body artifact and returns the path
// it was written to.
type ArtifactSaver interface {
	Save(ctx context.Context, stub *types.Stub) (string, error)
}

// Mirror is an optional secondary backend that receives every newly
// added record. Mirror failures are logged, never fatal: the CSV file
// remains the source of truth.
type Mirror interface {
	Upsert(ctx context.Context, records []types.Record) error
	Close(ctx context.Context) error
}

// Option configures a Store.
type Option func(*Store)

// WithMirror attaches a secondary record backend.
func WithMirror(m Mirror) Option {
	return func(s *Store) { s.mirror = m }
}

// Store is the article record store.
type Store struct {
	mu          sync.Mutex
	dataDir     string
	recordsPath string
	records     []types.Record
	index       map[string]int
	artifacts   ArtifactSaver
	mirror      Mirror
	logger      *slog.Logger
}

// Open loads (or initializes) the record store under dataDir. The docs
// folder and an empty record file are created when absent.
func Open(dataDir string, artifacts ArtifactSaver, logger *slog.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, docsDirName), 0o755); err != nil {
		return nil, &types.StorageError{Backend: "csv", Err: fmt.Errorf("create data dir: %w", err)}
	}

	s := &Store{
		dataDir:     dataDir,
		recordsPath: filepath.Join(dataDir, recordsFileName),
		index:       make(map[string]int),
		artifacts:   artifacts,
		logger:      logger.With("component", "record_store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := os.Stat(s.recordsPath); os.IsNotExist(err) {
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// DocsPath returns the body artifact folder under a data dir.
func DocsPath(dataDir string) string {
	return filepath.Join(dataDir, docsDirName)
}

// DocsDir returns the body artifact folder.
func (s *Store) DocsDir() string {
	return DocsPath(s.dataDir)
}

// IsKnown reports whether a URL is already persisted.
func (s *Store) IsKnown(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[url]
	return ok
}

// Update persists a batch of discovered stubs. The is_new flag is
// cleared on all existing records first; stubs with an empty or already
// known URL are skipped. A failed single-article persist is skipped and
// logged rather than aborting the batch. The full record set is written
// back once after the batch. Returns the count of newly added records.
func (s *Store) Update(ctx context.Context, stubs []*types.Stub) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		s.records[i].IsNew = false
	}

	var added []types.Record
	for _, stub := range stubs {
		if stub.URL == "" {
			continue
		}
		if _, known := s.index[stub.URL]; known {
			continue
		}

		path, err := s.artifacts.Save(ctx, stub)
		if err != nil {
			s.logger.Warn("article persist failed, skipping", "url", stub.URL, "error", err)
			continue
		}

		rec := types.Record{
			URL:             stub.URL,
			ArticleFilePath: path,
			Title:           stub.Title,
			Source:          stub.Source,
			PublishDate:     stub.PublishDate,
			HasText:         stub.HasText(),
			IsNew:           true,
		}
		s.index[rec.URL] = len(s.records)
		s.records = append(s.records, rec)
		added = append(added, rec)
	}

	if err := s.persist(); err != nil {
		return len(added), err
	}

	if s.mirror != nil && len(added) > 0 {
		if err := s.mirror.Upsert(ctx, added); err != nil {
			s.logger.Warn("record mirror update failed", "error", err)
		}
	}

	if len(added) > 0 {
		s.logger.Info("articles database updated", "new_articles", len(added))
	} else {
		s.logger.Info("articles database already up to date")
	}

	return len(added), nil
}

// NewArticles returns the records inserted by the most recent Update.
func (s *Store) NewArticles() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.Record
	for _, r := range s.records {
		if r.IsNew {
			out = append(out, r)
		}
	}
	return out
}

// AllArticles returns every record in insertion order.
func (s *Store) AllArticles() []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Close releases the mirror backend, if any.
func (s *Store) Close(ctx context.Context) error {
	if s.mirror != nil {
		return s.mirror.Close(ctx)
	}
	return nil
}

func (s *Store) load() error {
	f, err := os.Open(s.recordsPath)
	if err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return &types.StorageError{Backend: "csv", Err: fmt.Errorf("read records: %w", err)}
	}

	for i, row := range rows {
		if i == 0 || len(row) < len(recordHeader) {
			continue
		}
		hasText, _ := strconv.ParseBool(row[5])
		isNew, _ := strconv.ParseBool(row[6])
		rec := types.Record{
			URL:             row[0],
			ArticleFilePath: row[1],
			Title:           row[2],
			Source:          row[3],
			PublishDate:     row[4],
			HasText:         hasText,
			IsNew:           isNew,
		}
		s.index[rec.URL] = len(s.records)
		s.records = append(s.records, rec)
	}

	s.logger.Debug("records loaded", "count", len(s.records), "path", s.recordsPath)
	return nil
}

func (s *Store) persist() error {
	f, err := os.Create(s.recordsPath)
	if err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(recordHeader); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	for _, r := range s.records {
		row := []string{
			r.URL,
			r.ArticleFilePath,
			r.Title,
			r.Source,
			r.PublishDate,
			strconv.FormatBool(r.HasText),
			strconv.FormatBool(r.IsNew),
		}
		if err := w.Write(row); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	return nil
}
