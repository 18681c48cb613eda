package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pgherardini/ainewswire/internal/types"
)

// Downloader fetches a binary artifact over HTTP.
type Downloader interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Counter is an incrementing metric, satisfied by *atomic.Int64.
type Counter interface {
	Add(delta int64) int64
}

// ArtifactOption configures an ArtifactStore.
type ArtifactOption func(*ArtifactStore)

// WithDownloadCounter counts successful PDF downloads.
func WithDownloadCounter(c Counter) ArtifactOption {
	return func(a *ArtifactStore) { a.downloads = c }
}

// ArtifactStore writes one body artifact per article into the docs
// folder. Articles carrying a PDF reference are downloaded and
// converted to plain text, discarding the binary afterwards; everything
// else is serialized as-is.
type ArtifactStore struct {
	docsDir    string
	downloader Downloader
	downloads  Counter
	logger     *slog.Logger
}

// NewArtifactStore creates an artifact writer rooted at docsDir.
func NewArtifactStore(docsDir string, downloader Downloader, logger *slog.Logger, opts ...ArtifactOption) *ArtifactStore {
	a := &ArtifactStore{
		docsDir:    docsDir,
		downloader: downloader,
		logger:     logger.With("component", "artifact_store"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Save persists the stub's body artifact and returns the text file path.
func (a *ArtifactStore) Save(ctx context.Context, stub *types.Stub) (string, error) {
	name := strings.ToLower(SafeFilename(fmt.Sprintf("%s_%s_%s", stub.Title, stub.Source, stub.PublishDate)))

	if stub.PDFURL != "" {
		return a.savePDF(ctx, stub, name)
	}
	return a.saveText(stub, name)
}

// savePDF downloads the article's PDF, converts it to plain text, and
// removes the binary.
func (a *ArtifactStore) savePDF(ctx context.Context, stub *types.Stub, name string) (string, error) {
	pdfPath := filepath.Join(a.docsDir, name+".pdf")
	txtPath := filepath.Join(a.docsDir, name+".txt")

	data, err := a.downloader.Get(ctx, stub.PDFURL)
	if err != nil {
		return "", err
	}
	if a.downloads != nil {
		a.downloads.Add(1)
	}
	if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
		return "", &types.StorageError{Backend: "docs", Err: err}
	}

	text, err := pdfToText(pdfPath)
	if err != nil {
		os.Remove(pdfPath)
		return "", &types.StorageError{Backend: "docs", Err: fmt.Errorf("convert pdf: %w", err)}
	}
	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		os.Remove(pdfPath)
		return "", &types.StorageError{Backend: "docs", Err: err}
	}

	if err := os.Remove(pdfPath); err != nil {
		a.logger.Warn("could not remove intermediate pdf", "path", pdfPath, "error", err)
	}

	a.logger.Debug("pdf artifact saved", "url", stub.PDFURL, "path", txtPath)
	return txtPath, nil
}

// saveText serializes the stub itself as the body artifact.
func (a *ArtifactStore) saveText(stub *types.Stub, name string) (string, error) {
	txtPath := filepath.Join(a.docsDir, name+".txt")

	data, err := stub.ToJSON()
	if err != nil {
		return "", &types.StorageError{Backend: "docs", Err: err}
	}
	if err := os.WriteFile(txtPath, data, 0o644); err != nil {
		return "", &types.StorageError{Backend: "docs", Err: err}
	}

	return txtPath, nil
}
