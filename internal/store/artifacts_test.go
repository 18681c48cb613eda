package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/pgherardini/ainewswire/internal/types"
)

type fakeDownloader struct {
	data []byte
	err  error
}

func (f *fakeDownloader) Get(ctx context.Context, url string) ([]byte, error) {
	return f.data, f.err
}

func TestArtifactStoreSaveText(t *testing.T) {
	dir := t.TempDir()
	a := NewArtifactStore(dir, &fakeDownloader{}, testLogger)

	stub := &types.Stub{
		URL:         "https://example.com/post",
		Title:       "A Big Announcement",
		Source:      "example",
		PublishDate: "2024-03-01",
		Text:        "the full body",
	}

	path, err := a.Save(context.Background(), stub)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !strings.HasSuffix(path, "a_big_announcement_example_2024_03_01.txt") {
		t.Errorf("artifact path = %q, want lowercase derived name", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	var got types.Stub
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("artifact is not valid json: %v", err)
	}
	if got.Text != "the full body" || got.URL != stub.URL {
		t.Errorf("artifact content = %+v", got)
	}
}

func TestArtifactStorePDFDownloadFailure(t *testing.T) {
	dir := t.TempDir()
	a := NewArtifactStore(dir, &fakeDownloader{err: errors.New("unreachable")}, testLogger)

	stub := &types.Stub{
		URL:    "https://arxiv.org/abs/2403.00001",
		PDFURL: "https://arxiv.org/pdf/2403.00001",
		Title:  "Scaling Widget Models",
		Source: "arxiv",
	}

	if _, err := a.Save(context.Background(), stub); err == nil {
		t.Fatal("expected error when the pdf download fails")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save must leave no artifacts, found %d", len(entries))
	}
}

func TestArtifactStorePDFConversionCleanup(t *testing.T) {
	dir := t.TempDir()
	// Bytes that are not a PDF: conversion fails and the intermediate
	// binary must be removed.
	a := NewArtifactStore(dir, &fakeDownloader{data: []byte("not a pdf")}, testLogger)

	stub := &types.Stub{
		URL:    "https://arxiv.org/abs/2403.00002",
		PDFURL: "https://arxiv.org/pdf/2403.00002",
		Title:  "Distilled Widgets",
		Source: "arxiv",
	}

	if _, err := a.Save(context.Background(), stub); err == nil {
		t.Fatal("expected conversion error for non-pdf bytes")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		t.Errorf("leftover artifact after failed conversion: %s", e.Name())
	}
}
