package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/protokolbase/protokolbase/internal/apperr"
)

func TestFetchError_Message(t *testing.T) {
	err := apperr.NewFetch("https://example.ch/sitzungen/42", 503)

	want := "fetch https://example.ch/sitzungen/42: status 503"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestUploadError_SurvivesFmtWrapping(t *testing.T) {
	inner := fmt.Errorf("connection reset")
	original := apperr.NewUpload("ingenbohl/5342411/123.pdf", inner)

	wrapped := fmt.Errorf("blob step failed: %w", original)
	doubleWrapped := fmt.Errorf("document 123: %w", wrapped)

	var ue *apperr.UploadError
	if !errors.As(doubleWrapped, &ue) {
		t.Fatal("errors.As should find UploadError through double wrapping")
	}
	if ue.Pathname != "ingenbohl/5342411/123.pdf" {
		t.Errorf("unexpected pathname %q", ue.Pathname)
	}
	if !errors.Is(doubleWrapped, inner) {
		t.Error("expected Unwrap to reach the inner error")
	}
}

func TestDownloadError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("store error: %w", plain)

	var de *apperr.DownloadError
	if errors.As(wrapped, &de) {
		t.Fatal("errors.As should NOT find DownloadError in plain error chain")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := apperr.NewNotFound("municipality", "bfs 1002")

	if err.Error() != "municipality bfs 1002 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
