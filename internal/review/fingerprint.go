package review

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jmallard/countersign/pkg/storage"
)

// fingerprint streams the document's blob, hashes its canonical bytes, and
// runs the legibility check for PDF evidence. An illegible document cannot be
// approved because the anchored hash would attest to unreadable content.
func fingerprint(ctx context.Context, store storage.System, key, contentType string) (string, error) {
	blob, err := store.Download(ctx, key)
	if err != nil {
		return "", fmt.Errorf("download evidence: %w", err)
	}
	defer blob.Close()

	data, err := io.ReadAll(blob)
	if err != nil {
		return "", fmt.Errorf("read evidence: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: evidence blob is empty", ErrValidation)
	}

	if contentType == "application/pdf" {
		if err := checkLegibility(data); err != nil {
			return "", err
		}
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func checkLegibility(data []byte) error {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return fmt.Errorf("%w: evidence is not a legible pdf: %v", ErrValidation, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: evidence pdf has no pages", ErrValidation)
	}
	return nil
}
