// SPDX-License-Identifier: MPL-2.0

package version

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillforge/skillforge/pkg/cueutil"
	"github.com/skillforge/skillforge/pkg/types"
)

// RecordFileName is the version record file written next to the bundle.
const RecordFileName = "skillforge.lock.cue"

// ErrCorruptRecord is the sentinel error wrapped by CorruptRecordError.
var ErrCorruptRecord = errors.New("corrupt version record")

//go:embed record_schema.cue
var recordSchema []byte

type (
	// Record is the persisted version record: the version decision plus the
	// content identity it was derived from.
	Record struct {
		Version     types.SemVer
		ContentHash string
		BundleID    string
		Generated   time.Time
	}

	// CorruptRecordError reports an unreadable or invalid version record.
	// Corruption fails loudly by default: silently restarting at 1.0.0
	// would hand out already-used versions for different content.
	CorruptRecordError struct {
		Path string
		Err  error
	}

	// recordFile mirrors the CUE field layout for decoding.
	recordFile struct {
		Version     string `json:"version"`
		ContentHash string `json:"content_hash"`
		BundleID    string `json:"bundle_id"`
		Generated   string `json:"generated"`
	}
)

// Error implements the error interface for CorruptRecordError.
func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt version record %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrCorruptRecord for errors.Is() compatibility.
func (e *CorruptRecordError) Unwrap() error { return ErrCorruptRecord }

// LoadRecord reads the version record from dir. A missing record returns
// (nil, nil), meaning the first compile of a bundle. Every other failure is
// a CorruptRecordError; recovery is the caller's explicit decision.
func LoadRecord(dir string) (*Record, error) {
	path := filepath.Join(dir, RecordFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &CorruptRecordError{Path: path, Err: err}
	}

	raw, err := cueutil.Decode[recordFile](recordSchema, data, "#Record", cueutil.WithFilename(path))
	if err != nil {
		return nil, &CorruptRecordError{Path: path, Err: err}
	}

	if _, err := types.ParseVersion(raw.Version); err != nil {
		return nil, &CorruptRecordError{Path: path, Err: err}
	}
	generated, err := time.Parse(time.RFC3339, raw.Generated)
	if err != nil {
		return nil, &CorruptRecordError{Path: path, Err: err}
	}

	return &Record{
		Version:     types.SemVer(raw.Version),
		ContentHash: raw.ContentHash,
		BundleID:    raw.BundleID,
		Generated:   generated,
	}, nil
}

// SaveRecord writes rec to dir atomically (temp file + rename). The pipeline
// persists the record only after every artifact write succeeded, so a
// crashed compile never leaves a record describing artifacts that were not
// produced.
func SaveRecord(dir string, rec *Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, RecordFileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(rec.toCUE()), 0o644); err != nil {
		return fmt.Errorf("failed to write version record: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to rename version record: %w", err)
	}

	return nil
}

// toCUE serializes the record to CUE format.
func (r *Record) toCUE() string {
	var sb strings.Builder

	sb.WriteString("// skillforge.lock.cue - Auto-generated version record\n")
	sb.WriteString("// DO NOT EDIT MANUALLY\n\n")

	sb.WriteString(fmt.Sprintf("version:      %q\n", string(r.Version)))
	sb.WriteString(fmt.Sprintf("content_hash: %q\n", r.ContentHash))
	sb.WriteString(fmt.Sprintf("bundle_id:    %q\n", r.BundleID))
	sb.WriteString(fmt.Sprintf("generated:    %q\n", r.Generated.Format(time.RFC3339)))

	return sb.String()
}
