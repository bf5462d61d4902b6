package projects

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mholt/archives"
	"github.com/rs/zerolog/log"
)

// ErrInvalidArchive is returned when the upload is not a readable archive
var ErrInvalidArchive = errors.New("Invalid ZIP file")

// Extractor indexes the Python sources of an archive
type Extractor struct {
	// MinFileSize skips files smaller than this many bytes
	MinFileSize int64
	// MaxFileSize skips files larger than this many bytes; zero means no limit
	MaxFileSize int64
}

// Extract reads every Python file of the archive. The name is only used
// to recognise the archive format. Entries with absolute or parent paths
// are ignored.
func (e Extractor) Extract(ctx context.Context, name string, data []byte) ([]File, error) {
	format, _, err := archives.Identify(ctx, name, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	ex, ok := format.(archives.Extractor)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be extracted", ErrInvalidArchive, name)
	}

	var files []File
	err = ex.Extract(ctx, bytes.NewReader(data), func(ctx context.Context, f archives.FileInfo) error {
		if f.IsDir() {
			return nil
		}
		rel, ok := safePath(f.NameInArchive)
		if !ok {
			log.Warn().Str("path", f.NameInArchive).Msg("Suspicious file path detected")
			return nil
		}
		base := path.Base(rel)
		if !strings.HasSuffix(base, ".py") || strings.HasPrefix(base, "._") {
			return nil
		}
		if f.Size() < e.MinFileSize || (e.MaxFileSize > 0 && f.Size() > e.MaxFileSize) {
			return nil
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", rel, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}

		files = append(files, File{
			Name:    base,
			Path:    rel,
			Size:    int64(len(content)),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	for i := range files {
		files[i].Index = i
	}

	log.Info().
		Str("archive", name).
		Str("archive_size", humanize.Bytes(uint64(len(data)))).
		Int("python_files", len(files)).
		Msg("Extracted project archive")

	if len(files) == 0 {
		return nil, ErrNoPythonFiles
	}
	return files, nil
}

// safePath cleans an archive entry name and rejects absolute or escaping paths
func safePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
		return "", false
	}
	clean := path.Clean(name)
	if clean == "." || clean == "" {
		return "", false
	}
	return clean, true
}
