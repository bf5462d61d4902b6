package projects

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Ingester turns archives into stored projects
type Ingester struct {
	store     Store
	extractor Extractor
	scanner   SecretScanner
	now       func() time.Time
}

// NewIngester creates an ingester. A nil scanner disables secret scanning.
func NewIngester(store Store, extractor Extractor, scanner SecretScanner) *Ingester {
	return &Ingester{store: store, extractor: extractor, scanner: scanner, now: time.Now}
}

// Ingest extracts the archive and stores it as a new project
func (i *Ingester) Ingest(ctx context.Context, archiveName, projectName string, source Source, data []byte) (*Project, error) {
	files, err := i.extractor.Extract(ctx, archiveName, data)
	if err != nil {
		return nil, err
	}
	if i.scanner != nil {
		files = i.scanner.Scan(files)
	}

	p := &Project{
		ID:        NewID(),
		Name:      projectName,
		Source:    source,
		CreatedAt: i.now(),
		Files:     files,
	}
	if err := i.store.Put(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("project_id", p.ID).
		Str("name", p.Name).
		Str("source", string(source)).
		Int("files", len(p.Files)).
		Int("secrets", p.SecretsDetected()).
		Msg("Stored project")
	return p, nil
}

// UploadName derives the project name from an uploaded file name
func UploadName(fileName string) string {
	return strings.ReplaceAll(fileName, ".zip", "")
}
