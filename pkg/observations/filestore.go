package observations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/forge-meta/pkg/logging"
	"github.com/entrhq/forge-meta/pkg/ui"
	"github.com/gobwas/glob"
)

var ErrNotFound = errors.New("observations: observation not found")
var ErrInvalidObservation = errors.New("observations: invalid observation")

// Injected for testability
var (
	timeNow    = time.Now
	renameFile = os.Rename
)

const corruptSuffix = ".corrupt"

// FileStore keeps the observation document in a single JSON file.
// It assumes a single writer: concurrent saves never corrupt the file,
// but the last rename wins.
type FileStore struct {
	path     string
	warnings *ui.Printer
	logger   *logging.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithWarnings sets where recoverable problems are reported. Defaults to stderr.
func WithWarnings(p *ui.Printer) Option {
	return func(s *FileStore) { s.warnings = p }
}

// WithLogger sets the debug logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *FileStore) { s.logger = l }
}

// NewFileStore returns a store backed by the file at path. Nothing is
// created on disk until the first save.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		warnings: ui.NewPrinter(os.Stderr),
		logger:   logging.Nop("observations"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted document. A missing file yields an empty
// document. A file that does not hold a valid document is reported as a
// warning, copied aside to <path>.corrupt, and replaced by an empty
// document; the original file is left in place until the next save.
// Any other read failure is returned.
func (s *FileStore) Load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debugf("store %s does not exist yet", s.path)
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("observations: read %s: %w", s.path, err)
	}

	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		s.logger.Warnf("corrupt store %s: %v", s.path, err)
		s.warnings.Warning("Warning: Corrupted storage file. Starting fresh.")
		s.backupCorrupt(raw)
		return NewDocument(), nil
	}
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	if doc.Observations == nil {
		doc.Observations = []Observation{}
	}
	return doc, nil
}

func (s *FileStore) backupCorrupt(raw []byte) {
	backup := s.path + corruptSuffix
	if err := os.WriteFile(backup, raw, 0600); err != nil {
		s.logger.Errorf("failed to back up corrupt store to %s: %v", backup, err)
		return
	}
	s.warnings.Plain("  Previous contents saved to %s", backup)
}

// Save stamps doc with today's date and atomically replaces the store
// file with it. On failure the temporary file is removed and the previous
// store file, if any, is untouched.
func (s *FileStore) Save(doc *Document) error {
	today := timeNow().Format(dateLayout)
	doc.LastUpdated = &today
	if doc.Observations == nil {
		doc.Observations = []Observation{}
	}

	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("observations: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("observations: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("observations: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("observations: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("observations: close temp file: %w", err)
	}
	if err := renameFile(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("observations: atomic rename %s: %w", s.path, err)
	}

	s.logger.Debugf("saved %d observations to %s", len(doc.Observations), s.path)
	return nil
}

// encode renders v as 2-space indented JSON without HTML escaping.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Marshal renders observation data the way the store and CLI print it.
func Marshal(v any) ([]byte, error) {
	return encode(v)
}

// Add records a new observation and persists the store.
func (s *FileStore) Add(in NewObservation) (*Observation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	now := timeNow()
	obs := Observation{
		ID:          GenerateID(doc.Observations, now),
		Description: in.Description,
		FeatureArea: in.FeatureArea,
		Context:     in.Context,
		Discovered:  now.Format(dateLayout),
		Status:      StatusNew,
	}
	if in.IssueURL != "" {
		issueURL := in.IssueURL
		obs.IssueURL = &issueURL
		obs.Status = StatusSubmitted
	}

	doc.Observations = append(doc.Observations, obs)
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	s.logger.Infof("added %s (%s)", obs.ID, obs.FeatureArea)
	return &obs, nil
}

// Remove deletes the observation with id. The store is only written when
// a record was actually removed; otherwise ErrNotFound is returned.
func (s *FileStore) Remove(id string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}

	before := len(doc.Observations)
	kept := make([]Observation, 0, before)
	for _, o := range doc.Observations {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == before {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	doc.Observations = kept
	if err := s.Save(doc); err != nil {
		return err
	}
	s.logger.Infof("removed %s", id)
	return nil
}

// Get returns the first observation with id.
func (s *FileStore) Get(id string) (*Observation, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Observations {
		if doc.Observations[i].ID == id {
			obs := doc.Observations[i]
			return &obs, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	FeatureArea FeatureArea
	Status      Status
	// Match is a glob applied to observation IDs, e.g. "obs-20250101-*".
	Match string
}

// List returns the stored observations matching f, in stored order.
func (s *FileStore) List(f Filter) ([]Observation, error) {
	var idGlob glob.Glob
	if f.Match != "" {
		g, err := glob.Compile(f.Match)
		if err != nil {
			return nil, fmt.Errorf("observations: invalid id pattern %q: %w", f.Match, err)
		}
		idGlob = g
	}

	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	out := make([]Observation, 0, len(doc.Observations))
	for _, o := range doc.Observations {
		if f.FeatureArea != "" && o.FeatureArea != f.FeatureArea {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if idGlob != nil && !idGlob.Match(o.ID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
