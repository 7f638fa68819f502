package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coppahp/planner/internal/domain"
	"github.com/google/uuid"
)

// FileRecordStore keeps each record as <dir>/<project>_<team>.json in the
// legacy alias layout. Archived records move to archiveDir.
type FileRecordStore struct {
	dir        string
	archiveDir string
}

func NewFileRecordStore(dir, archiveDir string) (*FileRecordStore, error) {
	for _, d := range []string{dir, archiveDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	return &FileRecordStore{dir: dir, archiveDir: archiveDir}, nil
}

func recordFileName(project, team string) string {
	return project + "_" + team + ".json"
}

// parseRecordFileName splits at the first underscore; project names never
// contain one.
func parseRecordFileName(name string) (project, team string, ok bool) {
	base, found := strings.CutSuffix(name, ".json")
	if !found {
		return "", "", false
	}
	project, team, ok = strings.Cut(base, "_")
	return project, team, ok && project != "" && team != ""
}

func (s *FileRecordStore) path(project, team string) string {
	return filepath.Join(s.dir, recordFileName(project, team))
}

func (s *FileRecordStore) Load(ctx context.Context, project, team string) (*domain.ProjectRecord, error) {
	if err := validatePair(project, team); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(project, team))
	if errors.Is(err, fs.ErrNotExist) {
		rec := newRecord(project)
		if err := s.Save(ctx, project, team, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading record %s/%s: %w", project, team, err)
	}

	rec, err := DecodeLegacy(data)
	if err != nil {
		return nil, fmt.Errorf("record %s/%s: %w", project, team, err)
	}
	return rec, nil
}

func (s *FileRecordStore) Save(ctx context.Context, project, team string, rec *domain.ProjectRecord) error {
	if err := validatePair(project, team); err != nil {
		return err
	}
	stamp(rec, project, time.Now().UTC())

	data, err := EncodeLegacy(rec)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path(project, team), data); err != nil {
		return fmt.Errorf("saving record %s/%s: %w", project, team, err)
	}
	return nil
}

func (s *FileRecordStore) Exists(ctx context.Context, project, team string) (bool, error) {
	_, err := os.Stat(s.path(project, team))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking record %s/%s: %w", project, team, err)
	}
	return true, nil
}

func (s *FileRecordStore) ListProjects(ctx context.Context, includeArchived bool) ([]ProjectSummary, error) {
	pairs, err := scanRecordDir(s.dir, domain.ProjectActive)
	if err != nil {
		return nil, err
	}
	if includeArchived {
		archived, err := scanRecordDir(s.archiveDir, domain.ProjectArchived)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, archived...)
	}
	return summarize(pairs), nil
}

func (s *FileRecordStore) ListTeams(ctx context.Context, project string) ([]string, error) {
	pairs, err := scanRecordDir(s.dir, domain.ProjectActive)
	if err != nil {
		return nil, err
	}
	var teams []string
	for _, p := range summarize(pairs) {
		if p.Name == project {
			teams = p.Teams
		}
	}
	return teams, nil
}

// Archive moves every team file of the project, including teams no longer
// on the roster.
func (s *FileRecordStore) Archive(ctx context.Context, project string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}
	moved := 0
	for _, e := range entries {
		p, _, ok := parseRecordFileName(e.Name())
		if !ok || e.IsDir() || p != project {
			continue
		}
		src := filepath.Join(s.dir, e.Name())
		dst := filepath.Join(s.archiveDir, e.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("archiving %s: %w", e.Name(), err)
		}
		moved++
	}
	if moved == 0 {
		return fmt.Errorf("active project %q: %w", project, domain.ErrNotFound)
	}
	return nil
}

func scanRecordDir(dir string, status domain.ProjectStatus) ([]ProjectSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing records in %s: %w", dir, err)
	}
	var out []ProjectSummary
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		project, team, ok := parseRecordFileName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		out = append(out, ProjectSummary{
			Name:     project,
			Teams:    []string{team},
			Status:   status,
			Modified: info.ModTime().UTC(),
		})
	}
	return out, nil
}

// writeFileAtomic replaces path via a temp file and rename so readers never
// see a half-written record.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".record-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FileImportJournal appends import batches as JSON lines under
// <dir>/imports/<project>_<team>.jsonl.
type FileImportJournal struct {
	dir string
}

func NewFileImportJournal(dir string) *FileImportJournal {
	return &FileImportJournal{dir: filepath.Join(dir, "imports")}
}

func (j *FileImportJournal) path(project, team string) string {
	return filepath.Join(j.dir, project+"_"+team+".jsonl")
}

func (j *FileImportJournal) Append(ctx context.Context, b *ImportBatch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if err := os.MkdirAll(j.dir, 0755); err != nil {
		return fmt.Errorf("creating import journal directory: %w", err)
	}
	line, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding import batch: %w", err)
	}

	f, err := os.OpenFile(j.path(b.Project, b.Team), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening import journal: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending import batch: %w", err)
	}
	return nil
}

func (j *FileImportJournal) List(ctx context.Context, project, team string) ([]ImportBatch, error) {
	f, err := os.Open(j.path(project, team))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening import journal: %w", err)
	}
	defer f.Close()

	var out []ImportBatch
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(strings.TrimSpace(sc.Text())) == 0 {
			continue
		}
		var b ImportBatch
		if err := json.Unmarshal(sc.Bytes(), &b); err != nil {
			return nil, fmt.Errorf("decoding import batch: %w", err)
		}
		out = append(out, b)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading import journal: %w", err)
	}
	return out, nil
}

// DirectTransactor runs the callback against stores with no transaction.
// File stores write each record atomically, which is all they offer.
type DirectTransactor struct {
	Stores Stores
}

func (t DirectTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error {
	return fn(ctx, t.Stores)
}
