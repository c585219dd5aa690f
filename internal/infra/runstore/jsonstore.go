package runstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aalvaropc/brcstream/internal/domain"
	"github.com/aalvaropc/brcstream/internal/ports"
)

const (
	defaultRunsDir = "runs"
	indexFile      = "index.jsonl"
)

// JSONStore keeps one pretty-printed JSON file per report under <root>/<runs_dir>.
type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.ReportStore   = (*JSONStore)(nil)
	_ ports.ReportCatalog = (*JSONStore)(nil)
)

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.runsDirName)
}

func (s *JSONStore) SaveReport(rep domain.ReportArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := rep.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	slug := slugify(strings.TrimSuffix(filepath.Base(rep.Source), filepath.Ext(rep.Source)))
	if slug == "" {
		slug = "report"
	}

	id := uniqueID(dir, fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug))
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	toSave := rep
	toSave.ID = id
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}
	if toSave.Stations == nil {
		toSave.Stations = []domain.StationSummary{}
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, domain.ReportRef{
			ID:        id,
			File:      filename,
			Source:    toSave.Source,
			StartedAt: toSave.StartedAt,
			Stations:  len(toSave.Stations),
		})
	}

	return id, nil
}

// ListReports returns stored reports, newest first. It reads the artifacts
// directly so reports saved without an index are listed too.
func (s *JSONStore) ListReports() ([]domain.ReportRef, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.ReportRef{}, nil
		}
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	refs := make([]domain.ReportRef, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		rep, err := s.LoadReport(id)
		if err != nil {
			continue
		}
		refs = append(refs, domain.ReportRef{
			ID:        id,
			File:      e.Name(),
			Source:    rep.Source,
			StartedAt: rep.StartedAt,
			Stations:  len(rep.Stations),
		})
	}

	sort.SliceStable(refs, func(i, j int) bool {
		if !refs[i].StartedAt.Equal(refs[j].StartedAt) {
			return refs[i].StartedAt.After(refs[j].StartedAt)
		}
		return refs[i].ID > refs[j].ID
	})
	return refs, nil
}

// LoadReport reads one stored report by ID.
func (s *JSONStore) LoadReport(id string) (domain.ReportArtifact, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" || strings.ContainsAny(id, `/\`) {
		return domain.ReportArtifact{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("invalid report id %q", id),
		}
	}

	path := filepath.Join(s.dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.ReportArtifact{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var rep domain.ReportArtifact
	if err := json.Unmarshal(b, &rep); err != nil {
		return domain.ReportArtifact{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	if rep.ID == "" {
		rep.ID = id
	}
	return rep, nil
}

// ReadIndex returns the index lines in write order.
func (s *JSONStore) ReadIndex() ([]domain.ReportRef, error) {
	path := filepath.Join(s.dir(), indexFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.ReportRef{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var refs []domain.ReportRef
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ref domain.ReportRef
		if err := json.Unmarshal(sc.Bytes(), &ref); err != nil {
			return nil, &domain.OpError{
				Op:   "runstore.index",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		refs = append(refs, ref)
	}
	return refs, sc.Err()
}

func (s *JSONStore) appendIndex(dir string, ref domain.ReportRef) error {
	line, err := json.Marshal(ref)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// uniqueID appends _2, _3, ... until no artifact with that ID exists.
func uniqueID(dir, base string) string {
	id := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, id+".json")); errors.Is(err, fs.ErrNotExist) {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
