package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/maypok86/otter/v2"
	"io/fs"
	"notifwhitelist/internal/app/ports"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrInvalidNamespace = errors.New("invalid namespace")

type document map[string]json.RawMessage

// FileStore keeps one "<namespace>.config.json" document per namespace under dir.
// Decoded documents stay in memory so loads after the first one skip the disk.
type FileStore struct {
	mu   sync.Mutex
	dir  string
	docs *otter.Cache[string, document]
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &FileStore{
		dir: dir,
		docs: otter.Must(&otter.Options[string, document]{
			MaximumSize: 64,
		}),
	}, nil
}

func (s *FileStore) Load(namespace, key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document(namespace)
	if err != nil {
		return false, err
	}

	raw, ok := doc[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode %s.%s: %w: %w", namespace, key, ports.ErrCorruptValue, err)
	}
	return true, nil
}

func (s *FileStore) Save(namespace, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s.%s: %w", namespace, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document(namespace)
	if err != nil {
		return err
	}

	next := make(document, len(doc)+1)
	for k, v := range doc {
		next[k] = v
	}
	next[key] = raw

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	if err := writeAtomic(s.path(namespace), data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", namespace, err)
	}

	s.docs.Set(namespace, next)
	return nil
}

func (s *FileStore) Close() error {
	s.docs.InvalidateAll()
	return nil
}

func (s *FileStore) document(namespace string) (document, error) {
	if namespace == "" || strings.ContainsAny(namespace, `/\`) || strings.Contains(namespace, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, namespace)
	}

	if doc, ok := s.docs.GetIfPresent(namespace); ok {
		return doc, nil
	}

	data, err := os.ReadFile(s.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		doc := make(document)
		s.docs.Set(namespace, doc)
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", namespace, err)
	}

	doc := make(document)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", namespace, err)
		}
	}

	s.docs.Set(namespace, doc)
	return doc, nil
}

func (s *FileStore) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".config.json")
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, time.Now().UnixNano()))

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
