// Package filestore mirrors the relational data into flat JSON files so
// the dashboard still has something to read when the database is down.
// It also takes timestamped snapshots of the mirror and restores them.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	MaterialsFile  = "materials.json"
	SuppliersFile  = "suppliers.json"
	WarehousesFile = "warehouses.json"
	PricingFile    = "supplier-material-pricing.json"

	backupDirName = "backups"
	backupStamp   = "20060102-150405"
)

var mirrorFiles = []string{MaterialsFile, SuppliersFile, WarehousesFile, PricingFile}

// Store serializes all mirror access through one mutex; the mirror is a
// fallback, not a hot path.
type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, backupDirName), 0o755); err != nil {
		return nil, fmt.Errorf("filestore init: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes v as indented JSON to the named mirror file, replacing it
// atomically via a rename.
func (s *Store) Save(file string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore save %s: %w", file, err)
	}
	tmp := filepath.Join(s.dir, file+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("filestore save %s: %w", file, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, file)); err != nil {
		return fmt.Errorf("filestore save %s: %w", file, err)
	}
	return nil
}

// Load reads the named mirror file into v. A missing file is not an
// error; v is left untouched and ok is false.
func (s *Store) Load(file string, v interface{}) (ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, file))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("filestore load %s: %w", file, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("filestore load %s: %w", file, err)
	}
	return true, nil
}

// Snapshot copies the current mirror files into a timestamped backup
// directory and returns the snapshot name. Missing mirror files are
// skipped.
func (s *Store) Snapshot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := time.Now().UTC().Format(backupStamp)
	dst := filepath.Join(s.dir, backupDirName, name)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", fmt.Errorf("filestore snapshot: %w", err)
	}
	for _, file := range mirrorFiles {
		data, err := os.ReadFile(filepath.Join(s.dir, file))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("filestore snapshot: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dst, file), data, 0o644); err != nil {
			return "", fmt.Errorf("filestore snapshot: %w", err)
		}
	}
	return name, nil
}

// Snapshots lists available snapshot names, newest first.
func (s *Store) Snapshots() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, backupDirName))
	if err != nil {
		return nil, fmt.Errorf("filestore snapshots: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Restore copies a snapshot's files back over the live mirror. The
// snapshot name must be a bare directory name, not a path.
func (s *Store) Restore(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("filestore restore: invalid snapshot name %q", name)
	}
	src := filepath.Join(s.dir, backupDirName, name)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("filestore restore %s: %w", name, err)
	}
	for _, file := range mirrorFiles {
		data, err := os.ReadFile(filepath.Join(src, file))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("filestore restore %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(s.dir, file), data, 0o644); err != nil {
			return fmt.Errorf("filestore restore %s: %w", name, err)
		}
	}
	return nil
}
