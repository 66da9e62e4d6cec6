// Package gitstore provides a Git plumbing-based implementation of SnapshotStore.
package gitstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskboard/internal/domain"
	"github.com/runoshun/taskboard/internal/infra/record"
)

// Store implements domain.SnapshotStore using Git plumbing (refs and blobs).
//
// Data structure:
//
//	refs/<namespace>/
//	  initialized → blob (marker)
//	  snapshot    → blob (snapshot YAML)
//
// The repository is opened lazily and created bare on Initialize.
type Store struct {
	repo      *git.Repository
	repoPath  string // path to the repository
	namespace string // e.g., "taskboard"
	mu        sync.RWMutex
}

// document is the YAML layout of the snapshot blob.
// Fields are ordered to minimize memory padding.
type document struct {
	Items   []record.Record `yaml:"items"`
	History []int           `yaml:"history,flow"`
	NextID  int             `yaml:"nextID"`
}

// New creates a new Store for the repository at repoPath.
func New(repoPath, namespace string) *Store {
	return &Store{
		repoPath:  repoPath,
		namespace: namespace,
	}
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// snapshotRef returns the ref name holding the latest snapshot.
func (s *Store) snapshotRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "snapshot")
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// open returns the repository, opening it on first use.
// Callers must hold s.mu.
func (s *Store) open() (*git.Repository, error) {
	if s.repo != nil {
		return s.repo, nil
	}
	repo, err := git.PlainOpen(s.repoPath)
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	s.repo = repo
	return repo, nil
}

// Initialize creates the repository (bare) if needed and writes the
// initialized marker.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		repo, err := git.PlainOpen(s.repoPath)
		if errors.Is(err, git.ErrRepositoryNotExists) {
			repo, err = git.PlainInit(s.repoPath, true)
		}
		if err != nil {
			return fmt.Errorf("open git repository: %w", err)
		}
		s.repo = repo
	}

	// Check if already initialized
	_, err := s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("check initialized ref: %w", err)
	}

	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set initialized ref: %w", err)
	}
	return nil
}

// IsInitialized checks if the store has been initialized.
func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.open()
	if err != nil {
		return false
	}
	_, err = repo.Reference(s.initializedRef(), true)
	return err == nil
}

// Load reads the snapshot blob. A missing snapshot ref yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, err := s.open()
	if err != nil {
		return nil, err
	}
	ref, err := repo.Reference(s.snapshotRef(), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return &domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.MalformedRecordError{Err: fmt.Errorf("unmarshal snapshot: %w", err)}
	}
	return record.ToSnapshot(doc.Items, doc.History, doc.NextID)
}

// Save writes the snapshot as a new blob and moves the snapshot ref to it.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.open(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&document{
		Items:   record.FromSnapshot(snap),
		History: snap.History,
		NextID:  snap.NextID,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.snapshotRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set snapshot ref: %w", err)
	}
	return nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads the full content of a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}

// Ensure Store implements SnapshotStore.
var _ domain.SnapshotStore = (*Store)(nil)
