// Package memdb keeps the artifact index in memory. It does not survive a restart; the files it points at
// stay on disk.
package memdb

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/hedisam/chaininvestigator/internal/ringbuffer"
	"github.com/hedisam/chaininvestigator/internal/store"
)

const (
	// DefaultMemSize is the maximum number of indexed artifacts.
	DefaultMemSize = 1000
)

type config struct {
	memSize uint
}

type Option func(*config)

// WithMemSize caps the number of indexed artifacts. Once full, the oldest entry is dropped from the index;
// its file stays on disk but is no longer downloadable.
func WithMemSize(memSize uint) Option {
	return func(c *config) {
		if memSize > 0 {
			c.memSize = memSize
		}
	}
}

type indexed struct {
	artifact *store.Artifact
	seq      uint64
}

type insertion struct {
	name string
	seq  uint64
}

// ArtifactStore indexes rendered report files by their download name.
type ArtifactStore struct {
	nameToArtifact map[string]indexed
	order          *ringbuffer.RingBuffer[insertion]
	seq            uint64
	mu             sync.RWMutex
}

func NewArtifactStore(opts ...Option) *ArtifactStore {
	cfg := &config{memSize: DefaultMemSize}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &ArtifactStore{
		nameToArtifact: make(map[string]indexed, min(cfg.memSize, 256)),
		order:          ringbuffer.New[insertion](cfg.memSize),
	}
}

// Put indexes artifact under its name, replacing any earlier artifact with the same name.
func (s *ArtifactStore) Put(_ context.Context, artifact *store.Artifact) error {
	if artifact == nil || artifact.Name == "" {
		return fmt.Errorf("artifact name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for s.order.IsFull() {
		s.evictOldest()
	}
	s.seq++
	cp := *artifact
	s.nameToArtifact[artifact.Name] = indexed{artifact: &cp, seq: s.seq}
	s.order.Push(insertion{name: artifact.Name, seq: s.seq})
	return nil
}

// evictOldest drops the oldest insertion and its artifact unless the name was indexed again since.
// Must be called with the lock held.
func (s *ArtifactStore) evictOldest() {
	rec, ok := s.order.Pop()
	if !ok {
		return
	}
	if idx, ok := s.nameToArtifact[rec.name]; ok && idx.seq == rec.seq {
		delete(s.nameToArtifact, rec.name)
	}
}

// Get returns the artifact registered under name or store.ErrNotFound.
func (s *ArtifactStore) Get(_ context.Context, name string) (*store.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.nameToArtifact[name]
	if !ok {
		return nil, store.ErrNotFound
	}

	cp := *idx.artifact
	return &cp, nil
}

// Len returns the number of indexed artifacts.
func (s *ArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nameToArtifact)
}
