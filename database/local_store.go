package database

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

const indexFileName = "index.gob"

// LocalStore keeps the index in a single file under a fixed folder.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Path() string {
	return filepath.Join(s.dir, indexFileName)
}

// Save writes the index to a temporary file in the same folder and renames it over the
// previous one, so a failed write leaves the last good index in place.
func (s *LocalStore) Save(ctx context.Context, index *Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %v", err)
	}

	tmp, err := os.CreateTemp(s.dir, indexFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %v", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := gob.NewEncoder(tmp).Encode(index); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode index: %v", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync index file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close index file: %v", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("failed to replace index file: %v", err)
	}
	log.Printf("Saved index %s (%d chunks, model %s) to %s", index.BuildID, len(index.Chunks), index.EmbeddingModel, s.Path())
	return nil
}

// Open loads the persisted index. It returns ErrIndexNotFound when nothing was saved yet.
func (s *LocalStore) Open(ctx context.Context) (SimilarityIndex, error) {
	return s.Load(ctx)
}

func (s *LocalStore) Load(ctx context.Context) (*Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	var index Index
	if err := gob.NewDecoder(f).Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode index %s: %w", s.Path(), err)
	}
	if err := index.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(), err)
	}
	return &index, nil
}
