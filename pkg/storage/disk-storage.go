package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) string {
	return path.Join(ds.RootFolder, name)
}

// Fetch reads name from the root folder. A missing .gz file falls back to the
// uncompressed file next to it.
func (ds *DiskStorage) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fileName := ds.GetFileName(name)
	data, err := os.ReadFile(fileName)
	if errors.Is(err, os.ErrNotExist) && strings.HasSuffix(name, ".gz") {
		plain := strings.TrimSuffix(fileName, ".gz")
		log.Printf("%s not found, trying %s", fileName, plain)
		data, err = os.ReadFile(plain)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetUnavailable, name, err)
	}
	return data, nil
}

// Save writes data atomically through a temp file, used to seed a data root.
func (ds *DiskStorage) Save(name string, data []byte) error {
	fileName := ds.GetFileName(name)
	tmpFileName := fileName + ".tmp"
	if err := os.WriteFile(tmpFileName, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpFileName, fileName); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	return nil
}
