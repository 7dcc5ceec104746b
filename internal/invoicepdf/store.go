package invoicepdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Store keeps rendered documents on disk under
// <dir>/<year>/<customerID>/<invoiceNumber>.pdf.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) filePath(customerID string, year int, invoiceNumber string) string {
	return filepath.Join(s.dir, strconv.Itoa(year), customerID, invoiceNumber+".pdf")
}

func (s *Store) Save(data []byte, customerID string, year int, invoiceNumber string) (string, error) {
	path := s.filePath(customerID, year, invoiceNumber)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create document directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}

func (s *Store) Read(customerID string, year int, invoiceNumber string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.filePath(customerID, year, invoiceNumber))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read document: %w", err)
	}
	return data, true, nil
}
