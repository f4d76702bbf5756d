// Package storage persists uploaded receipt files on the local filesystem.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReceiptStorage stores receipt files and hands out the key and public URL
// the bill record is created with.
type ReceiptStorage struct {
	baseDir       string
	publicBaseURL string
	logger        *zap.Logger
}

// NewReceiptStorage creates a ReceiptStorage rooted at baseDir. Stored
// files are reachable under publicBaseURL + "/receipts/".
func NewReceiptStorage(baseDir, publicBaseURL string, logger *zap.Logger) *ReceiptStorage {
	return &ReceiptStorage{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Dir returns the directory receipt files are stored in.
func (s *ReceiptStorage) Dir() string {
	return s.baseDir
}

// Save writes the receipt content under a fresh key and returns the key
// and the public file URL.
func (s *ReceiptStorage) Save(fileName string, content []byte) (key, fileURL string, err error) {
	key, err = newKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate key: %w", err)
	}

	storedName := key + strings.ToLower(filepath.Ext(fileName))
	fullPath := filepath.Join(s.baseDir, storedName)

	if err := s.validatePath(fullPath); err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		s.logger.Error("Failed to create receipt directory",
			zap.String("path", s.baseDir),
			zap.Error(err))
		return "", "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write receipt file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Receipt saved",
		zap.String("key", key),
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return key, fmt.Sprintf("%s/receipts/%s", s.publicBaseURL, storedName), nil
}

// validatePath checks that the path is safe and within baseDir.
func (s *ReceiptStorage) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}

func newKey() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
