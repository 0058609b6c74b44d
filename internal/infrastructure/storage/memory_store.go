package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/Brewlog-api/internal/application/ports"
	"github.com/jhoicas/Brewlog-api/internal/domain"
)

var _ ports.AttachmentStore = (*MemoryStore)(nil)

const memoryScheme = "memory://"

// MemoryStore almacén de adjuntos en memoria (desarrollo sin bucket y tests).
type MemoryStore struct {
	mu         sync.Mutex
	objects    map[string]ports.Attachment
	maxBytes   int64
	failUpload error
	failDelete error
}

// NewMemoryStore construye el almacén vacío.
func NewMemoryStore(maxBytes int64) *MemoryStore {
	return &MemoryStore{objects: make(map[string]ports.Attachment), maxBytes: maxBytes}
}

// FailUploads hace que las subidas devuelvan err (nil restablece).
func (m *MemoryStore) FailUploads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failUpload = err
}

// FailDeletes hace que los borrados devuelvan err (nil restablece).
func (m *MemoryStore) FailDeletes(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDelete = err
}

func (m *MemoryStore) Upload(ctx context.Context, folder, userID string, a ports.Attachment) (string, error) {
	if err := checkAttachment(a, m.maxBytes); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpload != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, m.failUpload)
	}
	url := memoryScheme + objectKey(folder, userID, a)
	m.objects[url] = a
	return url, nil
}

func (m *MemoryStore) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, memoryScheme) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, m.failDelete)
	}
	delete(m.objects, url)
	return nil
}

// Has indica si url sigue almacenada.
func (m *MemoryStore) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}

// Len número de objetos almacenados.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
