package blob

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Memory keeps blobs in process memory. It is used by tests.
type Memory struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	publicURL string
}

// NewMemory returns an empty in-memory store.
func NewMemory(publicURL string) *Memory {
	if publicURL == "" {
		publicURL = "/uploads"
	}
	return &Memory{objects: make(map[string][]byte), publicURL: publicURL}
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) URL(key string) string { return joinURL(m.publicURL, key) }

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	k, err := cleanKey(key)
	if err != nil {
		return Info{}, err
	}
	var buf bytes.Buffer
	size, err := io.Copy(&buf, r)
	if err != nil {
		return Info{}, err
	}

	m.mu.Lock()
	m.objects[k] = buf.Bytes()
	m.mu.Unlock()

	return Info{Key: k, Size: size, ContentType: opts.ContentType, URL: m.URL(k)}, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.objects, k)
	m.mu.Unlock()
	return nil
}

// Bytes returns the content stored under key.
func (m *Memory) Bytes(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	return b, ok
}

// Len returns the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
