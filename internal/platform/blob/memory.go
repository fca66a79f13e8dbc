// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryScheme is the URL scheme of objects served by [Memory] by default.
const MemoryScheme = "memory"

// Memory is an in-process [Store] used in development and tests.
//
// It records every mutating call so callers can assert which storage side
// effects happened.
type Memory struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
	calls   []string

	// FailOn, when set, is consulted before each mutation. A non-nil result
	// aborts the operation with that error.
	FailOn func(op, key string) error
}

// NewMemory creates an empty memory store serving URLs under baseURL.
func NewMemory(baseURL string) *Memory {
	return &Memory{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]memoryObject),
	}
}

func (m *Memory) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "upload "+key)
	if err := m.fail("upload", key); err != nil {
		return "", err
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = memoryObject{data: stored, contentType: contentType}

	return PublicURL(m.baseURL, key), nil
}

func (m *Memory) Move(ctx context.Context, oldPrefix, newPrefix string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "move "+Join(oldPrefix)+" "+Join(newPrefix))
	if err := m.fail("move", oldPrefix); err != nil {
		return nil, err
	}

	source, target := folder(oldPrefix), folder(newPrefix)
	if source == "" || target == "" {
		return nil, errors.New("blob: move: empty prefix")
	}

	moved := make(map[string]string)
	for key, object := range m.objects {
		if !isDirectChild(key, source) {
			continue
		}
		newKey := target + strings.TrimPrefix(key, source)
		delete(m.objects, key)
		m.objects[newKey] = object
		moved[PublicURL(m.baseURL, key)] = PublicURL(m.baseURL, newKey)
	}

	return moved, nil
}

func (m *Memory) DeleteFolder(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "delete "+Join(prefix))
	if err := m.fail("delete", prefix); err != nil {
		return err
	}

	dir := folder(prefix)
	for key := range m.objects {
		if dir != "" && strings.HasPrefix(key, dir) {
			delete(m.objects, key)
		}
	}
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Keys returns the sorted keys below prefix, at any depth.
func (m *Memory) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := folder(prefix)
	keys := make([]string, 0)
	for key := range m.objects {
		if strings.HasPrefix(key, dir) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Get returns the object stored at key.
func (m *Memory) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	object, found := m.objects[key]
	return object.data, object.contentType, found
}

// Calls returns the recorded mutations in order, e.g. "upload Content/A/poster".
func (m *Memory) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.calls...)
}

// KeyOf returns the key behind a URL produced by this store.
func (m *Memory) KeyOf(rawURL string) (string, bool) {
	escaped, found := strings.CutPrefix(rawURL, m.baseURL+"/")
	if !found {
		return "", false
	}
	segments := strings.Split(escaped, "/")
	for i, segment := range segments {
		unescaped, err := unescapeSegment(segment)
		if err != nil {
			return "", false
		}
		segments[i] = unescaped
	}
	return strings.Join(segments, "/"), true
}

func (m *Memory) fail(op, key string) error {
	if m.FailOn == nil {
		return nil
	}
	return m.FailOn(op, key)
}
