package handlers

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/imamik/eksstack/internal/config"
	"github.com/imamik/eksstack/internal/platform/s3"
)

const testAdminARN = "arn:aws:iam::123456789012:user/alice"

// testEnv captures handler output and the files handlers write.
type testEnv struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	files  map[string][]byte
	cfg    *config.Config
}

// setupHandlerTest swaps the handler factories for in-memory fakes and
// restores them when the test ends. Tests using it must not run in parallel.
func setupHandlerTest(t *testing.T) *testEnv {
	t.Helper()

	origStdout, origStderr := stdout, stderr
	origFind, origLoad := findConfigFile, loadConfig
	origWrite, origRead := writeFile, readFile
	origColor := colorEnabled
	origStore := newObjectStore
	t.Cleanup(func() {
		stdout, stderr = origStdout, origStderr
		findConfigFile, loadConfig = origFind, origLoad
		writeFile, readFile = origWrite, origRead
		colorEnabled = origColor
		newObjectStore = origStore
	})

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		files:  map[string][]byte{},
		cfg:    config.Default(),
	}
	env.cfg.AdminIdentityARN = testAdminARN

	stdout, stderr = env.stdout, env.stderr
	colorEnabled = func() bool { return false }
	findConfigFile = func() (string, error) { return "eksstack.yaml", nil }
	loadConfig = func(string) (*config.Config, error) { return env.cfg, nil }
	writeFile = func(name string, data []byte, _ os.FileMode) error {
		env.files[name] = append([]byte(nil), data...)
		return nil
	}
	readFile = func(name string) ([]byte, error) {
		data, ok := env.files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return data, nil
	}
	return env
}

// reset clears captured output between handler calls.
func (e *testEnv) reset() {
	e.stdout.Reset()
	e.stderr.Reset()
}

// memoryStore is an in-memory s3.ObjectStore.
type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (m *memoryStore) EnsureBucket(_ context.Context, bucket string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[bucket] = true
	return nil
}

func (m *memoryStore) PutObject(_ context.Context, bucket, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, s3.ErrNotFound
	}
	return data, nil
}

// useStore routes publishing to store and records the options it was opened with.
func useStore(store *memoryStore, opened *s3.Options) {
	newObjectStore = func(_ context.Context, opts s3.Options) (s3.ObjectStore, error) {
		if opened != nil {
			*opened = opts
		}
		return store, nil
	}
}
