package memstore

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Files FileStore en memoria.
type Files struct {
	mu   sync.Mutex
	seq  int
	Data map[string][]byte
	Fail error
}

func NewFiles() *Files {
	return &Files{Data: make(map[string][]byte)}
}

func (f *Files) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if f.Fail != nil {
		return "", f.Fail
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url := "/static/uploads/" + name
	f.Data[url] = b
	return url, nil
}

func (f *Files) Remove(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Data, url)
	return nil
}

func (f *Files) UniqueName(original string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%d_%s", f.seq, original)
}

func (f *Files) Has(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Data[url]
	return ok
}
