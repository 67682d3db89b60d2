package blob

import (
	"bytes"
	"context"
	"sync"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	data := []byte{1, 2, 3}
	url, err := s.Put(context.Background(), "diagnostics/U1/1.png", "image/png", bytes.NewReader(data), 3)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "mem://diagnostics/U1/1.png" {
		t.Fatalf("url = %s", url)
	}
	if s.ContentType("diagnostics/U1/1.png") != "image/png" {
		t.Fatalf("content type not recorded")
	}

	var buf bytes.Buffer
	if err := s.Get(context.Background(), "diagnostics/U1/1.png", &buf); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	s := NewMemoryStore()
	var buf bytes.Buffer
	if err := s.Get(context.Background(), "nope", &buf); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n byte) {
			defer wg.Done()
			_, _ = s.Put(context.Background(), string(rune('a'+n)), "image/jpeg", bytes.NewReader([]byte{n}), 1)
		}(byte(i))
	}
	wg.Wait()
	if s.Len() != 16 {
		t.Fatalf("Len = %d, want 16", s.Len())
	}
}
