package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/service/catalog"
)

const customDoc = `{"pages": [{"name": "custom", "questions": [
  {"key": "CUSTOM1", "text": "Custom question", "options": [
    {"ordinal": 1, "text": "Yes", "rating": "GREEN"},
    {"ordinal": 2, "text": "No", "rating": "RED"}
  ]}
]}]}`

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("bundled base only", func(t *testing.T) {
		c := catalog.NewLoader().Load(ctx)
		gt.Value(t, c.Keys()).Equal(catalog.Default().Keys())
	})

	t.Run("with custom questions", func(t *testing.T) {
		c := catalog.NewLoader(catalog.WithCustom(catalog.Bytes{Name: "test", Data: []byte(customDoc)})).Load(ctx)
		gt.Bool(t, c.Has("CUSTOM1")).True()
		gt.Number(t, c.Len()).Equal(catalog.Default().Len() + 1)
	})

	t.Run("broken base falls back to default", func(t *testing.T) {
		c := catalog.NewLoader(catalog.WithBase(catalog.Bytes{Name: "broken", Data: []byte("{")})).Load(ctx)
		gt.Bool(t, c == catalog.Default()).True()
	})

	t.Run("unreadable schema falls back to default", func(t *testing.T) {
		c := catalog.NewLoader(catalog.WithSchema(catalog.File(filepath.Join(t.TempDir(), "missing.json")))).Load(ctx)
		gt.Bool(t, c == catalog.Default()).True()
	})

	t.Run("unreadable custom file is ignored", func(t *testing.T) {
		c := catalog.NewLoader(catalog.WithCustom(catalog.File(filepath.Join(t.TempDir(), "missing.json")))).Load(ctx)
		gt.Value(t, c.Keys()).Equal(catalog.Default().Keys())
	})
}

func TestHolder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "custom.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"pages": []}`), 0o600)).Required()

	h := catalog.NewHolder(ctx, catalog.NewLoader(catalog.WithCustom(catalog.File(path))))
	before := h.Get()
	gt.Bool(t, before.Has("CUSTOM1")).False()

	gt.NoError(t, os.WriteFile(path, []byte(customDoc), 0o600)).Required()
	h.Reload(ctx)

	gt.Bool(t, h.Get().Has("CUSTOM1")).True()
	// previously published catalog is untouched
	gt.Bool(t, before.Has("CUSTOM1")).False()
}

func TestHolder_ConcurrentReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base := catalog.Default()
	h := catalog.NewHolder(ctx, catalog.NewLoader(catalog.WithCustom(catalog.Bytes{Name: "test", Data: []byte(customDoc)})))

	var writers sync.WaitGroup
	writers.Add(2)
	go func() {
		defer writers.Done()
		for i := 0; i < 50; i++ {
			h.Reload(ctx)
		}
	}()
	go func() {
		defer writers.Done()
		for i := 0; i < 50; i++ {
			h.Store(base)
		}
	}()

	var readers sync.WaitGroup
	failures := make(chan string, 8)
	for i := 0; i < 8; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for j := 0; j < 500; j++ {
				c := h.Get()
				if c == nil {
					failures <- "nil catalog"
					return
				}
				keys := c.Keys()
				if len(keys) != c.Len() {
					failures <- "key index does not match question count"
					return
				}
				if c.Has("CUSTOM1") != (c.Len() == base.Len()+1) {
					failures <- "custom question and question count disagree"
					return
				}
				for _, key := range keys {
					if _, _, ok := c.Lookup(key); !ok {
						failures <- "listed key cannot be looked up: " + key
						return
					}
				}
			}
		}()
	}

	writers.Wait()
	readers.Wait()
	close(failures)
	for msg := range failures {
		t.Error(msg)
	}

	final := h.Get()
	gt.Value(t, final).NotNil()
	gt.Bool(t, final == base || final.Has("CUSTOM1")).True()
}

func TestStaticHolder(t *testing.T) {
	h := catalog.NewStaticHolder(catalog.Default())
	h.Reload(context.Background())
	gt.Bool(t, h.Get() == catalog.Default()).True()
}

func TestNewGCSObject(t *testing.T) {
	obj, err := catalog.NewGCSObject(nil, "gs://bucket/path/to/custom.json")
	gt.NoError(t, err).Required()
	gt.String(t, obj.String()).Equal("gs://bucket/path/to/custom.json")

	for _, loc := range []string{"gs://bucket", "gs:///object", "s3://bucket/object", "bucket/object"} {
		_, err := catalog.NewGCSObject(nil, loc)
		gt.Error(t, err).Is(catalog.ErrInvalidLocation)
	}

	gt.Bool(t, catalog.IsGCS("gs://b/o")).True()
	gt.Bool(t, catalog.IsGCS("/etc/custom.json")).False()
}

func TestWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "custom.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"pages": []}`), 0o600)).Required()

	h := catalog.NewHolder(ctx, catalog.NewLoader(catalog.WithCustom(catalog.File(path))))
	w, err := catalog.NewWatcher(path, h)
	gt.NoError(t, err).Required()
	w.Start(ctx)
	defer w.Stop()

	gt.NoError(t, os.WriteFile(path, []byte(customDoc), 0o600)).Required()

	deadline := time.Now().Add(5 * time.Second)
	for !h.Get().Has("CUSTOM1") && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	gt.Bool(t, h.Get().Has("CUSTOM1")).True()
}
