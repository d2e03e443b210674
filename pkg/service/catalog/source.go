package catalog

import (
	"context"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/utils/safe"
)

// Source supplies one catalog document
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	String() string
}

// Bytes is a Source backed by an in-memory document
type Bytes struct {
	Name string
	Data []byte
}

func (b Bytes) Read(ctx context.Context) ([]byte, error) { return b.Data, nil }
func (b Bytes) String() string                           { return b.Name }

// File is a Source reading a local file
type File string

func (f File) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(LocationKey, string(f)))
	}
	return data, nil
}

func (f File) String() string { return string(f) }

// GCSObject is a Source reading an object from Cloud Storage
type GCSObject struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSObject creates a Source for gs://bucket/object
func NewGCSObject(client *storage.Client, location string) (*GCSObject, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(location, gcsScheme), "/")
	if !strings.HasPrefix(location, gcsScheme) || !ok || bucket == "" || object == "" {
		return nil, goerr.Wrap(ErrInvalidLocation, "expected gs://bucket/object",
			goerr.V(LocationKey, location))
	}
	return &GCSObject{client: client, bucket: bucket, object: object}, nil
}

func (g *GCSObject) Read(ctx context.Context) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(g.object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open catalog object", goerr.V(LocationKey, g.String()))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog object", goerr.V(LocationKey, g.String()))
	}
	return data, nil
}

func (g *GCSObject) String() string { return gcsScheme + g.bucket + "/" + g.object }

const gcsScheme = "gs://"

// IsGCS reports whether location points to Cloud Storage
func IsGCS(location string) bool {
	return strings.HasPrefix(location, gcsScheme)
}
