package reader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/metadata"
	"github.com/matzehuels/rocrate/pkg/value"
)

// MetadataSource returns the parsed metadata document of a package.
type MetadataSource interface {
	ReadMetadata(ctx context.Context, location string) (*value.Value, error)
}

// ContentSource returns the directory holding a package's content.
type ContentSource interface {
	ReadContent(ctx context.Context, location string) (string, error)
}

// Strategy is a source of both metadata and content.
type Strategy interface {
	MetadataSource
	ContentSource
}

// FolderStrategy reads packages laid out as a plain directory.
type FolderStrategy struct {
	Codec value.Codec
}

// NewFolderStrategy returns a folder strategy with the default codec.
func NewFolderStrategy() *FolderStrategy {
	return &FolderStrategy{}
}

// ReadMetadata decodes location/ro-crate-metadata.json.
func (s *FolderStrategy) ReadMetadata(_ context.Context, location string) (*value.Value, error) {
	return readMetadataFile(filepath.Join(location, metadata.FileName), s.Codec)
}

// ReadContent returns location itself after checking it is a directory.
func (s *FolderStrategy) ReadContent(_ context.Context, location string) (string, error) {
	info, err := os.Stat(location)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "stat %s", location)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeIO, "%s is not a directory", location)
	}
	return location, nil
}

func readMetadataFile(path string, codec value.Codec) (*value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	v, err := codec.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStructural, err, "parse %s", path)
	}
	return v, nil
}
