package model

import (
	"github.com/sirupsen/logrus"

	"betterrest/internal/bedtime"
)

// FileSource loads the model from Path on every Open, so edits to the
// artifact are picked up without a restart.
type FileSource struct {
	Path string
}

// Open implements bedtime.Source.
func (s FileSource) Open() (bedtime.Backend, error) {
	r, err := Load(s.Path)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"path":    s.Path,
		"model":   r.Name,
		"version": r.Version,
	}).Debugln("model: loaded")
	return r, nil
}

// EmbeddedSource serves the model compiled into the binary.
type EmbeddedSource struct{}

// Open implements bedtime.Source.
func (EmbeddedSource) Open() (bedtime.Backend, error) {
	return Default()
}

// NewSource picks FileSource when path is set, otherwise EmbeddedSource.
func NewSource(path string) bedtime.Source {
	if path == "" {
		return EmbeddedSource{}
	}
	return FileSource{Path: path}
}
