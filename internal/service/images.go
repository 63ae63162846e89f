package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/filename"
	"github.com/lshigami/redaction/internal/storage"
	"github.com/lshigami/redaction/internal/upload"
	"github.com/rs/zerolog/log"
)

const filenameAttempts = 5

// ImageStore writes and removes task images in the public tasks namespace.
type ImageStore struct {
	files    storage.FileStore
	names    filename.Generator
	maxBytes int64
}

func NewImageStore(files storage.FileStore, names filename.Generator, maxBytes int64) *ImageStore {
	return &ImageStore{files: files, names: names, maxBytes: maxBytes}
}

// Validate sniffs the upload and returns its MIME type, "" for a nil header.
func (s *ImageStore) Validate(field string, fh *multipart.FileHeader) (string, error) {
	return upload.ValidateImage(field, fh, s.maxBytes)
}

// Store writes the upload under a fresh unique name and returns that name.
func (s *ImageStore) Store(ctx context.Context, fh *multipart.FileHeader, contentType string) (string, error) {
	name, err := s.uniqueName(ctx, fh.Filename)
	if err != nil {
		return "", err
	}
	path := storage.Path(storage.TasksNamespace, name)

	f, err := fh.Open()
	if err != nil {
		return "", apperrors.NewStorageError("open", fh.Filename, err)
	}
	defer f.Close()

	if err := s.files.Put(ctx, storage.TasksNamespace, name, f, contentType); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write task image")
		return "", apperrors.NewStorageError("put", path, err)
	}
	log.Debug().Str("path", path).Int64("size", fh.Size).Msg("Task image stored")
	return name, nil
}

// Remove deletes the named image if the store holds it. An empty name is a no-op.
func (s *ImageStore) Remove(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	path := storage.Path(storage.TasksNamespace, name)

	ok, err := s.files.Exists(ctx, path)
	if err != nil {
		return apperrors.NewStorageError("exists", path, err)
	}
	if !ok {
		return nil
	}
	if err := s.files.Delete(ctx, path); err != nil {
		return apperrors.NewStorageError("delete", path, err)
	}
	log.Info().Str("path", path).Msg("Task image deleted")
	return nil
}

// RemoveAll deletes every named image, logging failures instead of returning them.
func (s *ImageStore) RemoveAll(ctx context.Context, names ...string) {
	for _, name := range names {
		if err := s.Remove(ctx, name); err != nil {
			log.Error().Err(err).Str("image", name).Msg("Failed to remove task image")
		}
	}
}

func (s *ImageStore) uniqueName(ctx context.Context, original string) (string, error) {
	for attempt := 0; attempt < filenameAttempts; attempt++ {
		name, err := s.names.Generate(original)
		if err != nil {
			return "", apperrors.NewStorageError("name", original, err)
		}
		path := storage.Path(storage.TasksNamespace, name)
		taken, err := s.files.Exists(ctx, path)
		if err != nil {
			return "", apperrors.NewStorageError("exists", path, err)
		}
		if !taken {
			return name, nil
		}
		log.Warn().Str("path", path).Int("attempt", attempt+1).Msg("Generated filename already in use")
	}
	return "", apperrors.NewStorageError("name", original,
		fmt.Errorf("no unused filename after %d attempts", filenameAttempts))
}

// mergeValidation folds a ValidationError from err into verr and returns any
// other error unchanged.
func mergeValidation(verr *apperrors.ValidationError, err error) error {
	if err == nil {
		return nil
	}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		for field, msg := range ve.Fields {
			verr.Add(field, msg)
		}
		return nil
	}
	return err
}
