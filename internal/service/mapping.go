package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func toResponse[R any](m any) (*R, error) {
	var resp R
	if err := copier.Copy(&resp, m); err != nil {
		log.Error().Err(err).Msg("Failed to copy model to response DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

// toResponses maps every model; a nil input yields an empty, non-nil slice.
func toResponses[R any, M any](models []M) ([]R, error) {
	resp := make([]R, 0, len(models))
	for i := range models {
		r, err := toResponse[R](&models[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

func notFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return err
}

func invalidSelection(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", apperrors.Attribute(field))
}
