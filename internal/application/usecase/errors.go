package usecase

import (
	"errors"

	"github.com/jhoicas/relojeria-admin/internal/domain"
)

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
