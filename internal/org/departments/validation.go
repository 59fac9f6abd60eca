package departments

import (
	"fmt"
	"strings"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

func (s *Service) validate(d Department) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: department name is required", httpx.ErrValidation)
	}
	if d.SecretariatID != nil && *d.SecretariatID <= 0 {
		return fmt.Errorf("%w: invalid secretariat reference", httpx.ErrValidation)
	}
	return nil
}
