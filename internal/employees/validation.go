package employees

import (
	"fmt"
	"strings"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

func (s *Service) validate(e Employee) error {
	if strings.TrimSpace(e.FullName) == "" {
		return fmt.Errorf("%w: employee full name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(e.BadgeID) == "" {
		return fmt.Errorf("%w: employee badge id is required", httpx.ErrValidation)
	}
	if e.DepartmentID != nil && *e.DepartmentID <= 0 {
		return fmt.Errorf("%w: invalid department reference", httpx.ErrValidation)
	}
	return nil
}
