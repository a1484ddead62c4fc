package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"welfared/internal/models"
	"welfared/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks the struct-tag rules and the window definitions.
// Overlapping windows are allowed (first match wins at runtime), but a
// window whose bounds don't parse or are inverted is an operator typo.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	for _, w := range cv.conf.TimeWindows {
		start, err := models.ParseClock(w.Start)
		if err != nil {
			return fmt.Errorf("time window %q: %w", w.Name, err)
		}
		end, err := models.ParseClock(w.End)
		if err != nil {
			return fmt.Errorf("time window %q: %w", w.Name, err)
		}
		if start > end {
			return fmt.Errorf("time window %q: start %s is after end %s", w.Name, w.Start, w.End)
		}
	}

	return nil
}
