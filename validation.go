package logex

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

// validateSettings checks a merged LoggerSettings record before it is handed
// to the dispatch adapter. Merging fills every field, so a failure here means
// the config file carried an out-of-vocabulary value.
func validateSettings(settings LoggerSettings) error {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(settings); err != nil {
		return WrapError(err, "config", errMsgConfigInvalid)
	}

	return nil
}
