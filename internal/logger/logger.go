package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Production mode emits JSON; development
// mode emits console output with stack traces on warnings.
func New(isProduction bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if isProduction {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
