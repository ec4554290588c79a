package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process-wide logger. Verbose enables debug level and
// human-readable output; otherwise JSON at info level.
func New(verbose bool) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
