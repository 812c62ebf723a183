package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger for the given environment and
// installs it via zap.ReplaceGlobals.
func Init(environment string) error {
	var conf zap.Config
	switch environment {
	case "production":
		conf = zap.NewProductionConfig()
	default:
		conf = zap.NewDevelopmentConfig()
	}

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
