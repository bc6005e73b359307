package logging

import "go.uber.org/zap"

// New builds the process logger: JSON at info level normally, console at
// debug level when debug is set.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
