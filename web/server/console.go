package server

import (
	"fmt"
	"log"
	"strings"
)

// WebLogger implements core.Logger by writing render progress to the server log,
// tagged with the render it belongs to
type WebLogger struct {
	renderID string
	logger   *log.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, logger *log.Logger) *WebLogger {
	return &WebLogger{renderID: renderID, logger: logger}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if message == "" {
		return
	}
	wl.logger.Printf("[%s] %s", wl.renderID, message)
}
