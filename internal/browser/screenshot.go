package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ScreenshotDebugger captures failed pages for later inspection.
// A nil debugger is valid and does nothing.
type ScreenshotDebugger struct {
	outputDir string
	logger    *zap.Logger
	now       func() time.Time
}

// NewScreenshotDebugger returns nil when dir is empty (debugging disabled).
func NewScreenshotDebugger(dir string, logger *zap.Logger) *ScreenshotDebugger {
	if dir == "" {
		return nil
	}
	return &ScreenshotDebugger{
		outputDir: dir,
		logger:    logger,
		now:       time.Now,
	}
}

// CaptureAndLog saves a full-page screenshot named after name and returns its path.
// Pages whose driver cannot render images are skipped.
func (s *ScreenshotDebugger) CaptureAndLog(page Page, name, message string) (string, error) {
	if s == nil {
		return "", nil
	}
	shooter, ok := page.(Screenshotter)
	if !ok {
		s.logger.Debug("page driver does not support screenshots", zap.String("name", name))
		return "", nil
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	timestamp := s.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", unsafeNameChars.ReplaceAllString(name, "-"), timestamp)
	path := filepath.Join(s.outputDir, filename)
	s.logger.Info("📸 "+message, zap.String("path", path))

	if err := shooter.Screenshot(path); err != nil {
		s.logger.Warn("⚠️ Failed to capture screenshot", zap.Error(err))
		return "", err
	}
	return path, nil
}
