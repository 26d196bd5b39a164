package logger

import (
	"io"                                 // Writer fan-out
	"os"                                 // Stdout
	"path/filepath"                      // Log file paths
	"reservation_system/internal/config" // Custom package for configuration

	"github.com/sirupsen/logrus"       // Logrus for structured logging
	"gopkg.in/natefinch/lumberjack.v2" // Rotating log files
)

// Rotation settings shared by every log file
const (
	maxSizeMB  = 50 // Rotate after 50 MB
	maxAgeDays = 14 // Keep rotated files for 14 days
)

// Loggers bundles the operational log and the audit log for authentication events
type Loggers struct {
	App   *logrus.Logger // General operational log
	Audit *logrus.Logger // Authentication failures only
}

// New builds both loggers from configuration
func New(cfg *config.Config) *Loggers {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel // Fall back on unknown levels
	}

	app := logrus.New()
	app.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	app.SetLevel(level)
	app.SetOutput(io.MultiWriter(os.Stdout, rotating(cfg.LogDir, "info.log")))

	audit := logrus.New()
	audit.SetFormatter(&logrus.JSONFormatter{})
	audit.SetLevel(logrus.InfoLevel)
	audit.SetOutput(rotating(cfg.LogDir, "auth.log"))

	return &Loggers{App: app, Audit: audit}
}

// rotating returns a size and age bounded file writer under dir
func rotating(dir, name string) io.Writer {
	return &lumberjack.Logger{
		Filename: filepath.Join(dir, name), // File path
		MaxSize:  maxSizeMB,                // Megabytes before rotation
		MaxAge:   maxAgeDays,               // Days to retain old files
		Compress: true,                     // Gzip rotated files
	}
}
