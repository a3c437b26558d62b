package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/chairside/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	path string
)

// Config holds logger configuration. APIURL and Backend, when set, are
// stamped on every line so a log file can be matched to the server and
// session store it was written against.
type Config struct {
	Debug     bool
	ConfigDir string
	APIURL    string
	Backend   string
}

// Init points the global logger at a rotating file under ConfigDir/logs.
// In debug mode stderr gets a copy and the caller is reported.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}
	path = filepath.Join(logDir, constants.AppName+".log")

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var out io.Writer = rotating
	level := log.WarnLevel
	if cfg.Debug {
		out = io.MultiWriter(os.Stderr, rotating)
		level = log.DebugLevel
	}

	l := log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	var fields []interface{}
	if cfg.APIURL != "" {
		fields = append(fields, "api_url", cfg.APIURL)
	}
	if cfg.Backend != "" {
		fields = append(fields, "backend", cfg.Backend)
	}
	if len(fields) > 0 {
		l = l.With(fields...)
	}

	Logger = l
	return nil
}

// Path returns the log file written by Init, or "" before Init
func Path() string {
	return path
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
