package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

var (
	lock       sync.RWMutex
	stdLogger  log.Logger
	fileLogger log.Logger
	logFile    *os.File
	allow      = level.AllowInfo()
)

func init() {
	initStdLogger()
}

// default std logger is enabled
func EnableStdLogger(enable bool) {
	lock.Lock()
	defer lock.Unlock()

	if enable && stdLogger == nil {
		initStdLogger()
	}
	if !enable {
		stdLogger = nil
	}
}

// default file logger is disabled
func EnableFileLogger(enable bool, savePath string) error {
	lock.Lock()
	defer lock.Unlock()

	closeFile()
	if !enable {
		return nil
	}
	return initFileLogger(savePath)
}

func EnableOnlyFileLogger(enable bool, savePath string) error {
	if err := EnableFileLogger(enable, savePath); err != nil {
		return err
	}
	EnableStdLogger(!enable)
	return nil
}

// SetLevel filters out everything below lvl: one of debug, info, warn, error.
func SetLevel(lvl string) error {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "", "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return fmt.Errorf("unknown log level: %s", lvl)
	}

	lock.Lock()
	defer lock.Unlock()
	allow = opt
	return nil
}

func Debug(keyvals ...interface{}) {
	emit(level.Debug, keyvals)
}

func Info(keyvals ...interface{}) {
	emit(level.Info, keyvals)
}

func Warn(keyvals ...interface{}) {
	emit(level.Warn, keyvals)
}

func Error(keyvals ...interface{}) {
	emit(level.Error, keyvals)
}

// With returns a logger writing to the enabled sinks with the component
// key attached, for collaborators that take a go-kit log.Logger.
func With(component string) log.Logger {
	return log.With(log.LoggerFunc(func(keyvals ...interface{}) error {
		for _, l := range sinks() {
			if err := l.Log(keyvals...); err != nil {
				return err
			}
		}
		return nil
	}), "component", component)
}

func emit(lvl func(log.Logger) log.Logger, keyvals []interface{}) {
	for _, l := range sinks() {
		lvl(l).Log(keyvals...)
	}
}

func sinks() []log.Logger {
	lock.RLock()
	defer lock.RUnlock()

	result := make([]log.Logger, 0, 2)
	if stdLogger != nil {
		result = append(result, level.NewFilter(stdLogger, allow))
	}
	if fileLogger != nil {
		result = append(result, level.NewFilter(fileLogger, allow))
	}
	return result
}

func initStdLogger() {
	stdLogger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	stdLogger = log.With(stdLogger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(5))
}

func initFileLogger(savePath string) error {
	if err := os.MkdirAll(filepath.Dir(savePath), 0777); err != nil {
		return err
	}

	file, err := os.OpenFile(savePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		fileLogger = nil
		return err
	}
	logFile = file
	fileLogger = log.NewLogfmtLogger(log.NewSyncWriter(io.Writer(file)))
	fileLogger = log.With(fileLogger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(5))
	return nil
}

func closeFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	fileLogger = nil
}
