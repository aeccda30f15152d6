package logger

import (
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

var loggerCache = make(map[string]*logrus.Logger)
var mutex = new(sync.Mutex)

// Configure sets level and formatter of the standard logger. Named loggers
// created afterwards inherit both, so call it before building components.
func Configure(level string, json bool) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	mutex.Lock()
	defer mutex.Unlock()

	logrus.SetLevel(parsed)
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	for _, logger := range loggerCache {
		logger.SetLevel(parsed)
		if named, ok := logger.Formatter.(namedLogger); ok {
			named.formatter = logrus.StandardLogger().Formatter
			logger.SetFormatter(named)
		}
	}

	return nil
}

func Logger(target any) *logrus.Logger {
	mutex.Lock()
	defer mutex.Unlock()

	typeName := handlerName(target)
	if logger, ok := loggerCache[typeName]; ok {
		return logger
	}

	logger := logrus.New()
	logger.SetLevel(logrus.StandardLogger().Level)
	logger.SetOutput(logrus.StandardLogger().Out)
	logger.SetFormatter(namedLogger{
		name:      typeName,
		formatter: logrus.StandardLogger().Formatter,
	})
	loggerCache[typeName] = logger

	return logger
}

func handlerName(handler any) string {
	if name, ok := handler.(string); ok {
		return name
	}

	var name string
	t := reflect.TypeOf(handler)
	if t.Kind() == reflect.Ptr {
		name = t.Elem().Name()
	} else {
		name = t.Name()
	}

	return name
}

type namedLogger struct {
	name      string
	formatter logrus.Formatter
}

func (d namedLogger) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Data["name"] = d.name
	return d.formatter.Format(entry)
}
