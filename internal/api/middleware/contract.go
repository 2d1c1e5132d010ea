package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPRecorder приемник метрик HTTP запросов (*metrics.Metrics)
type HTTPRecorder interface {
	ObserveHTTP(method, route, status string, duration time.Duration)
}
