package services

import "go.uber.org/zap"

var _ Logger = ZapLogger{}

// ZapLogger is a Logger writing through zap.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger. A nil logger discards everything.
func NewZapLogger(logger *zap.Logger) ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ZapLogger{logger: logger}
}

func (l ZapLogger) Info(message string) {
	l.logger.Info(message)
}

func (l ZapLogger) Error(message string) {
	l.logger.Error(message)
}
