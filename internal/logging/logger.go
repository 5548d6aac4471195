package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"shopify-price-sync/internal/config"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

type Logger struct {
	entry    *logrus.Entry
	notifier *TelegramNotifier
}

// NewLogger builds the run logger. Every line carries the run id; when
// telegram credentials are configured the same messages are also pushed to
// the configured chat.
func NewLogger(cfg config.TelegramBotConfig, runID string) LoggerService {
	base := logrus.New()
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{
		entry:    base.WithField("run_id", runID),
		notifier: NewTelegramNotifier(cfg, nil),
	}
}

func (l *Logger) Log(value string) {
	l.entry.Info(value)
	l.notify(iconInfo, "INFO", value)
}

func (l *Logger) LogError(value string, err error) {
	if err != nil {
		l.entry.WithError(err).Error(value)
		l.notify(iconError, "ERROR", fmt.Sprintf("%s: %v", value, err))
		return
	}
	l.entry.Error(value)
	l.notify(iconError, "ERROR", value)
}

func (l *Logger) LogWarning(value string) {
	l.entry.Warning(value)
	l.notify(iconWarning, "WARNING", value)
}

func (l *Logger) LogSuccess(value string) {
	l.entry.Info(value)
	l.notify(iconSuccess, "SUCCESS", value)
}

func (l *Logger) notify(icon, level, value string) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Send(formatMessage(icon, level, value)); err != nil {
		l.entry.WithError(err).Warning("telegram notification failed")
	}
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}
