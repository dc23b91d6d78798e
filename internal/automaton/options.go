package automaton

import "github.com/sirupsen/logrus"

type options struct {
	logger logrus.FieldLogger
}

// Option configures Determinize and the minimizers.
type Option func(*options)

// WithLogger routes the traces of one call to l instead of the package logger.
func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.logger = l } }

func newOptions(opts []Option) *options {
	o := &options{logger: fLogger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// debugEnabled reports whether l would print debug entries. Loggers of
// unknown type are assumed to.
func debugEnabled(l logrus.FieldLogger) bool {
	switch l := l.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return true
}
