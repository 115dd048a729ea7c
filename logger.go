package singleton

import (
	"github.com/hnhuaxi/singleton/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	fieldName    = "name"
	fieldType    = "type"
	fieldVariant = "variant"
	fieldAttempt = "attempt"
	fieldElapsed = "elapsed"
)

func (p *Provider[T, H]) fields(attempt int64) []zap.Field {
	return []zap.Field{
		zap.String(fieldName, p.opts.Name),
		zap.String(fieldType, utils.QualifiedName(p.typ)),
		zap.Stringer(fieldVariant, p.variant),
		zap.Int64(fieldAttempt, attempt),
	}
}

// logger returns the logger and success level in effect right now. Options
// that fail to resolve are reported on the logger that could be found.
func (p *Provider[T, H]) logger() (*zap.Logger, zapcore.Level) {
	opts, err := p.opts.resolve()

	lvl, lvlErr := parseLevel(opts.Level)
	if lvlErr != nil {
		lvl = zapcore.DebugLevel
	}

	if err = multierr.Append(err, lvlErr); err != nil {
		opts.Logger.Warn("singleton options ignored", zap.String(fieldName, p.opts.Name), zap.Error(err))
	}
	return opts.Logger, lvl
}

func (p *Provider[T, H]) logInitialized(r run) {
	logger, lvl := p.logger()
	if ce := logger.Check(lvl, "singleton initialized"); ce != nil {
		ce.Write(append(p.fields(r.attempt), zap.Duration(fieldElapsed, r.elapsed))...)
	}
}

func (p *Provider[T, H]) logFailed(r run, err error) {
	logger, _ := p.logger()
	logger.Warn("singleton initialization failed", append(p.fields(r.attempt), zap.Duration(fieldElapsed, r.elapsed), zap.Error(err))...)
}

func (p *Provider[T, H]) logPoisoned(err error) {
	logger, _ := p.logger()
	logger.Error("singleton is poisoned", append(p.fields(p.guard.attempts.Load()), zap.Error(err))...)
}
