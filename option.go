package singleton

import (
	"reflect"
	"sync"

	"github.com/creasty/defaults"
	"github.com/hnhuaxi/singleton/utils"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	// Name identifies the singleton in logs and in Declarations. Defaults to
	// the snake_case type name.
	Name string
	// Level is the zap level used to report a successful initialization.
	Level string `default:"debug"`
	// Poison keeps the first initialization failure and replays it on every
	// later call instead of retrying.
	Poison bool
	Logger *zap.Logger `default:"-"`
}

type Option func(opt *Options)

func WithName(name string) Option {
	return func(opt *Options) {
		opt.Name = name
	}
}

// WithLevel sets the level of the "singleton initialized" entry. Levels above
// ErrorLevel would make the logger panic or exit, so New rejects them.
func WithLevel(level zapcore.Level) Option {
	return func(opt *Options) {
		opt.Level = level.String()
	}
}

func WithPoison() Option {
	return func(opt *Options) {
		opt.Poison = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(opt *Options) {
		opt.Logger = logger
	}
}

var (
	defaultsMu      sync.RWMutex
	processDefaults Options
	nopLogger       = zap.NewNop()
)

// SetDefaults installs process-wide option defaults. Options passed to a
// provider win over them. Logger and Level are looked up whenever a provider
// logs, so defaults set in main reach package-level singletons too; Poison is
// read when a provider is created. A Level outside debug..error is rejected
// with ErrInvalidLevel and the previous defaults stay in place.
func SetDefaults(opts Options) error {
	if opts.Level != "" {
		if _, err := parseLevel(opts.Level); err != nil {
			return err
		}
	}

	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	processDefaults = opts
	return nil
}

func currentDefaults() Options {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()

	base := processDefaults
	// Name is per-type and never inherited.
	base.Name = ""
	return base
}

func buildOptions(typ reflect.Type, ops []Option) Options {
	var opts Options
	for _, op := range ops {
		op(&opts)
	}

	if opts.Name == "" {
		opts.Name = utils.DefaultName(typ)
	}

	if opts.Level != "" {
		if _, err := parseLevel(opts.Level); err != nil {
			panic(errors.WithMessagef(err, "singleton %s", opts.Name))
		}
	}

	if currentDefaults().Poison {
		opts.Poison = true
	}

	return opts
}

// resolve fills what the provider left unset from the process defaults and
// the struct tags. The returned options always carry a logger.
func (opts Options) resolve() (Options, error) {
	err := multierr.Combine(
		errors.Wrap(mergo.Merge(&opts, currentDefaults()), "merge default options"),
		errors.Wrap(defaults.Set(&opts), "set default options"),
	)

	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	return opts, err
}

func parseLevel(text string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(text)); err != nil {
		return lvl, errors.Wrapf(ErrInvalidLevel, "%q", text)
	}

	if lvl > zapcore.ErrorLevel {
		return lvl, errors.Wrapf(ErrInvalidLevel, "%q", text)
	}
	return lvl, nil
}
