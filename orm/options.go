package orm

import (
	"io"
	"io/fs"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type options struct {
	schema         string
	trace          bool
	commandTimeout time.Duration
	models         []any
	migrations     fs.FS
	migrationsDir  string
	configure      []func(*gorm.Config)
	log            zerolog.Logger
	promptIn       io.Reader
	promptOut      io.Writer
}

type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		commandTimeout: DefaultCommandTimeout,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSchema sets the default schema for tables and the migration history.
func WithSchema(schema string) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// WithTrace logs every statement through the context logger.
func WithTrace(enabled bool) Option {
	return func(o *options) {
		o.trace = enabled
	}
}

// WithCommandTimeout bounds each statement. Zero or negative disables it.
func WithCommandTimeout(d time.Duration) Option {
	return func(o *options) {
		o.commandTimeout = d
	}
}

// WithModels registers models created by Migrate.
func WithModels(models ...any) Option {
	return func(o *options) {
		o.models = append(o.models, models...)
	}
}

// WithMigrations registers goose migrations found in dir of fsys.
func WithMigrations(fsys fs.FS, dir string) Option {
	return func(o *options) {
		o.migrations = fsys
		o.migrationsDir = dir
	}
}

// WithConfigure adjusts the gorm configuration before the context opens.
func WithConfigure(f func(*gorm.Config)) Option {
	return func(o *options) {
		o.configure = append(o.configure, f)
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithConnectionPrompt asks for the connection string on out and reads it
// from in when none is given. Meant for design-time tools.
func WithConnectionPrompt(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.promptIn = in
		o.promptOut = out
	}
}
