package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentstation/apitemplate/pkg/constants"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLoggerFromConfig builds a logger writing to every enabled sink. Relative
// file paths are resolved against baseDir. The returned closer releases the
// file sink. The global level is lowered to the most verbose configured
// level so that category overrides below the default still emit.
func NewLoggerFromConfig(cfg *Config, baseDir string) (zerolog.Logger, io.Closer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	levels, err := cfg.Levels()
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)

	if cfg.Console.Enabled {
		writers = append(writers, consoleWriter(cfg.Console))
	}

	if cfg.File.Enabled {
		file, err := NewDailyFile(ResolvePath(cfg.File.Path, baseDir))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		writers = append(writers, fileWriter(file, cfg.File.Format))
		closer = file
	}

	var writer io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	zerolog.SetGlobalLevel(levels.Min())

	logger := zerolog.New(writer).
		Level(levels.Default).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		ctx := logger.With()
		for k, v := range cfg.Fields {
			ctx = addField(ctx, k, v)
		}
		logger = ctx.Logger()
	}

	return logger, closer, nil
}

// Setup builds the process logger and installs it as the default.
func Setup(cfg *Config, baseDir string) (zerolog.Logger, io.Closer, error) {
	logger, closer, err := NewLoggerFromConfig(cfg, baseDir)
	if err != nil {
		return logger, closer, err
	}
	SetDefault(logger)
	return logger, closer, nil
}

// ResolvePath returns path made absolute against baseDir. An empty path
// means the default log file name.
func ResolvePath(path, baseDir string) string {
	if path == "" {
		path = constants.LogFileName
	}
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ExecutableDir returns the directory holding the running binary, falling
// back to the working directory when it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
