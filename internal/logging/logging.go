package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"tournament-flow/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu sync.RWMutex
	writer   io.Writer = os.Stdout
	logFile  io.Closer
)

// Init configures the global zerolog logger. When cfg.File is set, output is
// teed to a size-limited file next to stdout.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	raw := io.Writer(os.Stdout)
	var fileErr error
	if cfg.File != "" {
		fw, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB)
		if err == nil {
			out = zerolog.MultiLevelWriter(out, fw)
			raw = io.MultiWriter(os.Stdout, fw)
			setFile(fw)
		} else {
			fileErr = err
		}
	}

	writerMu.Lock()
	writer = raw
	writerMu.Unlock()

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", cfg.File).Msg("log file unavailable; logging to stdout only")
	}
}

// Writer is the raw sink for components that bring their own encoder,
// such as the slog handler behind request logging.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return writer
}

// Close flushes and closes the log file opened by Init, if any.
func Close() error {
	writerMu.Lock()
	defer writerMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	writer = os.Stdout
	return err
}

func setFile(c io.Closer) {
	writerMu.Lock()
	defer writerMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = c
}
