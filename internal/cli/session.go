package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"restlab/internal/catalog"
	"restlab/internal/config"
	"restlab/internal/logging"
	"restlab/internal/progress"
	"restlab/internal/question"
	"restlab/internal/tally"
)

// session holds the resolved config and logger shared by one command run.
type session struct {
	cfg      config.Config
	path     string
	logger   *zap.Logger
	closeLog func() error
	stderr   io.Writer
}

// openSession resolves the config and builds the logger. With console set,
// log lines are mirrored to stderr. A logger that cannot be built is
// reported on stderr and replaced by a no-op logger.
func openSession(configPath string, stderr io.Writer, console bool) (*session, error) {
	cfg, path, err := resolveConfig(configPath)
	if err != nil {
		return nil, err
	}
	opts := logging.Options{}
	if console {
		opts.Console = stderr
	}
	logger, closeLog, err := logging.New(cfg.Log, cfg.LogCompress(), opts)
	if err != nil {
		fmt.Fprintf(stderr, "Logging disabled: %v\n", err)
		logger, closeLog = zap.NewNop(), func() error { return nil }
	}
	return &session{cfg: cfg, path: path, logger: logger, closeLog: closeLog, stderr: stderr}, nil
}

func (s *session) Close() {
	_ = s.closeLog()
}

// loadCatalog returns the built-in topics plus the configured extra sets.
func (s *session) loadCatalog() (*catalog.Catalog, error) {
	extra := make([]question.Set, 0, len(s.cfg.Quizzes.Extra))
	for _, path := range s.cfg.Quizzes.Extra {
		set, err := question.LoadSet(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		extra = append(extra, set)
	}
	return catalog.Load(extra...)
}

// openRecords opens the configured progress backend.
func (s *session) openRecords(ctx context.Context) (*progress.Records, func() error, error) {
	backend, err := progress.Open(ctx, progress.Options{
		Kind:     s.cfg.Storage.Backend,
		Dir:      s.cfg.Storage.Dir,
		DSN:      s.cfg.Storage.DSN,
		RedisURL: s.cfg.Storage.RedisURL,
		Prefix:   s.cfg.Storage.Prefix,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open progress store: %w", err)
	}
	s.logger.Debug("progress store opened", zap.String("backend", s.cfg.Storage.Backend))
	return progress.NewRecords(backend), backend.Close, nil
}

// openRecordsOrMemory opens the configured progress backend and falls back to
// an in-memory store when it is unavailable, so a quiz can still be taken
// without its progress surviving the process.
func (s *session) openRecordsOrMemory(ctx context.Context) (*progress.Records, func() error) {
	records, closeStore, err := s.openRecords(ctx)
	if err == nil {
		return records, closeStore
	}
	s.logger.Warn("progress store unavailable, using memory", zap.String("backend", s.cfg.Storage.Backend), zap.Error(err))
	fmt.Fprintf(s.stderr, "Progress store unavailable (%v); answers will not be saved.\n", err)
	memory := progress.NewMemory()
	return progress.NewRecords(memory), memory.Close
}

// openTally opens the attempt tally; it returns nil when the tally is disabled.
func (s *session) openTally(ctx context.Context) (*tally.Tally, error) {
	if !s.cfg.TallyEnabled() {
		return nil, nil
	}
	return tally.Open(ctx, s.cfg.Tally.Path)
}
