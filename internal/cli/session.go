package cli

import (
	"context"
	"log/slog"
	"os"

	"organizer/internal/config"
	"organizer/internal/model"
	"organizer/internal/storage"
)

// session bundles the loaded configuration, the open store and the two
// collections for the duration of one command.
type session struct {
	cfg   *config.Config
	store storage.Store
	book  *model.AddressBook
	notes *model.NoteBook
}

// openSession loads config, configures logging, opens the store and loads
// the collections. Errors at this stage are command errors, not domain ones.
func (o *RootOptions) openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Data != "" {
		cfg.Storage.Path = o.Data
	}
	if o.Driver != "" {
		cfg.Storage.Driver = o.Driver
	}

	level := cfg.LogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	st, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}

	book, notes, err := st.Load(ctx)
	if err != nil {
		_ = st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load data", err)
	}
	slog.Debug("data loaded", "path", cfg.Storage.Path, "contacts", book.Len(), "notes", notes.Len())

	return &session{cfg: cfg, store: st, book: book, notes: notes}, nil
}

// save persists the collections. A save failure is reported as a command
// error; the in-memory mutation already happened and the message tells the
// user what was lost.
func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.book, s.notes); err != nil {
		return WrapExitError(ExitCommandError, "failed to save data", err)
	}
	slog.Debug("data saved", "contacts", s.book.Len(), "notes", s.notes.Len())
	return nil
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		slog.Error("error closing storage", "error", err)
	}
}

// run opens a session, invokes fn, saves when fn reports a mutation and
// prints the returned message. Every data-touching command funnels through
// here.
func (o *RootOptions) run(ctx context.Context, out *OutputFormatter, fn func(s *session) (string, bool, error)) error {
	s, err := o.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	message, mutated, err := fn(s)
	if err != nil {
		return err
	}
	if mutated {
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	return out.Success(message)
}
