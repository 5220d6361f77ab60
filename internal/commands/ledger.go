package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/storage"
)

const configFile = "tally.yaml"

// ledgerEnv bundles the loaded config and store for one command invocation.
type ledgerEnv struct {
	dir   string
	cfg   *config.Config
	store *ledger.Store
}

// openLedger loads the config and ledger state from a directory. A missing
// config falls back to defaults; a missing data file starts an empty ledger.
// A corrupt data file is warned about and degraded to empty, matching the
// save-on-every-mutation model where the next write replaces it.
func openLedger(dir string) (*ledgerEnv, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := config.Default()
	cfgPath := filepath.Join(abs, configFile)
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
	}

	dataPath := filepath.Join(abs, cfg.Ledger.DataFile)
	snap, err := storage.Load(dataPath)
	if err != nil {
		var cerr *storage.CorruptError
		if !errors.As(err, &cerr) {
			return nil, err
		}
		slog.Warn("ledger file is corrupt, starting from an empty ledger",
			"path", cerr.Path, "err", cerr.Err)
	}

	store := ledger.NewStore(snap.Transactions, snap.Limits, storage.FileSaver{Path: dataPath})
	return &ledgerEnv{dir: abs, cfg: cfg, store: store}, nil
}

// recordMutation appends to the activity log and auto-commits the ledger
// directory when enabled. Both are best-effort: the mutation itself already
// persisted, so failures here are logged rather than surfaced.
func (e *ledgerEnv) recordMutation(action, details string) {
	entry := auditlog.Entry{Timestamp: time.Now(), Action: action, Details: details}
	if err := auditlog.Append(e.dir, []auditlog.Entry{entry}); err != nil {
		slog.Warn("writing activity log", "err", err)
	}

	if e.cfg.Git.AutoCommit && gitops.IsRepo(e.dir) {
		message := action + ": " + details
		if _, err := gitops.CommitAll(e.dir, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
			slog.Warn("git auto-commit", "err", err)
		}
	}
}
