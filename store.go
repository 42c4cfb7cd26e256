package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Store persists a portfolio between sessions.
//
// Load never fails: a missing or unreadable snapshot yields an empty
// portfolio. Save failures are always reported, they wrap ErrIO.
type Store interface {
	Load() *Portfolio
	Save(p *Portfolio) error
}

// OpenStore returns the store for path: SQLite for ".db", ".sqlite" and
// ".sqlite3" files, a JSON snapshot file otherwise.
func OpenStore(path string, log zerolog.Logger) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLiteStore(path, log)
	default:
		return &FileStore{Path: path, Log: log}, nil
	}
}

// FileStore keeps the portfolio in a JSON snapshot file.
type FileStore struct {
	Path string
	Log  zerolog.Logger
}

// Load reads the snapshot file, or returns an empty portfolio.
func (s *FileStore) Load() *Portfolio {
	if s.Path == "" {
		return NewPortfolio()
	}
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		s.Log.Info().Str("path", s.Path).Msg("no portfolio file, starting empty")
		return NewPortfolio()
	}
	if err != nil {
		s.Log.Warn().Err(err).Str("path", s.Path).Msg("cannot open portfolio file, starting empty")
		return NewPortfolio()
	}
	defer f.Close()

	p, err := DecodePortfolio(f)
	if err != nil {
		s.Log.Warn().Err(err).Str("path", s.Path).Msg("invalid portfolio file, starting empty")
		return NewPortfolio()
	}
	return p
}

// Save writes the snapshot to a temporary file next to Path, then renames it
// over Path, so that a failed save never truncates the previous snapshot.
func (s *FileStore) Save(p *Portfolio) error {
	if s.Path == "" {
		return fmt.Errorf("%w: no portfolio file", ErrIO)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("%w: cannot save portfolio %q: %v", ErrIO, s.Path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := EncodePortfolio(tmp, p); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: cannot save portfolio %q: %v", ErrIO, s.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: cannot save portfolio %q: %v", ErrIO, s.Path, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("%w: cannot save portfolio %q: %v", ErrIO, s.Path, err)
	}
	s.Log.Debug().Str("path", s.Path).Msg("portfolio saved")
	return nil
}
