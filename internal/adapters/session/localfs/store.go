package localfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Store guarda cada slot de sesión como un archivo dentro de un
// directorio de estado. Es el análogo local de localStorage: un perfil,
// borrable, y su ausencia no es un error.
type Store struct{ dir string }

func New(dir string) *Store {
	_ = os.MkdirAll(dir, 0755)
	return &Store{dir: dir}
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

func (s *Store) Save(_ context.Context, slot string, data []byte) error {
	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(slot))
}

func (s *Store) Load(_ context.Context, slot string) ([]byte, error) {
	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}
