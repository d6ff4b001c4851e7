package ml

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot es el modelo entrenado de un usuario: vector de pesos y el
// vocabulario con el que se vectorizó. len(Weights) == len(Vocab) siempre.
type Snapshot struct {
	Weights []float64      `json:"weights"`
	Vocab   map[string]int `json:"vocab"`
}

// SnapshotStore persiste modelos por usuario. Get devuelve (nil, nil)
// cuando el usuario todavía no tiene modelo.
type SnapshotStore interface {
	Get(userID int) (*Snapshot, error)
	Put(userID int, snap *Snapshot) error
}

// ================= FileStore =================

// FileStore guarda por usuario dos artefactos JSON: <uid>_weights.json y
// <uid>_vocab.json. Cada escritura va a un archivo temporal y se renombra,
// así un Score concurrente nunca lee un archivo a medias.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creando directorio de modelos: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) weightsPath(userID int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d_weights.json", userID))
}

func (s *FileStore) vocabPath(userID int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d_vocab.json", userID))
}

func (s *FileStore) Get(userID int) (*Snapshot, error) {
	wb, err := os.ReadFile(s.weightsPath(userID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	vb, err := os.ReadFile(s.vocabPath(userID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(wb, &snap.Weights); err != nil {
		return nil, fmt.Errorf("pesos corruptos de usuario %d: %w", userID, err)
	}
	if err := json.Unmarshal(vb, &snap.Vocab); err != nil {
		return nil, fmt.Errorf("vocabulario corrupto de usuario %d: %w", userID, err)
	}

	// un reentrenamiento pudo cruzarse entre los dos renames; si los
	// artefactos no casan, se trata como "sin modelo"
	if len(snap.Weights) != len(snap.Vocab) {
		log.Printf("[ml] snapshot inconsistente de usuario %d (pesos=%d vocab=%d), se ignora",
			userID, len(snap.Weights), len(snap.Vocab))
		return nil, nil
	}
	return &snap, nil
}

func (s *FileStore) Put(userID int, snap *Snapshot) error {
	wb, err := json.Marshal(snap.Weights)
	if err != nil {
		return err
	}
	vb, err := json.Marshal(snap.Vocab)
	if err != nil {
		return err
	}

	if err := writeAtomic(s.dir, s.vocabPath(userID), vb); err != nil {
		return err
	}
	return writeAtomic(s.dir, s.weightsPath(userID), wb)
}

func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ================= MemoryStore =================

// MemoryStore es la implementación en memoria para tests.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[int]*Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[int]*Snapshot)}
}

func (s *MemoryStore) Get(userID int) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snaps[userID], nil
}

func (s *MemoryStore) Put(userID int, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[userID] = snap
	return nil
}
