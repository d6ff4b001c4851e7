package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	t.Run("usuario sin modelo devuelve nil sin error", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}

		snap, err := store.Get(99)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if snap != nil {
			t.Errorf("snap = %v, se esperaba nil", snap)
		}
	})

	t.Run("round-trip de pesos y vocabulario", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}

		in := &Snapshot{
			Weights: []float64{0.25, -1.5, 3},
			Vocab:   map[string]int{"g1": 0, "k10": 1, "tinception": 2},
		}
		if err := store.Put(7, in); err != nil {
			t.Fatalf("Put: %v", err)
		}

		out, err := store.Get(7)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if out == nil {
			t.Fatal("Get devolvió nil")
		}
		if len(out.Weights) != 3 || out.Weights[1] != -1.5 {
			t.Errorf("pesos = %v", out.Weights)
		}
		if out.Vocab["tinception"] != 2 {
			t.Errorf("vocab = %v", out.Vocab)
		}
	})

	t.Run("un Put reemplaza el snapshot anterior", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}

		_ = store.Put(1, &Snapshot{Weights: []float64{1}, Vocab: map[string]int{"g1": 0}})
		_ = store.Put(1, &Snapshot{Weights: []float64{2, 3}, Vocab: map[string]int{"g1": 0, "g2": 1}})

		out, err := store.Get(1)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(out.Weights) != 2 || out.Weights[0] != 2 {
			t.Errorf("pesos = %v, se esperaba el segundo snapshot", out.Weights)
		}
	})

	t.Run("artefactos inconsistentes se tratan como sin modelo", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}

		// pesos de largo 2 contra vocabulario de largo 1
		wb, _ := json.Marshal([]float64{1, 2})
		vb, _ := json.Marshal(map[string]int{"g1": 0})
		if err := os.WriteFile(filepath.Join(dir, "5_weights.json"), wb, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "5_vocab.json"), vb, 0o644); err != nil {
			t.Fatal(err)
		}

		snap, err := store.Get(5)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if snap != nil {
			t.Errorf("snap = %v, un snapshot inconsistente debería ignorarse", snap)
		}
	})

	t.Run("modelos de usuarios distintos no se pisan", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}

		_ = store.Put(1, &Snapshot{Weights: []float64{1}, Vocab: map[string]int{"a": 0}})
		_ = store.Put(2, &Snapshot{Weights: []float64{9}, Vocab: map[string]int{"b": 0}})

		s1, _ := store.Get(1)
		s2, _ := store.Get(2)
		if s1.Weights[0] != 1 || s2.Weights[0] != 9 {
			t.Errorf("snapshots cruzados: %v / %v", s1.Weights, s2.Weights)
		}
	})
}
