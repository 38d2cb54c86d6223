package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAdviceFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "advice.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write advice file: %v", err)
	}
	return path
}

func TestTipServiceRandom(t *testing.T) {
	t.Parallel()

	t.Run("returns a tip from the file", func(t *testing.T) {
		t.Parallel()

		path := writeAdviceFile(t, "tip\nПервый совет\nВторой совет\n")
		service := NewTipService(path)

		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			tip := service.Random()
			if tip != "Первый совет" && tip != "Второй совет" {
				t.Fatalf("unexpected tip %q", tip)
			}
			seen[tip] = true
		}
		if len(seen) != 2 {
			t.Fatalf("expected both tips across 50 draws, saw %d", len(seen))
		}
	})

	t.Run("tolerates extra columns", func(t *testing.T) {
		t.Parallel()

		path := writeAdviceFile(t, "id,tip\n1,Совет с номером\n")
		service := NewTipService(path)
		if tip := service.Random(); tip != "Совет с номером" {
			t.Fatalf("tip = %q, want column-addressed value", tip)
		}
	})

	t.Run("falls back when the file is missing", func(t *testing.T) {
		t.Parallel()

		service := NewTipService(filepath.Join(t.TempDir(), "absent.csv"))
		if tip := service.Random(); tip != FallbackTip {
			t.Fatalf("tip = %q, want fallback", tip)
		}
	})

	t.Run("falls back when only a header is present", func(t *testing.T) {
		t.Parallel()

		service := NewTipService(writeAdviceFile(t, "tip\n"))
		if tip := service.Random(); tip != FallbackTip {
			t.Fatalf("tip = %q, want fallback", tip)
		}
	})

	t.Run("falls back when the tip column is absent", func(t *testing.T) {
		t.Parallel()

		service := NewTipService(writeAdviceFile(t, "advice\nне та колонка\n"))
		if tip := service.Random(); tip != FallbackTip {
			t.Fatalf("tip = %q, want fallback", tip)
		}
	})
}
