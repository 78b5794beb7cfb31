package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"aurora-quiz/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(SampleQuestionSet())}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.GetQuestionSet(context.Background(), "sample"); err != nil {
		t.Fatalf("get set: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected loader once, got %d", loader.count())
	}

	set, err := repo.GetQuestionSet(context.Background(), "sample")
	if err != nil {
		t.Fatalf("get set 2: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.count())
	}
	if len(set.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(set.Questions))
	}
}

func TestQuestionRepositoryExpires(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(SampleQuestionSet())}
	repo := NewQuestionRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.GetQuestionSet(context.Background(), "sample")
	now = now.Add(2 * time.Minute)
	_, _ = repo.GetQuestionSet(context.Background(), "sample")
	if loader.count() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.count())
	}
}

func TestQuestionRepositoryPropagatesNotFound(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(), time.Minute)
	if _, err := repo.GetQuestionSet(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuestionRepositoryCollapsesConcurrentLoads(t *testing.T) {
	release := make(chan struct{})
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(SampleQuestionSet()), gate: release}
	repo := NewQuestionRepository(loader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.GetQuestionSet(context.Background(), "sample"); err != nil {
				t.Errorf("get set: %v", err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	if loader.count() != 1 {
		t.Fatalf("expected a single load, got %d", loader.count())
	}
}

func TestFileQuestionLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.yaml")
	data := []byte(`
- id: astronomy
  title: Astronomy basics
  questions:
    - prompt: Which planet has the most moons?
      options: [Earth, Saturn, Mars]
      correct_index: 1
      explanation: Saturn has more than 140 known moons.
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader := NewFileQuestionLoader(path)

	set, err := loader.LoadQuestionSet(context.Background(), "astronomy")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.Title != "Astronomy basics" || len(set.Questions) != 1 || set.Questions[0].CorrectIndex != 1 {
		t.Fatalf("unexpected set %+v", set)
	}
	if _, err := loader.LoadQuestionSet(context.Background(), "geology"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	gate  chan struct{}
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadQuestionSet(ctx context.Context, bankID string) (domain.QuestionSet, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if l.gate != nil {
		<-l.gate
	}
	return l.QuestionLoader.LoadQuestionSet(ctx, bankID)
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
