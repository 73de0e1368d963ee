package embeddings

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
)

func TestSplitIntoBatches(t *testing.T) {
	got := splitIntoBatches(5, 2)
	if len(got) != 2 {
		t.Fatalf("batches=%#v", got)
	}
	if got[0] != (batch{0, 3}) || got[1] != (batch{3, 5}) {
		t.Fatalf("batches=%#v", got)
	}

	got = splitIntoBatches(2, 8)
	if len(got) != 2 {
		t.Fatalf("batches=%#v", got)
	}
}

func TestParallel_PreservesOrderAndSumsUsage(t *testing.T) {
	var calls atomic.Int32
	inputs := []string{"0", "1", "2", "3", "4"}

	out, err := Parallel(context.Background(), inputs, 3, func(ctx context.Context, in []string) (Result, error) {
		calls.Add(1)
		vecs := make([][]float32, len(in))
		for i, s := range in {
			n, _ := strconv.Atoi(s)
			vecs[i] = []float32{float32(n)}
		}
		return Result{Vectors: vecs, Model: "m", PromptTokens: len(in), TotalTokens: len(in)}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls=%d", calls.Load())
	}
	for i, v := range out.Vectors {
		if int(v[0]) != i {
			t.Fatalf("index %d got %v", i, v)
		}
	}
	if out.TotalTokens != 5 || out.PromptTokens != 5 || out.Model != "m" {
		t.Fatalf("result=%#v", out)
	}
}

func TestParallel_SingleCallWhenNotParallel(t *testing.T) {
	calls := 0
	_, err := Parallel(context.Background(), []string{"a", "b"}, 1, func(ctx context.Context, in []string) (Result, error) {
		calls++
		if len(in) != 2 {
			t.Fatalf("inputs=%#v", in)
		}
		return Result{Vectors: [][]float32{{1}, {2}}}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestParallel_Errors(t *testing.T) {
	if _, err := Parallel(context.Background(), nil, 2, nil); err == nil {
		t.Fatalf("expected error for empty input")
	}

	boom := errors.New("boom")
	_, err := Parallel(context.Background(), []string{"a", "b"}, 2, func(ctx context.Context, in []string) (Result, error) {
		if in[0] == "b" {
			return Result{}, boom
		}
		return Result{Vectors: [][]float32{{1}}}, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}

	_, err = Parallel(context.Background(), []string{"a", "b"}, 2, func(ctx context.Context, in []string) (Result, error) {
		return Result{Vectors: [][]float32{{1}, {2}}}, nil
	})
	if err == nil {
		t.Fatalf("expected count mismatch error")
	}
}

func TestParallel_EmptyBatchGivesEmptyResult(t *testing.T) {
	out, err := Parallel(context.Background(), []string{"a", "b", "c"}, 3, func(ctx context.Context, in []string) (Result, error) {
		if in[0] == "b" {
			return Result{}, nil
		}
		return Result{Vectors: [][]float32{{1}}}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Vectors) != 0 {
		t.Fatalf("vectors=%v", out.Vectors)
	}
}
