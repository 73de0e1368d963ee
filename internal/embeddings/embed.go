// Package embeddings splits a batch of inputs across concurrent provider calls.
package embeddings

import (
	"context"
	"fmt"
	"sync"
)

// Result is the outcome of embedding one contiguous slice of inputs.
type Result struct {
	Vectors          [][]float32
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CallFunc embeds inputs and must return one vector per input, in order.
type CallFunc func(ctx context.Context, inputs []string) (Result, error)

// Parallel embeds inputs with at most maxParallel concurrent calls. Vectors
// are returned in input order and token usage is summed across calls. If any
// call comes back without vectors the whole result is empty, as it would be
// for a single call.
func Parallel(ctx context.Context, inputs []string, maxParallel int, call CallFunc) (Result, error) {
	if len(inputs) == 0 {
		return Result{}, fmt.Errorf("input is required")
	}
	if maxParallel <= 1 || len(inputs) <= 1 {
		return call(ctx, inputs)
	}
	if maxParallel > len(inputs) {
		maxParallel = len(inputs)
	}

	batches := splitIntoBatches(len(inputs), maxParallel)
	out := Result{Vectors: make([][]float32, len(inputs))}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		empty bool
	)
	errCh := make(chan error, len(batches))

	for _, b := range batches {
		wg.Add(1)
		go func(b batch) {
			defer wg.Done()

			sub := append([]string(nil), inputs[b.start:b.end]...)
			resp, err := call(ctx, sub)
			if err != nil {
				errCh <- err
				return
			}
			if len(resp.Vectors) == 0 {
				mu.Lock()
				empty = true
				mu.Unlock()
				return
			}
			if len(resp.Vectors) != len(sub) {
				errCh <- fmt.Errorf("embedding response count mismatch: got %d want %d", len(resp.Vectors), len(sub))
				return
			}

			mu.Lock()
			copy(out.Vectors[b.start:b.end], resp.Vectors)
			if out.Model == "" {
				out.Model = resp.Model
			}
			out.PromptTokens += resp.PromptTokens
			out.CompletionTokens += resp.CompletionTokens
			out.TotalTokens += resp.TotalTokens
			mu.Unlock()
		}(b)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return Result{}, err
		}
	}
	if empty {
		return Result{}, nil
	}
	return out, nil
}

type batch struct{ start, end int }

func splitIntoBatches(n, parts int) []batch {
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	out := make([]batch, 0, parts)
	base := n / parts
	rem := n % parts

	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < rem {
			size++
		}
		out = append(out, batch{start: start, end: start + size})
		start += size
	}
	return out
}
