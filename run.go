package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// completer is the slice of the analysis client the orchestrator needs.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// waiter is the pacing policy applied between consecutive remote calls.
type waiter interface {
	Wait(ctx context.Context) error
}

// Runner sequences the analysis: strictly one remote call at a time, in
// discovery order, pacing between consecutive calls but never after the
// last one. Per-item failures become error-tagged results; the run always
// proceeds to the end.
type Runner struct {
	client          completer
	pacer           waiter
	tokenizer       Tokenizer // optional, prompt token reporting only
	maxPromptTokens int

	summary RunSummary
}

// NewRunner wires the orchestrator. pacer and tokenizer may be nil.
func NewRunner(client completer, pacer waiter, tokenizer Tokenizer, maxPromptTokens int) *Runner {
	return &Runner{
		client:          client,
		pacer:           pacer,
		tokenizer:       tokenizer,
		maxPromptTokens: maxPromptTokens,
	}
}

// Summary returns the counters accumulated so far.
func (r *Runner) Summary() RunSummary { return r.summary }

// AnalyzeGroups runs the per-group pipeline: each group's files are
// concatenated into one blob and sent as a single operations prompt.
func (r *Runner) AnalyzeGroups(ctx context.Context, groups []Group) ([]AnalysisResult, error) {
	r.summary.Groups = len(groups)
	results := make([]AnalysisResult, 0, len(groups))

	for i, group := range groups {
		if i > 0 {
			if err := r.pace(ctx); err != nil {
				return results, err
			}
		}

		fmt.Printf("Analyzing page %q (%d files)...\n", group.Name, len(group.Files))
		blob, err := readFilesBlob(group.Files)
		if err != nil {
			return results, err
		}
		results = append(results, r.analyzeOne(ctx, group.Name, buildOperationsPrompt(group.Name, blob)))
	}

	return results, nil
}

// AnalyzeInventory runs the whole-blob pipeline: one discovery call for the
// page inventory, then one operations call per discovered page, reusing the
// same blob as context. Discovery failure aborts the run; per-page failures
// do not.
func (r *Runner) AnalyzeInventory(ctx context.Context, blob string) ([]PageInfo, []AnalysisResult, error) {
	fmt.Println("Discovering pages...")
	prompt := buildInventoryPrompt(blob)
	r.reportTokens(prompt)

	reply, err := r.complete(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("page discovery failed: %w", err)
	}
	payload, err := extractJSON(reply)
	if err != nil {
		return nil, nil, fmt.Errorf("page discovery reply: %w", err)
	}
	var pages []PageInfo
	if err := json.Unmarshal([]byte(payload), &pages); err != nil {
		return nil, nil, fmt.Errorf("parsing page inventory: %w", err)
	}
	fmt.Printf("Discovered %d pages.\n", len(pages))
	r.summary.Groups = len(pages)

	results := make([]AnalysisResult, 0, len(pages))
	for _, page := range pages {
		// The discovery call already happened, so every page call is
		// preceded by a pause.
		if err := r.pace(ctx); err != nil {
			return pages, results, err
		}
		fmt.Printf("Analyzing page %q...\n", page.Path)
		results = append(results, r.analyzeOne(ctx, page.Path, buildPageOperationsPrompt(page.Path, blob)))
	}

	return pages, results, nil
}

// analyzeOne issues one remote call and converts any failure into an
// error-tagged result so the aggregate run keeps going.
func (r *Runner) analyzeOne(ctx context.Context, page string, prompt string) AnalysisResult {
	r.reportTokens(prompt)

	reply, err := r.complete(ctx, prompt)
	if err != nil {
		return r.errorResult(page, err)
	}

	payload, err := extractJSON(reply)
	if err != nil {
		return r.errorResult(page, err)
	}

	var summary OperationSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return r.errorResult(page, err)
	}

	return AnalysisResult{
		Page:          page,
		Analysis:      &summary,
		QueryCount:    len(summary.Queries),
		MutationCount: len(summary.Mutations),
	}
}

func (r *Runner) errorResult(page string, err error) AnalysisResult {
	fmt.Fprintf(os.Stderr, "Warning: analysis of %q failed: %v\n", page, err)
	r.summary.Errored++
	return AnalysisResult{Page: page, Error: err.Error()}
}

func (r *Runner) complete(ctx context.Context, prompt string) (string, error) {
	r.summary.Calls++
	return r.client.Complete(ctx, prompt)
}

func (r *Runner) pace(ctx context.Context) error {
	if r.pacer == nil {
		return nil
	}
	return r.pacer.Wait(ctx)
}

// reportTokens prints the prompt's token count when a tokenizer is wired,
// warning when it crosses the configured ceiling. Counting never blocks or
// skips the call.
func (r *Runner) reportTokens(prompt string) {
	if r.tokenizer == nil {
		return
	}
	n := r.tokenizer.CountTokens(prompt)
	r.summary.PromptTokens += n
	if r.maxPromptTokens > 0 && n > r.maxPromptTokens {
		fmt.Fprintf(os.Stderr, "Warning: prompt is %d tokens, above the %d token ceiling\n", n, r.maxPromptTokens)
		return
	}
	fmt.Printf("Prompt size: %d tokens\n", n)
}
