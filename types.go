package main

// Operation is a single named query or mutation attributed by the model.
// Names are taken verbatim from the reply; duplicates are kept.
type Operation struct {
	Name string `json:"name"`
}

// OperationSummary is the per-page analysis the model is asked to return.
type OperationSummary struct {
	Queries   []Operation `json:"queries"`
	Mutations []Operation `json:"mutations"`
}

// PageInfo is one entry of the model's page inventory (inventory mode).
// All fields are free text; nothing beyond the JSON shape is validated.
type PageInfo struct {
	Path        string `json:"path"`
	Component   string `json:"component"`
	Description string `json:"description"`
}

// AnalysisResult is the unit appended to the final output collection.
// Either Analysis (with its counts) or Error is set, never both.
type AnalysisResult struct {
	Page          string            `json:"page"`
	Analysis      *OperationSummary `json:"analysis,omitempty"`
	QueryCount    int               `json:"queryCount"`
	MutationCount int               `json:"mutationCount"`
	Error         string            `json:"error,omitempty"`
}

// Group is the ordered list of files associated with one page/route.
type Group struct {
	Name  string
	Files []string
}

// RunSummary holds aggregated counters printed at the end of a run.
type RunSummary struct {
	Groups       int
	Calls        int
	Errored      int
	PromptTokens int
}
