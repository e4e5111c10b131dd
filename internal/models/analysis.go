package models

// PRSnapshot is the pull request state fetched fresh for one analysis
// attempt. It is never cached or mutated.
type PRSnapshot struct {
	Title        string
	Body         string
	Author       string
	Diff         string
	FilesChanged []string
	Additions    int
	Deletions    int
	BaseBranch   string
	HeadBranch   string
	URL          string
}

// AnalysisResult is the outcome of one orchestrator run
type AnalysisResult struct {
	Success bool

	// Populated on success
	Snapshot      PRSnapshot
	Summary       string
	PRType        string
	Confidence    float64
	Scores        map[string]float64
	CommitMessage string
	Risks         []string
	Suggestions   []string

	// Populated on failure
	Error string
}
