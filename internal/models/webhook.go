package models

// PullRequestEvent represents the GitHub pull_request webhook payload
type PullRequestEvent struct {
	Action      string           `json:"action"`
	Number      int              `json:"number"`
	PullRequest EventPullRequest `json:"pull_request"`
	Repository  EventRepository  `json:"repository"`
	Sender      EventUser        `json:"sender"`
}

// EventPullRequest represents the pull request object in the webhook payload
type EventPullRequest struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	State     string    `json:"state"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	DiffURL   string    `json:"diff_url"`
	User      EventUser `json:"user"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
	Commits   int       `json:"commits"`
	Draft     bool      `json:"draft"`
	Merged    bool      `json:"merged"`
	Base      EventRef  `json:"base"`
	Head      EventRef  `json:"head"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// EventRepository represents the repository object in the webhook payload
type EventRepository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Private       bool      `json:"private"`
	Owner         EventUser `json:"owner"`
	HTMLURL       string    `json:"html_url"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language"`
}

// EventUser represents a user in the webhook payload
type EventUser struct {
	Login   string `json:"login"`
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
	Type    string `json:"type"`
}

// EventRef represents a base/head branch reference in the webhook payload
type EventRef struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// GetRepositoryName returns the full repository name
func (e PullRequestEvent) GetRepositoryName() string {
	return e.Repository.FullName
}

// GetPRNumber returns the pull request number, preferring the PR object
// over the top-level number field (absent on some event types)
func (e PullRequestEvent) GetPRNumber() int {
	if e.PullRequest.Number != 0 {
		return e.PullRequest.Number
	}
	return e.Number
}
