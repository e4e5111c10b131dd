// Package github wraps the GitHub API operations the analysis pipeline
// needs: fetching a pull request snapshot and posting the review comment.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/sahilKumar1122/pr-pilot/internal/models"
)

// PullRequestsService is the subset of the go-github pull request API used
// by this client, extracted for mockability
type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

// IssuesService is the subset of the go-github issues API used by this client
type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// Client fetches pull request data and posts comments
type Client struct {
	prService     PullRequestsService
	issuesService IssuesService
}

// NewClient creates a GitHub client. An empty token yields an
// unauthenticated client subject to the low anonymous rate limit.
func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{
		prService:     client.PullRequests,
		issuesService: client.Issues,
	}
}

// NewClientWithServices creates a client over explicit service
// implementations, used by tests
func NewClientWithServices(prService PullRequestsService, issuesService IssuesService) *Client {
	return &Client{
		prService:     prService,
		issuesService: issuesService,
	}
}

// GetPRSnapshot fetches the pull request metadata, changed files and diff
// text. The snapshot is fetched fresh per analysis attempt, never cached.
func (c *Client) GetPRSnapshot(ctx context.Context, repoFullName string, number int) (models.PRSnapshot, error) {
	owner, repo, err := splitRepoFullName(repoFullName)
	if err != nil {
		return models.PRSnapshot{}, err
	}

	pr, _, err := c.prService.Get(ctx, owner, repo, number)
	if err != nil {
		return models.PRSnapshot{}, fmt.Errorf("failed to fetch PR %s#%d: %w", repoFullName, number, err)
	}

	files, err := c.listAllFiles(ctx, owner, repo, number)
	if err != nil {
		return models.PRSnapshot{}, fmt.Errorf("failed to list files for PR %s#%d: %w", repoFullName, number, err)
	}

	var diff strings.Builder
	filenames := make([]string, 0, len(files))
	for _, file := range files {
		filenames = append(filenames, file.GetFilename())
		// Binary files carry no patch
		if file.GetPatch() == "" {
			continue
		}
		diff.WriteString(fmt.Sprintf("\n--- %s ---\n", file.GetFilename()))
		diff.WriteString(file.GetPatch())
		diff.WriteString("\n")
	}

	return models.PRSnapshot{
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		Diff:         diff.String(),
		FilesChanged: filenames,
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		BaseBranch:   pr.GetBase().GetRef(),
		HeadBranch:   pr.GetHead().GetRef(),
		URL:          pr.GetHTMLURL(),
	}, nil
}

// PostComment posts a markdown comment on the pull request. Posting is not
// deduplicated; calling twice creates two comments.
func (c *Client) PostComment(ctx context.Context, repoFullName string, number int, body string) error {
	owner, repo, err := splitRepoFullName(repoFullName)
	if err != nil {
		return err
	}

	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := c.issuesService.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return fmt.Errorf("failed to post comment on PR %s#%d: %w", repoFullName, number, err)
	}
	return nil
}

func (c *Client) listAllFiles(ctx context.Context, owner, repo string, number int) ([]*github.CommitFile, error) {
	var all []*github.CommitFile
	opts := &github.ListOptions{PerPage: 100}

	for {
		files, resp, err := c.prService.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func splitRepoFullName(fullName string) (owner, repo string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
