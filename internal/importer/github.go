package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/zulandar/followup/internal/dates"
	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/status"
	"golang.org/x/oauth2"
)

// issueLister abstracts the GitHub Issues API methods we use, enabling
// test mocks.
type issueLister interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

// GitHubImporter pulls a repository's issues in as tasks.
type GitHubImporter struct {
	issues issueLister
	owner  string
	repo   string
}

// GitHubOpts holds parameters for creating a GitHubImporter.
type GitHubOpts struct {
	Owner string
	Repo  string
	Token string
	// For testing: inject a mock issue lister instead of the real API.
	Issues issueLister
}

// NewGitHub creates a GitHub issue importer. An empty token means
// unauthenticated access (public repos, low rate limits).
func NewGitHub(opts GitHubOpts) (*GitHubImporter, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("importer: github owner and repo are required")
	}
	issues := opts.Issues
	if issues == nil {
		var client *github.Client
		if opts.Token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
			client = github.NewClient(oauth2.NewClient(context.Background(), ts))
		} else {
			client = github.NewClient(nil)
		}
		issues = client.Issues
	}
	return &GitHubImporter{issues: issues, owner: opts.Owner, repo: opts.Repo}, nil
}

// Fetch lists the repository's issues (open and closed) and maps them
// to tasks: title, assignee as owner, milestone due date as due date,
// labels as tags. Closed issues come in as Done, open ones as Not Done.
// Pull requests are skipped.
func (g *GitHubImporter) Fetch(ctx context.Context) ([]models.Task, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var tasks []models.Task
	for {
		issues, resp, err := g.issues.ListByRepo(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("importer: list issues for %s/%s: %w", g.owner, g.repo, err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			tasks = append(tasks, taskFromIssue(issue))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tasks, nil
}

func taskFromIssue(issue *github.Issue) models.Task {
	t := models.Task{
		Title:  issue.GetTitle(),
		Owner:  issue.GetAssignee().GetLogin(),
		Status: status.NotDone,
	}
	if issue.GetState() == "closed" {
		t.Status = status.Done
	}
	if created := issue.GetCreatedAt(); !created.IsZero() {
		d := dates.Day(created.Time)
		t.CreatedOn = &d
	}
	if issue.GetState() == "closed" {
		if closed := issue.GetClosedAt(); !closed.IsZero() {
			d := dates.Day(closed.Time)
			t.CompletedOn = &d
		}
	}
	if m := issue.Milestone; m != nil {
		if due := m.GetDueOn(); !due.IsZero() {
			d := dates.Day(due.Time)
			t.DueDate = &d
		}
	}
	var labels []string
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	t.Tags = strings.Join(labels, ",")
	return t
}
