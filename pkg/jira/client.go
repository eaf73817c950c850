package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"golang.org/x/oauth2"

	"github.com/ksysoev/jira-fetch/pkg/core"
	"github.com/ksysoev/jira-fetch/pkg/log"
)

// defaultSearchLimit matches the page size the service applies when none
// is requested.
const defaultSearchLimit = 50

// ErrIssueNotFound reports an issue the service could not return data for.
var ErrIssueNotFound = errors.New("issue not found or missing data")

// Client handles interaction with the Jira REST API
type Client struct {
	client *gojira.Client
	config *core.Config
	logger *log.Logger
}

// SearchOptions carries JQL paging and field selection, passed through to
// the service unchanged
type SearchOptions struct {
	Fields  []string
	StartAt int
	Limit   int
	Expand  string
}

// NewClient creates a new Jira client from validated configuration
func NewClient(config *core.Config, logger *log.Logger) (*Client, error) {
	httpClient, err := authClient(config)
	if err != nil {
		return nil, err
	}

	client, err := gojira.NewClient(httpClient, config.Site)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client for %s: %w", config.Site, err)
	}

	return &Client{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// authClient builds the HTTP client for the configured auth mode. Basic
// auth pairs the account email with the API token; bearer mode sends the
// token as-is through an oauth2 static source.
func authClient(config *core.Config) (*http.Client, error) {
	switch config.AuthType {
	case core.AuthTypeBearer:
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: config.APIToken},
		)
		return oauth2.NewClient(context.Background(), ts), nil
	case core.AuthTypeBasic, "":
		tp := gojira.BasicAuthTransport{
			Username: config.Email,
			Password: config.APIToken,
		}
		return tp.Client(), nil
	default:
		return nil, fmt.Errorf("unsupported auth type %q", config.AuthType)
	}
}

// GetIssue retrieves a single issue and flattens it into a cleaned record
func (c *Client) GetIssue(ctx context.Context, issueKey, expand string) (core.Issue, error) {
	var opts *gojira.GetQueryOptions
	if expand != "" {
		opts = &gojira.GetQueryOptions{Expand: expand}
	}

	issue, _, err := c.client.Issue.GetWithContext(ctx, issueKey, opts)
	if err != nil {
		return core.Issue{}, fmt.Errorf("failed to fetch issue %s: %w", issueKey, err)
	}

	if issue == nil || issue.Fields == nil {
		return core.Issue{}, fmt.Errorf("issue %s: %w", issueKey, ErrIssueNotFound)
	}

	return c.flattenIssue(issue), nil
}

// SearchIssues runs a JQL query and returns cleaned records for every hit.
// Hits without fields are skipped with a warning; no hits is an empty
// slice, not an error.
func (c *Client) SearchIssues(ctx context.Context, jql string, opts SearchOptions) ([]core.Issue, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	fields := opts.Fields
	if len(fields) == 0 {
		// the service omits non-navigable fields such as comment unless
		// all fields are requested explicitly
		fields = []string{"*all"}
	}

	searchOpts := &gojira.SearchOptions{
		StartAt:    opts.StartAt,
		MaxResults: limit,
		Fields:     fields,
		Expand:     opts.Expand,
	}

	issues, _, err := c.client.Issue.SearchWithContext(ctx, jql, searchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to search issues with JQL %q: %w", jql, err)
	}

	if len(issues) == 0 {
		c.logger.Warn("no issues found", "jql", jql)
		return []core.Issue{}, nil
	}

	results := make([]core.Issue, 0, len(issues))
	for i := range issues {
		if issues[i].Fields == nil {
			c.logger.Warn("skipping issue with missing fields", "key", issues[i].Key)
			continue
		}
		results = append(results, c.flattenIssue(&issues[i]))
	}

	return results, nil
}

// GetProjectIssues retrieves issues for a single project, newest first
func (c *Client) GetProjectIssues(ctx context.Context, projectKey string, startAt, limit int) ([]core.Issue, error) {
	jql := fmt.Sprintf("project = %s ORDER BY created DESC", projectKey)
	return c.SearchIssues(ctx, jql, SearchOptions{StartAt: startAt, Limit: limit})
}

// ListProjects retrieves all projects visible to the authenticated account
func (c *Client) ListProjects(ctx context.Context) ([]core.Project, error) {
	list, _, err := c.client.Project.GetListWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	if list == nil || len(*list) == 0 {
		c.logger.Warn("no projects found")
		return []core.Project{}, nil
	}

	projects := make([]core.Project, 0, len(*list))
	for _, project := range *list {
		projects = append(projects, core.Project{
			Key:  project.Key,
			Name: project.Name,
		})
	}

	return projects, nil
}

// flattenIssue reshapes a service issue into the flat record, applying
// defaults for omitted fields and cleaning description and comment bodies
func (c *Client) flattenIssue(issue *gojira.Issue) core.Issue {
	fields := issue.Fields

	out := core.Issue{
		Key:         issue.Key,
		Title:       "No Summary",
		Type:        "Unknown",
		Status:      "Unknown",
		Priority:    "None",
		Assignee:    "Unassigned",
		Reporter:    "Unknown Reporter",
		Created:     core.FormatDate(time.Time(fields.Created)),
		Description: core.CleanText(fields.Description),
		Link:        c.config.BrowseURL(issue.Key),
	}

	if fields.Summary != "" {
		out.Title = fields.Summary
	}
	if fields.Type.Name != "" {
		out.Type = fields.Type.Name
	}
	if fields.Status != nil && fields.Status.Name != "" {
		out.Status = fields.Status.Name
	}
	if fields.Priority != nil && fields.Priority.Name != "" {
		out.Priority = fields.Priority.Name
	}
	if fields.Assignee != nil && fields.Assignee.DisplayName != "" {
		out.Assignee = fields.Assignee.DisplayName
	}
	if fields.Reporter != nil && fields.Reporter.DisplayName != "" {
		out.Reporter = fields.Reporter.DisplayName
	}

	if fields.Comments != nil {
		for _, comment := range fields.Comments.Comments {
			if comment == nil {
				continue
			}

			author := comment.Author.DisplayName
			if author == "" {
				author = "Unknown"
			}

			out.Comments = append(out.Comments, core.Comment{
				Body:    core.CleanText(comment.Body),
				Created: core.FormatDate(core.ParseJiraTime(comment.Created)),
				Author:  author,
			})
		}
	}

	return out
}
