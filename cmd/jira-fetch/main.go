package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ksysoev/jira-fetch/pkg/core"
	"github.com/ksysoev/jira-fetch/pkg/jira"
	"github.com/ksysoev/jira-fetch/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jira-fetch",
		Short:         "Fetch cleaned issue and project data from a Jira site",
		Long:          "jira-fetch talks to a Jira Cloud site using credentials from the environment (JIRA_SITE, JIRA_EMAIL, JIRA_API_TOKEN) and prints flattened, cleaned issue records.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("json", false, "emit JSON instead of tables")

	cmd.AddCommand(
		newProjectsCmd(),
		newIssueCmd(),
		newSearchCmd(),
		newProjectCmd(),
	)

	return cmd
}

// newFetcher loads and validates configuration and builds the client
func newFetcher() (*jira.Client, error) {
	config := core.LoadConfig()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := log.New(log.ParseLevel(config.LogLevel), "jira-fetch")

	return jira.NewClient(config, logger)
}

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List all projects visible to the configured account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newFetcher()
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON(cmd) {
				return printJSON(projects)
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Key", "Name"})
			for _, project := range projects {
				t.AppendRow(table.Row{project.Key, project.Name})
			}
			t.Render()

			return nil
		},
	}
}

func newIssueCmd() *cobra.Command {
	var expand string

	cmd := &cobra.Command{
		Use:   "issue KEY",
		Short: "Fetch a single issue with cleaned description and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFetcher()
			if err != nil {
				return err
			}

			issue, err := client.GetIssue(cmd.Context(), args[0], expand)
			if err != nil {
				return err
			}

			if asJSON(cmd) {
				return printJSON(issue)
			}

			printIssue(issue)
			return nil
		},
	}

	cmd.Flags().StringVar(&expand, "expand", "", "comma-separated Jira expand parameters")

	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		start  int
		limit  int
		fields string
		expand string
	)

	cmd := &cobra.Command{
		Use:   "search JQL",
		Short: "Search issues with a JQL query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFetcher()
			if err != nil {
				return err
			}

			opts := jira.SearchOptions{
				StartAt: start,
				Limit:   limit,
				Expand:  expand,
			}
			if fields != "" {
				for _, field := range strings.Split(fields, ",") {
					opts.Fields = append(opts.Fields, strings.TrimSpace(field))
				}
			}

			issues, err := client.SearchIssues(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			if asJSON(cmd) {
				return printJSON(issues)
			}

			printIssueTable(issues)
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "index of the first result to return")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of results to return")
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated list of fields to request")
	cmd.Flags().StringVar(&expand, "expand", "", "comma-separated Jira expand parameters")

	return cmd
}

func newProjectCmd() *cobra.Command {
	var (
		start int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "project KEY",
		Short: "List a project's issues, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFetcher()
			if err != nil {
				return err
			}

			issues, err := client.GetProjectIssues(cmd.Context(), args[0], start, limit)
			if err != nil {
				return err
			}

			if asJSON(cmd) {
				return printJSON(issues)
			}

			printIssueTable(issues)
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "index of the first result to return")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of results to return")

	return cmd
}

func asJSON(cmd *cobra.Command) bool {
	value, _ := cmd.Flags().GetBool("json")
	return value
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func printIssueTable(issues []core.Issue) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Key", "Type", "Status", "Priority", "Created", "Title"})
	for _, issue := range issues {
		t.AppendRow(table.Row{issue.Key, issue.Type, issue.Status, issue.Priority, issue.Created, issue.Title})
	}
	t.Render()
}

func printIssue(issue core.Issue) {
	fmt.Printf("%s: %s\n", issue.Key, issue.Title)
	fmt.Printf("Type:     %s\n", issue.Type)
	fmt.Printf("Status:   %s\n", issue.Status)
	fmt.Printf("Priority: %s\n", issue.Priority)
	fmt.Printf("Created:  %s\n", issue.Created)
	fmt.Printf("Assignee: %s\n", issue.Assignee)
	fmt.Printf("Reporter: %s\n", issue.Reporter)
	fmt.Printf("Link:     %s\n", issue.Link)

	if issue.Description != "" {
		fmt.Printf("\n%s\n", issue.Description)
	}

	if len(issue.Comments) > 0 {
		fmt.Printf("\nComments (%d):\n", len(issue.Comments))
		for _, comment := range issue.Comments {
			fmt.Printf("  [%s] %s: %s\n", comment.Created, comment.Author, comment.Body)
		}
	}
}
