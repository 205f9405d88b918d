/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/octoguard/octoguard/validate"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newReportTable creates a markdown-style table writer shared by the run
// reports.
func newReportTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// printTriageReport writes a one-row summary of a triage run.
func printTriageReport(w io.Writer, result validate.TriageResult) {
	table := newReportTable([]string{"Classification", "Priority", "Labels", "Human review"}, w)
	_ = table.Append([]string{
		string(result.Classification),
		string(result.Priority),
		strings.Join(result.Labels, ", "),
		strconv.FormatBool(result.NeedsHumanReview),
	})
	_ = table.Render()
	if result.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", result.Summary)
	}
}

// printReviewReport writes the findings of a review run.
func printReviewReport(w io.Writer, result validate.ReviewResult) {
	fmt.Fprintf(w, "Assessment: %s (recommended action: %s)\n\n", result.Assessment, result.RecommendedAction)

	findings := len(result.SecurityIssues) + len(result.QualityIssues)
	if findings > 0 {
		table := newReportTable([]string{"Kind", "Severity", "Location", "Description"}, w)
		for _, issue := range result.SecurityIssues {
			_ = table.Append(findingRow("security", issue))
		}
		for _, issue := range result.QualityIssues {
			_ = table.Append(findingRow("quality", issue))
		}
		_ = table.Render()
	}
	if result.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", result.Summary)
	}
}

func findingRow(kind string, issue validate.Issue) []string {
	location := issue.File
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.File, issue.Line)
	}
	return []string{kind, string(issue.Severity), location, issue.Description}
}
