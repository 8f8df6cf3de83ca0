package taskgrid

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ExportReport writes a static HTML report: an index page with the timeline
// chart, summary, and legend, plus one page per task with its deliverable
// text rendered as markdown.
func ExportReport(ctx context.Context, outDir string, req RenderRequest) error {
	_ = ctx

	if err := ensureDir(outDir); err != nil {
		return err
	}
	if err := ensureDir(filepath.Join(outDir, "tasks")); err != nil {
		return err
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	sorted := req.Sorted()
	sum := Summarize(req.Tasks)
	colors := req.colors()

	type legendEntry struct {
		Name  string
		Color string
	}
	legend := make([]legendEntry, 0, len(colors))
	for _, k := range colors.Keys() {
		legend = append(legend, legendEntry{Name: k, Color: colors[k]})
	}

	indexT := template.Must(template.New("index").Parse(reportIndexHTML))
	taskT := template.Must(template.New("task").Parse(reportTaskHTML))

	if err := writeHTML(filepath.Join(outDir, "index.html"), indexT, map[string]any{
		"Chart":      template.HTML(req.ChartSVG()),
		"Summary":    sum,
		"Span":       sum.SpanLabel(),
		"Legend":     legend,
		"Tasks":      sorted,
		"ByAssignee": sum.ByAssignee,
		"ByCategory": sum.ByCategory,
		"ByQuarter":  sum.ByQuarter,
	}); err != nil {
		return err
	}

	for _, t := range sorted {
		var body template.HTML
		if strings.TrimSpace(t.Deliverable) != "" {
			var sb strings.Builder
			if err := md.Convert([]byte(t.Deliverable), &sb); err == nil {
				body = template.HTML(sb.String()) // rendered markdown
			}
		}
		page := filepath.Join(outDir, "tasks", fmt.Sprintf("%d.html", t.ID))
		if err := writeHTML(page, taskT, map[string]any{
			"Task":        t,
			"Deliverable": body,
			"Milestone":   t.IsMilestone(),
			"Duration":    t.Duration(),
			"StartLabel":  t.Start.Format(dateLayout),
			"EndLabel":    t.End.Format(dateLayout),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeHTML(path string, t *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

const reportIndexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>taskgrid report</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #333; }
h1 { font-size: 20px; }
.summary span { margin-right: 24px; }
.legend { margin: 12px 0; }
.legend li { list-style: none; display: inline-block; margin-right: 16px; }
.swatch { display: inline-block; width: 12px; height: 12px; margin-right: 4px; }
table { border-collapse: collapse; margin-top: 16px; }
td, th { border: 1px solid #ddd; padding: 4px 8px; font-size: 13px; }
</style>
</head>
<body>
<h1>Task timeline</h1>
<p class="summary">
<span><b>{{.Summary.Total}}</b> tasks</span>
<span>{{.Span}}</span>
<span><b>{{.Summary.Milestones}}</b> milestones</span>
</p>
<ul class="legend">
{{range .Legend}}<li><span class="swatch" style="background:{{.Color}}"></span>{{.Name}}</li>{{end}}
</ul>
{{.Chart}}
<table>
<tr><th>#</th><th>Task</th><th>Assignee</th><th>Category</th><th>Start</th><th>End</th></tr>
{{range .Tasks}}<tr>
<td>{{.ID}}</td>
<td><a href="tasks/{{.ID}}.html">{{.Title}}</a></td>
<td>{{.Assignee}}</td>
<td>{{.Category}}</td>
<td>{{.Start.Format "2006/01/02"}}</td>
<td>{{.End.Format "2006/01/02"}}</td>
</tr>{{end}}
</table>
</body>
</html>
`

const reportTaskHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Task.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #333; }
dt { font-weight: bold; }
dd { margin: 0 0 8px 0; }
</style>
</head>
<body>
<p><a href="../index.html">&larr; back</a></p>
<h1>{{if .Milestone}}&#9733; {{end}}{{.Task.Title}}</h1>
<dl>
<dt>Assignee</dt><dd>{{.Task.Assignee}}</dd>
<dt>Category</dt><dd>{{.Task.Category}}</dd>
<dt>Quarter</dt><dd>{{.Task.Quarter}}</dd>
<dt>Span</dt><dd>{{.StartLabel}} &ndash; {{.EndLabel}} ({{.Duration}} days)</dd>
</dl>
{{if .Deliverable}}<h2>Deliverable</h2>{{.Deliverable}}{{end}}
</body>
</html>
`
