package taskgrid

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"
)

type UpOptions struct {
	PortOverride int
}

// Up serves the dashboard on localhost: an interactive page at /, the raw
// chart at /chart.svg, and the workbook download at /export.xlsx. Every
// request re-reads config and task source and builds its own RenderRequest,
// so concurrent requests with different settings never share state.
func Up(ctx context.Context, root string, opt UpOptions) (addr string, err error) {
	cfg, err := loadConfigOrDefault(root)
	if err != nil {
		return "", err
	}
	port := cfg.Port
	if opt.PortOverride != 0 {
		port = opt.PortOverride
	}
	if port == 0 {
		port = 8050
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { uiDashboard(w, r, root) })
	mux.HandleFunc("/chart.svg", func(w http.ResponseWriter, r *http.Request) { uiChart(w, r, root) })
	mux.HandleFunc("/export.xlsx", func(w http.ResponseWriter, r *http.Request) { uiExport(w, r, root) })

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return "", err
	}
	addr = ln.Addr().String()

	// Refuse to start if an existing server is already running.
	if st, err := readServerState(root); err == nil && pidAlive(st.PID) {
		_ = ln.Close()
		return "", fmt.Errorf("server already running (pid %d) on %s", st.PID, st.Addr)
	}
	_ = clearServerState(root)
	if err := writeServerState(root, &ServerState{
		PID:       os.Getpid(),
		Addr:      addr,
		DataPath:  cfg.dataPath(root),
		StartedAt: time.Now(),
	}); err != nil {
		_ = ln.Close()
		return "", err
	}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
		_ = clearServerState(root)
	}()
	go func() { _ = server.Serve(ln) }()
	return addr, nil
}

// buildRequest assembles a fresh snapshot + configuration for one HTTP
// request. Query parameters: sort, dir, granularity, group, color, and
// repeatable quarter/assignee/category filters.
func buildRequest(q url.Values, root string) (RenderRequest, []Task, error) {
	return NewRequest(root, RequestOptions{
		SortKey:     SortKey(q.Get("sort")),
		Direction:   Direction(q.Get("dir")),
		Granularity: Granularity(q.Get("granularity")),
		GroupBy:     GroupBy(q.Get("group")),
		ColorBy:     ColorBy(q.Get("color")),
		Filter: Filter{
			Quarters:   q["quarter"],
			Assignees:  q["assignee"],
			Categories: q["category"],
		},
	})
}

func uiDashboard(w http.ResponseWriter, r *http.Request, root string) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, all, err := buildRequest(r.URL.Query(), root)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

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

	type facet struct {
		Value   string
		Checked bool
	}
	facets := func(param string, pick func(Task) string) []facet {
		seen := map[string]bool{}
		var values []string
		for _, t := range all {
			v := pick(t)
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Strings(values)
		checked := map[string]bool{}
		for _, v := range r.URL.Query()[param] {
			checked[v] = true
		}
		out := make([]facet, 0, len(values))
		for _, v := range values {
			out = append(out, facet{Value: v, Checked: checked[v]})
		}
		return out
	}

	exportURL := "/export.xlsx"
	if r.URL.RawQuery != "" {
		exportURL += "?" + r.URL.RawQuery
	}

	tpl := template.Must(template.New("dashboard").Parse(uiDashboardHTML))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tpl.Execute(w, map[string]any{
		"Chart":       template.HTML(req.ChartSVG()),
		"Total":       sum.Total,
		"Span":        sum.SpanLabel(),
		"Milestones":  sum.Milestones,
		"Legend":      legend,
		"Quarters":    facets("quarter", func(t Task) string { return t.Quarter }),
		"Assignees":   facets("assignee", func(t Task) string { return t.Assignee }),
		"Categories":  facets("category", func(t Task) string { return t.Category }),
		"SortKey":     string(req.SortKey),
		"Dir":         string(req.Direction),
		"Granularity": string(req.Granularity),
		"Group":       string(req.GroupBy),
		"Color":       string(req.ColorBy),
		"ExportURL":   exportURL,
	})
}

func uiChart(w http.ResponseWriter, r *http.Request, root string) {
	req, _, err := buildRequest(r.URL.Query(), root)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(req.ChartSVG()))
}

func uiExport(w http.ResponseWriter, r *http.Request, root string) {
	req, _, err := buildRequest(r.URL.Query(), root)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	buf, err := req.Workbook()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	name := fmt.Sprintf("tasks_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(buf.Bytes())
}

const uiDashboardHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>taskgrid</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #333; }
h1 { font-size: 20px; }
form { background: #f7f7f7; border: 1px solid #ddd; padding: 12px; margin-bottom: 16px; }
fieldset { border: none; display: inline-block; vertical-align: top; margin-right: 24px; }
legend { font-weight: bold; font-size: 12px; }
label { font-size: 13px; margin-right: 8px; }
.summary span { margin-right: 24px; }
.legendrow li { list-style: none; display: inline-block; margin-right: 16px; font-size: 13px; }
.swatch { display: inline-block; width: 12px; height: 12px; margin-right: 4px; }
.actions { margin: 8px 0; }
</style>
</head>
<body>
<h1>Task dashboard</h1>
<form method="get" action="/">
<fieldset><legend>Quarter</legend>
{{range .Quarters}}<label><input type="checkbox" name="quarter" value="{{.Value}}"{{if .Checked}} checked{{end}}>{{.Value}}</label>{{end}}
</fieldset>
<fieldset><legend>Assignee</legend>
{{range .Assignees}}<label><input type="checkbox" name="assignee" value="{{.Value}}"{{if .Checked}} checked{{end}}>{{.Value}}</label>{{end}}
</fieldset>
<fieldset><legend>Category</legend>
{{range .Categories}}<label><input type="checkbox" name="category" value="{{.Value}}"{{if .Checked}} checked{{end}}>{{.Value}}</label>{{end}}
</fieldset>
<fieldset><legend>Sort</legend>
<select name="sort">
<option value="start_date"{{if eq .SortKey "start_date"}} selected{{end}}>start date</option>
<option value="assignee"{{if eq .SortKey "assignee"}} selected{{end}}>assignee</option>
<option value="category"{{if eq .SortKey "category"}} selected{{end}}>category</option>
</select>
<select name="dir">
<option value="asc"{{if eq .Dir "asc"}} selected{{end}}>ascending</option>
<option value="desc"{{if eq .Dir "desc"}} selected{{end}}>descending</option>
</select>
</fieldset>
<fieldset><legend>Granularity</legend>
<select name="granularity">
<option value="day"{{if eq .Granularity "day"}} selected{{end}}>day</option>
<option value="week"{{if eq .Granularity "week"}} selected{{end}}>week</option>
<option value="month"{{if eq .Granularity "month"}} selected{{end}}>month</option>
</select>
</fieldset>
<fieldset><legend>Group / color</legend>
<select name="group">
<option value="none"{{if eq .Group "none"}} selected{{end}}>no grouping</option>
<option value="assignee"{{if eq .Group "assignee"}} selected{{end}}>by assignee</option>
<option value="category"{{if eq .Group "category"}} selected{{end}}>by category</option>
</select>
<select name="color">
<option value="category"{{if eq .Color "category"}} selected{{end}}>color by category</option>
<option value="assignee"{{if eq .Color "assignee"}} selected{{end}}>color by assignee</option>
</select>
</fieldset>
<div class="actions">
<button type="submit">Apply</button>
<a href="{{.ExportURL}}">Download workbook</a>
</div>
</form>
<p class="summary">
<span><b>{{.Total}}</b> tasks</span>
<span>{{.Span}}</span>
<span><b>{{.Milestones}}</b> milestones</span>
</p>
<ul class="legendrow">
{{range .Legend}}<li><span class="swatch" style="background:{{.Color}}"></span>{{.Name}}</li>{{end}}
</ul>
{{.Chart}}
</body>
</html>
`
