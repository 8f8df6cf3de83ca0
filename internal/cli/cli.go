package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flip-z/taskgrid/internal/taskgrid"
)

func Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(os.Stdout)
		return 0
	}

	cmd := args[0]
	switch cmd {
	case "init":
		return cmdInit(ctx, args[1:])
	case "doctor":
		return cmdDoctor(ctx, args[1:])
	case "summary":
		return cmdSummary(ctx, args[1:])
	case "chart":
		return cmdChart(ctx, args[1:])
	case "export":
		return cmdExport(ctx, args[1:])
	case "report":
		return cmdReport(ctx, args[1:])
	case "up":
		return cmdUp(ctx, args[1:])
	case "down":
		return cmdDown(ctx, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		return 2
	}
}

func usage(w *os.File) {
	fmt.Fprintln(w, "taskgrid - calendar-grid task dashboard and workbook export")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskgrid init")
	fmt.Fprintln(w, "  taskgrid up")
	fmt.Fprintln(w, "  taskgrid down")
	fmt.Fprintln(w, "  taskgrid summary")
	fmt.Fprintln(w, "  taskgrid chart --out chart.svg")
	fmt.Fprintln(w, "  taskgrid export --out tasks.xlsx [--granularity week] [--sort start_date]")
	fmt.Fprintln(w, "  taskgrid report [--out DIR]")
	fmt.Fprintln(w, "  taskgrid doctor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Workspace layout:")
	fmt.Fprintln(w, "  .taskgrid/config.yaml")
	fmt.Fprintln(w, "  .taskgrid/tasks.csv")
	fmt.Fprintln(w)
}

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// renderFlags are the flags shared by chart, export, report, and summary.
type renderFlags struct {
	sortKey     string
	dir         string
	granularity string
	group       string
	color       string
	data        string
	quarters    multiFlag
	assignees   multiFlag
	categories  multiFlag
}

func (rf *renderFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&rf.sortKey, "sort", "start_date", "sort key: start_date|assignee|category")
	fs.StringVar(&rf.dir, "dir", "asc", "sort direction: asc|desc")
	fs.StringVar(&rf.granularity, "granularity", "week", "bucket granularity: day|week|month")
	fs.StringVar(&rf.group, "group", "none", "row grouping: none|assignee|category")
	fs.StringVar(&rf.color, "color", "category", "color-by dimension: category|assignee")
	fs.StringVar(&rf.data, "data", "", "task source CSV (default: configured data_path)")
	fs.Var(&rf.quarters, "quarter", "filter by quarter (repeatable)")
	fs.Var(&rf.assignees, "assignee", "filter by assignee (repeatable)")
	fs.Var(&rf.categories, "category", "filter by category (repeatable)")
}

func (rf *renderFlags) options() taskgrid.RequestOptions {
	return taskgrid.RequestOptions{
		SortKey:     taskgrid.SortKey(rf.sortKey),
		Direction:   taskgrid.Direction(rf.dir),
		Granularity: taskgrid.Granularity(rf.granularity),
		GroupBy:     taskgrid.GroupBy(rf.group),
		ColorBy:     taskgrid.ColorBy(rf.color),
		DataPath:    rf.data,
		Filter: taskgrid.Filter{
			Quarters:   rf.quarters,
			Assignees:  rf.assignees,
			Categories: rf.categories,
		},
	}
}

func cmdInit(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "init takes no arguments")
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := taskgrid.InitWorkspace(ctx, root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("Initialized .taskgrid/")
	return 0
}

func cmdDoctor(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	report, err := taskgrid.Doctor(ctx, root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(report.Problems) == 0 {
		fmt.Println("OK")
		for _, w := range report.Warnings {
			fmt.Println("WARN:", w)
		}
		return 0
	}
	for _, p := range report.Problems {
		fmt.Println("PROBLEM:", p)
	}
	for _, w := range report.Warnings {
		fmt.Println("WARN:", w)
	}
	return 1
}

func cmdSummary(ctx context.Context, args []string) int {
	_ = ctx
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var rf renderFlags
	rf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	req, _, err := taskgrid.NewRequest(root, rf.options())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sum := taskgrid.Summarize(req.Tasks)
	fmt.Printf("Tasks:      %d\n", sum.Total)
	fmt.Printf("Span:       %s\n", sum.SpanLabel())
	fmt.Printf("Milestones: %d\n", sum.Milestones)
	printCounts("Assignee", sum.ByAssignee)
	printCounts("Category", sum.ByCategory)
	printCounts("Quarter", sum.ByQuarter)
	return 0
}

func printCounts(name string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("%s:\n", name)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, counts[k])
	}
}

func cmdChart(ctx context.Context, args []string) int {
	_ = ctx
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var rf renderFlags
	rf.register(fs)
	out := fs.String("out", "chart.svg", "output SVG path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	req, _, err := taskgrid.NewRequest(root, rf.options())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := os.WriteFile(*out, []byte(req.ChartSVG()), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("Wrote %s\n", *out)
	return 0
}

func cmdExport(ctx context.Context, args []string) int {
	_ = ctx
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var rf renderFlags
	rf.register(fs)
	out := fs.String("out", "tasks.xlsx", "output workbook path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	req, _, err := taskgrid.NewRequest(root, rf.options())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	buf, err := req.Workbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("Wrote %s\n", *out)
	return 0
}

func cmdReport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var rf renderFlags
	rf.register(fs)
	out := fs.String("out", "", "output directory (default: .taskgrid/report)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	req, _, err := taskgrid.NewRequest(root, rf.options())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	outDir := *out
	if strings.TrimSpace(outDir) == "" {
		outDir = filepath.Join(root, ".taskgrid", "report")
	} else if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}

	if err := taskgrid.ExportReport(ctx, outDir, req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("Exported report to %s\n", outDir)
	return 0
}

func cmdUp(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	port := fs.Int("port", 0, "override config port")
	foreground := fs.Bool("foreground", false, "run in foreground (default: background)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if !*foreground {
		pid, addr, err := taskgrid.SpawnBackgroundServer(ctx, root, taskgrid.SpawnOptions{
			PortOverride: *port,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("Started (pid %d) on %s\n", pid, addr)
		return 0
	}

	addr, err := taskgrid.Up(ctx, root, taskgrid.UpOptions{PortOverride: *port})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("Listening on %s\n", addr)
	<-ctx.Done()
	return 0
}

func cmdDown(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("down", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	force := fs.Bool("force", false, "send SIGKILL if needed")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	res, err := taskgrid.Down(ctx, root, taskgrid.DownOptions{Force: *force})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !res.WasRunning {
		fmt.Println("Not running")
		return 0
	}
	fmt.Printf("Stopped pid %d\n", res.PID)
	return 0
}
