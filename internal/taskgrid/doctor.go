package taskgrid

import (
	"context"
	"fmt"
	"path/filepath"
)

type DoctorReport struct {
	Problems []string
	Warnings []string
}

// Doctor checks that the workspace is usable: config parses, the task
// source exists and loads, and every record holds the date invariants.
func Doctor(ctx context.Context, root string) (*DoctorReport, error) {
	_ = ctx
	r := &DoctorReport{}

	if !exists(taskgridDir(root)) {
		r.Problems = append(r.Problems, fmt.Sprintf("missing %s (run `taskgrid init`)", rel(root, taskgridDir(root))))
		return r, nil
	}

	cfg, err := loadConfigOrDefault(root)
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
		return r, nil
	}
	if cfg.Port == 0 {
		r.Warnings = append(r.Warnings, "config port is 0")
	}
	if len(cfg.CategoryColors) == 0 && len(cfg.AssigneeColors) == 0 {
		r.Warnings = append(r.Warnings, "no color maps configured; all cells will use the fallback color")
	}

	data := cfg.dataPath(root)
	if !exists(data) {
		r.Problems = append(r.Problems, fmt.Sprintf("missing task source %s", rel(root, data)))
		return r, nil
	}

	tasks, err := LoadTasks(data)
	if err != nil {
		r.Problems = append(r.Problems, err.Error())
		return r, nil
	}
	if len(tasks) == 0 {
		r.Warnings = append(r.Warnings, "task source is empty")
	}
	warned := map[string]bool{}
	for _, t := range tasks {
		if _, mapped := cfg.CategoryColors[t.Category]; !mapped && len(cfg.CategoryColors) > 0 && !warned[t.Category] {
			warned[t.Category] = true
			r.Warnings = append(r.Warnings, fmt.Sprintf("category %q has no color entry", t.Category))
		}
	}

	return r, nil
}

func rel(root, p string) string {
	if rp, err := filepath.Rel(root, p); err == nil {
		return rp
	}
	return p
}
