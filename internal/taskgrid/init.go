package taskgrid

import (
	"context"
)

// InitWorkspace scaffolds .taskgrid/ with a default config and a sample
// task source so the chart/export/up commands work out of the box.
func InitWorkspace(ctx context.Context, root string) error {
	_ = ctx

	if err := ensureDir(taskgridDir(root)); err != nil {
		return err
	}

	if !exists(configPath(root)) {
		cfg := defaultConfig()
		if err := writeYAMLFile(configPath(root), &cfg); err != nil {
			return err
		}
	}

	if !exists(defaultDataPath(root)) {
		if err := writeFileAtomic(defaultDataPath(root), []byte(sampleTasksCSV), 0o644); err != nil {
			return err
		}
	}

	return nil
}

const sampleTasksCSV = `quarter,period,start,end,assignee,category,task,deliverable
Q1,W01,2026/01/05,2026/01/16,Mori,Platform,Storefront skeleton,Deployable storefront shell
Q1,W03,2026/01/19,2026/02/06,Sato,UX,Checkout flow design,Clickable prototype
Q1,W06,2026/02/09,2026/02/27,Mori,Content,Product catalog import,★ Catalog live
Q1,W10,2026/03/02,2026/03/20,Sato,Marketing,Launch campaign plan,Campaign brief
Q2,W14,2026/04/01,2026/04/24,Mori,Data,Sales analytics baseline,★ Dashboard v1
`
