package taskgrid

import "path/filepath"

func taskgridDir(root string) string {
	return filepath.Join(root, ".taskgrid")
}

func configPath(root string) string { return filepath.Join(taskgridDir(root), "config.yaml") }
func serverStatePath(root string) string {
	return filepath.Join(taskgridDir(root), "server.json")
}
func defaultDataPath(root string) string { return filepath.Join(taskgridDir(root), "tasks.csv") }
func defaultReportDir(root string) string {
	return filepath.Join(taskgridDir(root), "report")
}
