package resources

import "fmt"

// Snapshot holds one host's resource metrics. Fields degrade to
// zero/unknown independently on partial parse failure; a snapshot is
// never discarded because a single field failed to parse.
type Snapshot struct {
	CPUUsagePct float64 `json:"cpu_usage_pct"`

	MemoryUsagePct float64 `json:"memory_usage_pct"`
	MemoryUsedGB   float64 `json:"memory_used_gb"`
	MemoryTotalGB  float64 `json:"memory_total_gb"`

	DiskUsagePct float64 `json:"disk_usage_pct"`
	DiskUsed     string  `json:"disk_used"`
	DiskFree     string  `json:"disk_free"`
	DiskTotal    string  `json:"disk_total"`

	Uptime      string `json:"uptime"`
	LoadAverage string `json:"load_average"`
}

// gb formats a binary-gigabyte count the way the snapshot stores disk
// sizes: one decimal plus the GB suffix.
func gb(v float64) string {
	return fmt.Sprintf("%.1fGB", v)
}

// kbToGB converts kibibytes to binary gigabytes.
func kbToGB(kb float64) float64 {
	return kb / 1024 / 1024
}

// bytesToGB converts bytes to binary gigabytes.
func bytesToGB(b float64) float64 {
	return b / 1024 / 1024 / 1024
}
