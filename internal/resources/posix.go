package resources

import (
	"strconv"
	"strings"
	"time"

	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// posixStrategy collects metrics from Linux and ESXi hosts. Four
// independent commands; each one's output is parsed on its own so a
// failure in one metric never poisons the others.
type posixStrategy struct{}

const (
	posixCPUCmd  = `top -bn1 | grep 'Cpu(s)' | awk '{print $2}' | awk -F'%' '{print $1}'`
	posixMemCmd  = `free | grep Mem | awk '{printf "%.1f %.1f %.1f", $3/$2 * 100.0, $3/1024/1024, $2/1024/1024}'`
	posixDiskCmd = `df -k / | awk 'NR==2{printf "%s %s %s %s", $3, $2, $4, $5}'`
	posixLoadCmd = `uptime | awk -F'load average:' '{print $2}'`
	posixUpCmd   = `uptime -p`
)

func (p *posixStrategy) collect(s sshutil.Session, timeout time.Duration) (*Snapshot, int) {
	snapshot := &Snapshot{
		DiskUsed:    "0GB",
		DiskTotal:   "0GB",
		DiskFree:    "0GB",
		LoadAverage: "N/A",
		Uptime:      "Unknown",
	}
	collected := 0

	if out, ok := runTrimmed(s, posixCPUCmd, timeout); ok {
		collected++
		snapshot.CPUUsagePct = parseCPU(out)
	}

	if out, ok := runTrimmed(s, posixMemCmd, timeout); ok {
		collected++
		parseMemorySummary(out, snapshot)
	}

	if out, ok := runTrimmed(s, posixDiskCmd, timeout); ok {
		collected++
		parseDiskSummary(out, snapshot)
	}

	if out, ok := runTrimmed(s, posixLoadCmd, timeout); ok {
		collected++
		snapshot.LoadAverage = out
	}

	if out, ok := runTrimmed(s, posixUpCmd, timeout); ok {
		collected++
		snapshot.Uptime = out
	}

	return snapshot, collected
}

// parseCPU handles top's Cpu(s) column, tolerating a stray % suffix.
func parseCPU(out string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(out, "%"), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseMemorySummary expects "pct usedGB totalGB", e.g. "50.0 4.0 8.0".
func parseMemorySummary(out string, snapshot *Snapshot) {
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return
	}
	pct, err1 := strconv.ParseFloat(fields[0], 64)
	used, err2 := strconv.ParseFloat(fields[1], 64)
	total, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	snapshot.MemoryUsagePct = pct
	snapshot.MemoryUsedGB = used
	snapshot.MemoryTotalGB = total
}

// parseDiskSummary expects df -k root filesystem columns
// "usedKB totalKB freeKB pct%"; sizes are normalized to binary GB.
func parseDiskSummary(out string, snapshot *Snapshot) {
	fields := strings.Fields(out)
	if len(fields) < 4 {
		return
	}
	usedKB, err1 := strconv.ParseFloat(fields[0], 64)
	totalKB, err2 := strconv.ParseFloat(fields[1], 64)
	freeKB, err3 := strconv.ParseFloat(fields[2], 64)
	pct, err4 := strconv.ParseFloat(strings.TrimSuffix(fields[3], "%"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return
	}
	snapshot.DiskUsed = gb(kbToGB(usedKB))
	snapshot.DiskTotal = gb(kbToGB(totalKB))
	snapshot.DiskFree = gb(kbToGB(freeKB))
	snapshot.DiskUsagePct = pct
}
