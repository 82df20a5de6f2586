package resources

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/cobaltax/fleetwatch/pkg/sshutil"
)

// windowsStrategy collects metrics through PowerShell CIM queries.
// Structured queries return compressed JSON so parsing doesn't depend on
// the console's locale or column widths.
type windowsStrategy struct{}

const (
	winCPUCmd  = `powershell -NoProfile -Command "(Get-CimInstance Win32_Processor | Measure-Object -Property LoadPercentage -Average).Average"`
	winMemCmd  = `powershell -NoProfile -Command "Get-CimInstance Win32_OperatingSystem | Select-Object TotalVisibleMemorySize,FreePhysicalMemory | ConvertTo-Json -Compress"`
	winDiskCmd = `powershell -NoProfile -Command "Get-CimInstance Win32_LogicalDisk -Filter \"DeviceID='C:'\" | Select-Object Size,FreeSpace | ConvertTo-Json -Compress"`
	winUpCmd   = `powershell -NoProfile -Command "(Get-Date) - (Get-CimInstance Win32_OperatingSystem).LastBootUpTime"`
)

// winMemInfo mirrors the Win32_OperatingSystem memory fields (KB units).
type winMemInfo struct {
	TotalVisibleMemorySize float64 `json:"TotalVisibleMemorySize"`
	FreePhysicalMemory     float64 `json:"FreePhysicalMemory"`
}

// winDiskInfo mirrors the Win32_LogicalDisk size fields (byte units).
type winDiskInfo struct {
	Size      float64 `json:"Size"`
	FreeSpace float64 `json:"FreeSpace"`
}

func (w *windowsStrategy) collect(s sshutil.Session, timeout time.Duration) (*Snapshot, int) {
	snapshot := &Snapshot{
		DiskUsed:  "0GB",
		DiskTotal: "0GB",
		DiskFree:  "0GB",
		// Windows has no POSIX load average.
		LoadAverage: "N/A (Windows)",
		Uptime:      "Unknown",
	}
	collected := 0

	if out, ok := runTrimmed(s, winCPUCmd, timeout); ok {
		collected++
		if v, err := strconv.ParseFloat(out, 64); err == nil {
			snapshot.CPUUsagePct = v
		}
	}

	if out, ok := runTrimmed(s, winMemCmd, timeout); ok {
		collected++
		parseWindowsMemory(out, snapshot)
	}

	if out, ok := runTrimmed(s, winDiskCmd, timeout); ok {
		collected++
		parseWindowsDisk(out, snapshot)
	}

	if out, ok := runTrimmed(s, winUpCmd, timeout); ok {
		collected++
		snapshot.Uptime = out
	}

	return snapshot, collected
}

func parseWindowsMemory(out string, snapshot *Snapshot) {
	var mem winMemInfo
	if err := json.Unmarshal([]byte(out), &mem); err != nil {
		return
	}
	usedKB := mem.TotalVisibleMemorySize - mem.FreePhysicalMemory
	if usedKB < 0 {
		usedKB = 0
	}
	snapshot.MemoryTotalGB = kbToGB(mem.TotalVisibleMemorySize)
	snapshot.MemoryUsedGB = kbToGB(usedKB)
	if mem.TotalVisibleMemorySize > 0 {
		snapshot.MemoryUsagePct = usedKB / mem.TotalVisibleMemorySize * 100.0
	}
}

func parseWindowsDisk(out string, snapshot *Snapshot) {
	var disk winDiskInfo
	if err := json.Unmarshal([]byte(out), &disk); err != nil {
		return
	}
	used := disk.Size - disk.FreeSpace
	if used < 0 {
		used = 0
	}
	snapshot.DiskTotal = gb(bytesToGB(disk.Size))
	snapshot.DiskFree = gb(bytesToGB(disk.FreeSpace))
	snapshot.DiskUsed = gb(bytesToGB(used))
	if disk.Size > 0 {
		snapshot.DiskUsagePct = used / disk.Size * 100.0
	}
}
