package models

// SystemSnapshot is one complete poll of the system. It is rebuilt from
// scratch on every refresh and never updated in place.
type SystemSnapshot struct {
	OperatingSystem   string    `json:"os_name"`
	Kernel            string    `json:"kernel_version"`
	MemoryUtilization float64   `json:"mem_utilization"` // 0-1
	CPUUtilization    float64   `json:"cpu_utilization"` // 0-1, since boot
	UpTime            int64     `json:"uptime_seconds"`
	TotalProcesses    int       `json:"total_processes"`
	RunningProcesses  int       `json:"running_processes"`
	Processes         []Process `json:"processes"` // ascending CPU utilization
}
