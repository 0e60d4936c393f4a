package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
)

const unknownContainer = "unknown"

// systemProbe reads resource usage and identity at the container boundary.
type systemProbe struct {
	// memoryFiles are tried in order; the first parseable one wins.
	memoryFiles  []string
	hostnameFile string
	procRoot     string
}

func defaultSystemProbe() *systemProbe {
	return &systemProbe{
		memoryFiles: []string{
			"/sys/fs/cgroup/memory.current",
			"/sys/fs/cgroup/memory/memory.usage_in_bytes",
		},
		hostnameFile: "/etc/hostname",
		procRoot:     procfs.DefaultMountPoint,
	}
}

// memoryUsage returns bytes in use by the container. Without a cgroup file it
// falls back to host-wide usage, and to 0 when nothing can be read.
func (p *systemProbe) memoryUsage() uint64 {
	for _, f := range p.memoryFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		if v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64); err == nil {
			return v
		}
	}
	return p.hostMemoryUsage()
}

func (p *systemProbe) hostMemoryUsage() uint64 {
	fs, err := procfs.NewFS(p.procRoot)
	if err != nil {
		return 0
	}
	mi, err := fs.Meminfo()
	if err != nil || mi.MemTotal == nil || mi.MemAvailable == nil {
		return 0
	}
	if *mi.MemAvailable > *mi.MemTotal {
		return 0
	}
	// meminfo reports kB
	return (*mi.MemTotal - *mi.MemAvailable) * 1024
}

func (p *systemProbe) containerName() string {
	data, err := os.ReadFile(p.hostnameFile)
	if err != nil {
		return unknownContainer
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return unknownContainer
	}
	return name
}
