package installer

import (
	"os"

	"github.com/mitchellh/go-ps"
)

// commLimit is the length Linux truncates process names to.
const commLimit = 15

// runningProcesses returns the PIDs of other processes named name.
func runningProcesses(name string) ([]int, error) {
	if len(name) > commLimit {
		name = name[:commLimit]
	}

	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	thisProcessID := os.Getpid()

	var pids []int

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		executable := process.Executable()
		if len(executable) > commLimit {
			executable = executable[:commLimit]
		}

		if executable == name {
			pids = append(pids, process.Pid())
		}
	}

	return pids, nil
}
