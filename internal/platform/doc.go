// Package platform reads the machine architecture and the Linux
// distribution through gopsutil and decides whether the prebuilt binary can
// run here.
package platform
