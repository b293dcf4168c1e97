package system

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

var (
	OsReleaseFile = "/etc/os-release"
)

// OsDistribution contains information about the Linux OS distribution
type OsDistribution struct {
	Name            string   // Distribution name (e.g., "Arch Linux", "Fedora")
	Version         string   // Version (e.g., "41"), empty on rolling releases
	ID              string   // Distribution ID (e.g., "arch", "fedora")
	IDLike          []string // Related distributions (e.g., ["arch"], ["rhel", "fedora"])
	Arch            string   // Host architecture from uname
	PackageManagers []string // Package managers (e.g., ["pacman"], ["tdnf", "rpm"])
}

// DetectOsDistribution detects the underlying Linux OS distribution by
// parsing /etc/os-release and checking which package managers are present.
func DetectOsDistribution() (*OsDistribution, error) {
	log := logger.Logger()
	osInfo := &OsDistribution{}

	output, err := shell.ExecCmd("uname -m", false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get host architecture: %w", err)
	}
	osInfo.Arch = strings.TrimSpace(output)

	file, err := os.Open(OsReleaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", OsReleaseFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"")

		switch key {
		case "NAME":
			osInfo.Name = value
		case "VERSION_ID":
			osInfo.Version = value
		case "ID":
			osInfo.ID = value
		case "ID_LIKE":
			osInfo.IDLike = strings.Fields(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", OsReleaseFile, err)
	}

	for _, pm := range []string{"pacman", "tdnf", "dnf", "apt"} {
		if shell.IsCommandExist(pm) {
			osInfo.PackageManagers = append(osInfo.PackageManagers, pm)
		}
	}

	log.Infof("Detected OS info: %s %s %s (package managers: %s)",
		osInfo.Name, osInfo.Version, osInfo.Arch, strings.Join(osInfo.PackageManagers, ", "))
	return osInfo, nil
}
