package shell

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
)

// ExecFunc is the signature of ExecCmd. Components hold one of these so
// tests can substitute a stub toolchain.
type ExecFunc func(cmdStr string, sudo bool, envVal []string) (string, error)

// GetOSEnvirons returns the system environment variables
func GetOSEnvirons() map[string]string {
	environ := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			environ[parts[0]] = parts[1]
		}
	}
	return environ
}

// GetOSProxyEnvirons retrieves HTTP and HTTPS proxy environment variables
func GetOSProxyEnvirons() map[string]string {
	osEnv := GetOSEnvirons()
	proxyEnv := make(map[string]string)

	for key, value := range osEnv {
		if strings.Contains(strings.ToLower(key), "http_proxy") ||
			strings.Contains(strings.ToLower(key), "https_proxy") {
			proxyEnv[key] = value
		}
	}

	return proxyEnv
}

// getShell returns the preferred shell, falling back to /bin/sh if bash is not available
func getShell() string {
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, sh := range shells {
		if _, err := os.Stat(sh); err == nil {
			return sh
		}
	}
	return "/bin/sh" // fallback
}

// IsCommandExist checks if a command exists on the host
func IsCommandExist(cmd string) bool {
	sh := getShell()
	output, _ := exec.Command(sh, "-c", "command -v "+cmd).Output()
	return len(bytes.TrimSpace(output)) > 0
}

// Quote wraps s in single quotes for safe interpolation into a shell
// command line.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// GetFullCmdStr prepares a command string with necessary prefixes
func GetFullCmdStr(cmdStr string, sudo bool, envVal []string) string {
	log := logger.Logger()
	envValStr := ""
	for _, env := range envVal {
		envValStr += env + " "
	}

	if sudo {
		proxyEnv := GetOSProxyEnvirons()
		for key, value := range proxyEnv {
			envValStr += key + "=" + value + " "
		}
		log.Debugf("Exec: [sudo " + cmdStr + "]")
		return "sudo " + envValStr + cmdStr
	}

	log.Debugf("Exec: [" + cmdStr + "]")
	return envValStr + cmdStr
}

// ExecCmd executes a command and returns its combined output. A non-zero
// exit status surfaces as a wrapped error alongside whatever the command
// printed.
func ExecCmd(cmdStr string, sudo bool, envVal []string) (string, error) {
	log := logger.Logger()
	fullCmdStr := GetFullCmdStr(cmdStr, sudo, envVal)

	sh := getShell()
	cmd := exec.Command(sh, "-c", fullCmdStr)
	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	if err != nil {
		if outputStr != "" {
			log.Infof(outputStr)
		}
		return outputStr, fmt.Errorf("failed to exec %s: %w", fullCmdStr, err)
	}
	if outputStr != "" {
		log.Debugf(outputStr)
	}
	return outputStr, nil
}
