package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Martin212038201938/FunnyFunnel/internal/logging"
	"github.com/Martin212038201938/FunnyFunnel/internal/profile"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui"
	"github.com/Martin212038201938/FunnyFunnel/internal/tui/client"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name (overrides config default)")
	flag.Parse()

	profileName := profile.Resolve(*profileFlag)
	if err := profile.ValidateName(profileName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Probe daemon health; auto-start if needed.
	addr := profile.ReadAddr(profileName)
	if addr == "" || !probeDaemon(addr) {
		fmt.Fprintf(os.Stderr, "daemon not running for profile %q, starting...\n", profileName)
		if err := startDaemon(profileName); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start daemon: %v\n", err)
			os.Exit(1)
		}
		addr = waitForDaemon(profileName, 10*time.Second)
		if addr == "" {
			fmt.Fprintln(os.Stderr, "daemon did not become ready")
			os.Exit(1)
		}
	}

	// The TUI owns the terminal, so its logs go to a file only.
	logger, err := logging.NewFileOnly(profile.TUILogPath(profileName), profileName)
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	app := tui.NewApp(client.New(addr), profileName, addr, logger)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// probeDaemon checks if a daemon answers health checks on the address.
func probeDaemon(addr string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.New(addr).Health(ctx) == nil
}

func startDaemon(profileName string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	funneld := filepath.Join(filepath.Dir(executable), "funneld")

	if _, err := os.Stat(funneld); err != nil {
		funneld = "funneld"
	}

	cmd := exec.Command(funneld, "--profile", profileName)
	// Inherit stderr so daemon startup errors are visible.
	cmd.Stderr = os.Stderr
	return cmd.Start()
}

// waitForDaemon polls until the daemon has published its address and
// answers health checks. Returns the address, or empty on timeout.
func waitForDaemon(profileName string, timeout time.Duration) string {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if addr := profile.ReadAddr(profileName); addr != "" && probeDaemon(addr) {
			return addr
		}
		time.Sleep(300 * time.Millisecond)
	}
	return ""
}
