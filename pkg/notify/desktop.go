package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// maxDesktopMessageLen counts characters, not bytes.
const maxDesktopMessageLen = 200

// Desktop shows notifications through the platform's notification command
// (notify-send on Linux and the BSDs, osascript on macOS).
type Desktop struct {
	AppName string
	goos    string
}

func NewDesktop(appName string) *Desktop {
	return &Desktop{AppName: appName, goos: runtime.GOOS}
}

// Notify starts the notification command and returns without waiting for it.
func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	name, args, err := desktopCommand(d.goos, d.AppName, n)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Desktop notification command failed", "command", name, "error", err)
		}
	}()
	return nil
}

func desktopCommand(goos, appName string, n Notification) (string, []string, error) {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		title = appName
	}
	message := strings.TrimSpace(n.Message)
	if runes := []rune(message); len(runes) > maxDesktopMessageLen {
		message = string(runes[:maxDesktopMessageLen]) + "..."
	}

	switch goos {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(message), strconv.Quote(title))
		return "osascript", []string{"-e", script}, nil
	case "windows":
		return "", nil, fmt.Errorf("desktop notifications are not supported on %s", goos)
	default:
		urgency, icon := "normal", "dialog-information"
		if n.Error {
			urgency, icon = "critical", "dialog-error"
		}
		args := []string{"-u", urgency, "-i", icon}
		if appName != "" {
			args = append(args, "-a", appName)
		}
		args = append(args, title, message)
		return "notify-send", args, nil
	}
}
