package tailscale

import (
	"context"
	"fmt"
)

// Client maps the operations this module needs onto CLI invocations.
type Client struct {
	runner Runner
}

func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

func StatusArgs() []string {
	return []string{"status", "--json"}
}

// FileCopyArgs builds a Taildrop send. The target carries the trailing colon
// the CLI expects for a peer destination.
func FileCopyArgs(path, dnsName string) []string {
	return []string{"file", "cp", path, dnsName + ":"}
}

func FileGetArgs(dir string) []string {
	return []string{"file", "get", dir}
}

// Status runs `tailscale status --json` and parses the result.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	out, err := c.runner.Run(ctx, StatusArgs()...)
	if err != nil {
		return nil, err
	}
	if len(out.Stdout) == 0 {
		return nil, fmt.Errorf("tailscale status produced no output")
	}
	return ParseStatus(out.Stdout)
}

// FileCopy sends one file to a peer and waits for the CLI to finish.
func (c *Client) FileCopy(ctx context.Context, path, dnsName string) (Output, error) {
	return c.runner.Run(ctx, FileCopyArgs(path, dnsName)...)
}

// FileGet moves any waiting Taildrop files into dir.
func (c *Client) FileGet(ctx context.Context, dir string) (Output, error) {
	return c.runner.Run(ctx, FileGetArgs(dir)...)
}
