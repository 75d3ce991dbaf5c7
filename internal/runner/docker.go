package runner

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/recodelabs/recode/internal/domain"
)

// DockerExecutor runs snippets inside a network-disabled, resource-limited
// container. This is the sandbox for untrusted user code.
type DockerExecutor struct {
	client *client.Client
	cfg    DockerConfig
}

// DockerConfig holds Docker executor configuration.
type DockerConfig struct {
	Image       string
	MemoryMB    int
	CPULimit    float64
	CaseTimeout time.Duration
}

// NewDockerExecutor creates a Docker executor and verifies the daemon is
// reachable.
func NewDockerExecutor(cfg DockerConfig) (*DockerExecutor, error) {
	if cfg.Image == "" {
		cfg.Image = "python:3.12-alpine"
	}
	if cfg.MemoryMB == 0 {
		cfg.MemoryMB = 128
	}
	if cfg.CPULimit == 0 {
		cfg.CPULimit = 0.5
	}
	if cfg.CaseTimeout <= 0 {
		cfg.CaseTimeout = 10 * time.Second
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("docker not reachable: %w", err)
	}

	return &DockerExecutor{client: cli, cfg: cfg}, nil
}

func (e *DockerExecutor) RunCases(ctx context.Context, snippet, entry string, cases []domain.TestCase) ([]domain.CaseResult, error) {
	containerID, err := e.createContainer(ctx)
	if err != nil {
		return nil, err
	}
	defer e.destroyContainer(containerID)

	files := make(map[string]string, len(cases))
	for i, tc := range cases {
		files[fmt.Sprintf("case_%d.py", i)] = caseHarness(snippet, entry, tc)
	}
	if err := e.copyFiles(ctx, containerID, files); err != nil {
		return nil, fmt.Errorf("copy harness files: %w", err)
	}

	results := make([]domain.CaseResult, 0, len(cases))
	for i, tc := range cases {
		stdout, stderr, exitCode, err := e.execCase(ctx, containerID, fmt.Sprintf("case_%d.py", i))
		if err != nil {
			return nil, fmt.Errorf("exec case %d: %w", i, err)
		}
		var runErr error
		if exitCode != 0 {
			runErr = fmt.Errorf("exit code %d", exitCode)
		}
		results = append(results, caseResult(tc, stdout, stderr, runErr))
	}
	return results, nil
}

// Close closes the Docker client.
func (e *DockerExecutor) Close() error {
	return e.client.Close()
}

func (e *DockerExecutor) createContainer(ctx context.Context) (string, error) {
	if err := e.ensureImage(ctx); err != nil {
		return "", fmt.Errorf("ensure image: %w", err)
	}

	containerCfg := &container.Config{
		Image:           e.cfg.Image,
		Cmd:             []string{"sh", "-c", "while true; do sleep 3600; done"},
		WorkingDir:      "/workspace",
		NetworkDisabled: true,
		Tty:             false,
		Labels: map[string]string{
			"recode.runner": "true",
		},
	}
	hostCfg := &container.HostConfig{
		Resources: container.Resources{
			Memory:   int64(e.cfg.MemoryMB) * 1024 * 1024,
			NanoCPUs: int64(e.cfg.CPULimit * 1e9),
		},
	}

	resp, err := e.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}
	if err := e.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		_ = e.client.ContainerRemove(ctx, resp.ID, container.RemoveOptions{Force: true})
		return "", fmt.Errorf("start container: %w", err)
	}
	return resp.ID, nil
}

func (e *DockerExecutor) destroyContainer(containerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	timeout := 10
	_ = e.client.ContainerStop(ctx, containerID, container.StopOptions{Timeout: &timeout})
	if err := e.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); err != nil {
		slog.Warn("remove runner container", "container", containerID, "error", err)
	}
}

func (e *DockerExecutor) copyFiles(ctx context.Context, containerID string, files map[string]string) error {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, content := range files {
		header := &tar.Header{
			Name: name,
			Mode: 0644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("write tar header: %w", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			return fmt.Errorf("write tar content: %w", err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	return e.client.CopyToContainer(ctx, containerID, "/workspace", &buf, container.CopyToContainerOptions{})
}

func (e *DockerExecutor) execCase(ctx context.Context, containerID, file string) (stdout, stderr string, exitCode int, err error) {
	execCtx, cancel := context.WithTimeout(ctx, e.cfg.CaseTimeout)
	defer cancel()

	execResp, err := e.client.ContainerExecCreate(execCtx, containerID, container.ExecOptions{
		Cmd:          []string{"python3", file},
		WorkingDir:   "/workspace",
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", "", 0, fmt.Errorf("create exec: %w", err)
	}

	attachResp, err := e.client.ContainerExecAttach(execCtx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", "", 0, fmt.Errorf("attach exec: %w", err)
	}
	defer attachResp.Close()

	var outBuf bytes.Buffer
	_, _ = io.Copy(&outBuf, attachResp.Reader)

	inspectResp, err := e.client.ContainerExecInspect(execCtx, execResp.ID)
	if err != nil {
		return "", "", 0, fmt.Errorf("inspect exec: %w", err)
	}

	stdout, stderr = demuxOutput(outBuf.Bytes())
	return stdout, stderr, inspectResp.ExitCode, nil
}

func (e *DockerExecutor) ensureImage(ctx context.Context) error {
	_, err := e.client.ImageInspect(ctx, e.cfg.Image)
	if err == nil {
		return nil
	}

	slog.Info("pulling runner image", "image", e.cfg.Image)
	reader, err := e.client.ImagePull(ctx, e.cfg.Image, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", e.cfg.Image, err)
	}
	defer reader.Close()
	_, _ = io.Copy(io.Discard, reader)
	return nil
}

// demuxOutput separates Docker multiplexed stdout/stderr streams.
// The stream protocol uses 8-byte headers: [type][0][0][0][size x4],
// type 1=stdout, 2=stderr.
func demuxOutput(data []byte) (stdout, stderr string) {
	var outBuf, errBuf strings.Builder

	for len(data) >= 8 {
		streamType := data[0]
		size := int(data[4])<<24 | int(data[5])<<16 | int(data[6])<<8 | int(data[7])
		data = data[8:]

		if size > len(data) {
			size = len(data)
		}
		chunk := string(data[:size])
		data = data[size:]

		switch streamType {
		case 1:
			outBuf.WriteString(chunk)
		case 2:
			errBuf.WriteString(chunk)
		}
	}

	if outBuf.Len() == 0 && errBuf.Len() == 0 && len(data) > 0 {
		return string(data), ""
	}
	return outBuf.String(), errBuf.String()
}
