package api_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared assertions for the API end-to-end tests.
 * The image is built once in TestMain and every test gets a fresh container.
 */

const (
	testImageName = "pathfinder-api-test:latest"

	tokenSecret   = "e2e-secret-0123456789abcdef012345"
	adminEmail    = "admin@pathfinder.test"
	adminPassword = "Admin123!"
)

// dockerReady is false when no Docker daemon could build the image.
var dockerReady bool

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building API Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stdout, " skipped (%v)\n", err)
	} else {
		dockerReady = true
		fmt.Fprintf(os.Stdout, " done\n")
	}

	exitCode := m.Run()

	if dockerReady {
		fmt.Fprintf(os.Stdout, "Cleaning up API Docker image...")
		cleanupDockerImage()
		fmt.Fprintf(os.Stdout, " done\n")
	}

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		return fmt.Errorf("docker unavailable: %w", err)
	}

	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/api/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAPIContainer starts the API in a container and returns its base URL.
// extraEnv is merged over the defaults.
func setupAPIContainer(t *testing.T, extraEnv map[string]string) string {
	t.Helper()
	if !dockerReady {
		t.Skip("docker is not available")
	}
	ctx := context.Background()

	env := map[string]string{
		"TOKEN_SECRET":   tokenSecret,
		"ADMIN_EMAIL":    adminEmail,
		"ADMIN_PASSWORD": adminPassword,
		"CI":             "true",
		"ENV":            "test",
		"LOG_LEVEL":      "info",
		"LOG_FORMAT":     "json",
		// Tests log in far more often than the production limits allow.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"4000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("4000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "4000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// signupAndLogin registers username@pathfinder.test and logs in.
func signupAndLogin(t *testing.T, client *apisdk.Client, username string) *apisdk.Session {
	t.Helper()
	email := username + "@pathfinder.test"

	_, err := client.Signin(t.Context(), apisdk.SigninRequest{Username: username, Email: email, Password: "fish"})
	require.NoError(t, err)

	session, err := client.Login(t.Context(), apisdk.LoginRequest{Email: email, Password: "fish"})
	require.NoError(t, err)
	return session
}

// assertStatus checks that err is an API error with the given status.
func assertStatus(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err, msg)
	var apiErr *apisdk.Error
	require.True(t, errors.As(err, &apiErr), "%s - expected *apisdk.Error, got %T: %v", msg, err, err)
	require.Equal(t, status, apiErr.StatusCode, "%s - %v", msg, err)
}
