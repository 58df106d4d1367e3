package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newFakeAPI()
	defer server.Close()

	stdout, stderr, err := runTly(t, binaryPath, home, server.URL, "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "dev")

	stdout, stderr, err = runTly(t, binaryPath, home, server.URL,
		"login", "--user", "creator@example.com", "--password", "hunter2",
	)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "creator")

	stdout, stderr, err = runTly(t, binaryPath, home, server.URL, "whoami")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "creator <creator@example.com>")

	stdout, stderr, err = runTly(t, binaryPath, home, server.URL, "logout")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Signed out.")

	stdout, stderr, err = runTly(t, binaryPath, home, server.URL, "whoami")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Not signed in")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tly-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tly")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tly binary: %s", string(output))
	return binaryPath
}

func runTly(t *testing.T, binaryPath, home, apiURL string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "THUMLIFY_API_URL="+apiURL)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

// newFakeAPI is a minimal cookie-session stand-in for the real service.
func newFakeAPI() *httptest.Server {
	user := map[string]string{"id": "user-1", "username": "creator", "email": "creator@example.com"}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("thumlify_session")
		authed := err == nil && cookie.Value != ""

		switch r.URL.Path {
		case "/api/auth/current-user":
			if !authed {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = fmt.Fprint(w, `{"message":"No session"}`)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"user": user})
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "thumlify_session", Value: "sess-1", Path: "/"})
			_ = json.NewEncoder(w).Encode(map[string]any{"user": user, "message": "Welcome back!"})
		case "/api/auth/logout":
			http.SetCookie(w, &http.Cookie{Name: "thumlify_session", Value: "", Path: "/", MaxAge: -1})
			w.WriteHeader(http.StatusOK)
		case "/api/credits/user-credits":
			_ = json.NewEncoder(w).Encode(map[string]any{"credits": 120, "totalSpent": 80, "username": "creator"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"message":"Not found"}`)
		}
	}))
}
