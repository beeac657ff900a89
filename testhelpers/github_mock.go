package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// Repos maps "owner/repo" to the repository returned for GET /repos/owner/repo
	Repos map[string]*github.Repository
	// Moved maps an old "owner/repo" to its new one; requests are redirected like GitHub does
	Moved map[string]string
	// Login is returned for GET /user
	Login string
	// UploadedKeys stores keys posted to /user/keys
	UploadedKeys []*github.Key
	// ErrorResponses maps "METHOD path" to a status code
	ErrorResponses map[string]int

	mu sync.Mutex
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Repos:          make(map[string]*github.Repository),
		Moved:          make(map[string]string),
		Login:          "owner",
		ErrorResponses: make(map[string]int),
	}
}

// AddRepo registers a repository with GitHub's usual SSH URL
func (c *MockGitHubServerConfig) AddRepo(fullName string) *github.Repository {
	repo := &github.Repository{
		FullName: github.String(fullName),
		Name:     github.String(fullName[strings.Index(fullName, "/")+1:]),
		SSHURL:   github.String("git@github.com:" + fullName + ".git"),
		HTMLURL:  github.String("https://github.com/" + fullName),
	}
	c.Repos[fullName] = repo
	return repo
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub API endpoints githelper uses
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		if failWith(w, r, config) {
			return
		}
		fullName := strings.Trim(strings.TrimPrefix(r.URL.Path, "/repos/"), "/")
		if target, ok := config.Moved[fullName]; ok {
			http.Redirect(w, r, "/repos/"+target, http.StatusMovedPermanently)
			return
		}
		repo, ok := config.Repos[fullName]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, repo)
	})

	mux.HandleFunc("/user/keys", func(w http.ResponseWriter, r *http.Request) {
		if failWith(w, r, config) {
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var key github.Key
		if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
			http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
			return
		}

		config.mu.Lock()
		id := int64(len(config.UploadedKeys) + 1)
		key.ID = github.Int64(id)
		key.URL = github.String(fmt.Sprintf("https://api.github.com/user/keys/%d", id))
		config.UploadedKeys = append(config.UploadedKeys, &key)
		config.mu.Unlock()

		writeJSON(w, http.StatusCreated, key)
	})

	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if failWith(w, r, config) {
			return
		}
		writeJSON(w, http.StatusOK, &github.User{Login: github.String(config.Login)})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// NewMockGitHubClient creates a go-github client that talks to a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) *github.Client {
	t.Helper()
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return client
}

func failWith(w http.ResponseWriter, r *http.Request, config *MockGitHubServerConfig) bool {
	status, ok := config.ErrorResponses[r.Method+" "+r.URL.Path]
	if !ok {
		return false
	}
	writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
