package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/epixlabs/contact-relay/pkg/model"
)

// runClient executes the root command with the given arguments and returns stdout and stderr.
func runClient(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestClientSubmits(t *testing.T) {
	var received model.ContactSubmission
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer relay.Close()

	stdout, _, err := runClient("--url", relay.URL, "--name", "Jane", "--email", "jane@x.com",
		"--phone", "", "--company", "Acme", "--message", "Need a website")
	assert.NoError(t, err)
	assert.Equal(t, "Message sent.\n", stdout)
	assert.Equal(t, model.ContactSubmission{Name: "Jane", Email: "jane@x.com", Company: "Acme", Message: "Need a website"}, received)
}

// TestClientReportsFieldErrors expects one line per missing field and no request to the relay.
func TestClientReportsFieldErrors(t *testing.T) {
	called := false
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer relay.Close()

	_, stderr, err := runClient("--url", relay.URL, "--name", "", "--email", "jane@x.com",
		"--phone", "", "--company", "", "--message", " ")
	assert.Error(t, err)
	assert.False(t, called)
	assert.Contains(t, stderr, "message: Please enter a short message describing your project\n")
	assert.Contains(t, stderr, "name: Please enter your name\n")
	assert.NotContains(t, stderr, "email:")
}

func TestClientReportsRejection(t *testing.T) {
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok":false,"error":"chat not found"}`))
	}))
	defer relay.Close()

	_, stderr, err := runClient("--url", relay.URL, "--name", "Jane", "--email", "jane@x.com",
		"--phone", "", "--company", "", "--message", "Hi")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Failed to send. Please try again.\n")
}
