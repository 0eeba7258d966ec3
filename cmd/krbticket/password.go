package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// passwordEnvVar is wiped from the environment as soon as it is read so
// the secret does not outlive the request in process state.
const passwordEnvVar = "KRBTICKET_PASSWORD"

var errNoPassword = errors.New(
	"no password provided: use --password-file, " + passwordEnvVar + ", or run interactively")

// resolvePassword obtains the password without ever accepting it as a
// command-line argument: file (or stdin), environment, then prompt.
func resolvePassword(path string) (string, error) {
	if path != "" {
		return readPasswordFile(path)
	}

	if value, ok := os.LookupEnv(passwordEnvVar); ok {
		os.Unsetenv(passwordEnvVar)
		if value == "" {
			return "", fmt.Errorf("%s is set but empty", passwordEnvVar)
		}
		return value, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return promptPassword()
	}

	return "", errNoPassword
}

func readPasswordFile(path string) (string, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	// A trailing newline is an artifact of how the file was written, not
	// part of the password.
	return strings.TrimRight(string(data), "\r\n"), nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(data), nil
}
