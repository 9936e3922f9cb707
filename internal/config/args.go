package config

import "github.com/google/shlex"

// splitArgs tokenizes a shell-style argument string. Empty input yields nil.
func splitArgs(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	return shlex.Split(s)
}
