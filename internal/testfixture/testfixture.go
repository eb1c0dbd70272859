// Package testfixture loads table-driven program/expectation fixtures
// from YAML for the package's tests. It is test-only tooling: nothing
// under the module root imports it outside of _test.go files, and the
// interpreter's runtime entry point (basiclang.Run) never reads a file
// of its own.
package testfixture

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Case is one fixture row: a named program, its expected printed
// result (via String()), and — for error cases — a substring expected
// to appear in the Error's message.
type Case struct {
	Name       string `yaml:"name"`
	Source     string `yaml:"source"`
	Want       string `yaml:"want"`
	WantErrSub string `yaml:"want_err_substring"`
}

// Suite is the top-level shape of a fixture file: a single list of
// cases under the "cases" key.
type Suite struct {
	Cases []Case `yaml:"cases"`
}

// Load reads and parses a fixture file at path.
func Load(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, err
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, err
	}
	return s, nil
}
