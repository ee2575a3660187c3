// Package fixture loads YAML scenario files and replays them through the
// interpreter.
package fixture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"go.cinder.dev/pkg"
)

// Scenario is one program together with what running it must produce.
// Either Value or Error is expected to be set.
type Scenario struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Stdout  string `yaml:"stdout"`
	Value   *int64 `yaml:"value"`
	Error   string `yaml:"error"`
	Message string `yaml:"message"`

	File string `yaml:"-"`
}

type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Result describes the outcome of running a scenario.
type Result struct {
	Scenario Scenario
	Passed   bool
	Problems []string
}

func (r Result) String() string {
	if r.Passed {
		return fmt.Sprintf("PASS %s", r.Scenario.Name)
	}

	return fmt.Sprintf("FAIL %s: %s", r.Scenario.Name, strings.Join(r.Problems, "; "))
}

// Decode reads the scenarios of one YAML document.
func Decode(data []byte, filename string) ([]Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filename)
	}

	for i := range f.Scenarios {
		s := &f.Scenarios[i]
		s.File = filename

		if s.Name == "" {
			s.Name = fmt.Sprintf("%s#%d", filepath.Base(filename), i+1)
		}

		if s.Value == nil && s.Error == "" {
			return nil, errors.Errorf("%s: scenario %q expects neither a value nor an error", filename, s.Name)
		}
	}

	return f.Scenarios, nil
}

// Load reads every *.yaml file in dir, in name order.
func Load(dir string) ([]Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}

	sort.Strings(paths)

	var scenarios []Scenario
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}

		decoded, err := Decode(data, path)
		if err != nil {
			return nil, err
		}

		scenarios = append(scenarios, decoded...)
	}

	return scenarios, nil
}

// Run evaluates a scenario in a fresh interpreter with captured output.
func Run(s Scenario) Result {
	var out bytes.Buffer
	interp := cinder.New(cinder.WithOutput(&out))

	v, err := interp.Eval(strings.NewReader(s.Source), s.Name)

	res := Result{Scenario: s}
	if out.String() != s.Stdout {
		res.Problems = append(res.Problems, fmt.Sprintf("stdout %q, want %q", out.String(), s.Stdout))
	}

	switch {
	case err != nil && s.Error == "":
		res.Problems = append(res.Problems, fmt.Sprintf("unexpected error: %v", err))
	case err == nil && s.Error != "":
		res.Problems = append(res.Problems, fmt.Sprintf("got value %s, want %s", v, s.Error))
	case err != nil:
		if kind := cinder.ErrorKind(err); kind != s.Error {
			res.Problems = append(res.Problems, fmt.Sprintf("error kind %s, want %s", kind, s.Error))
		}

		if msg := cinder.ErrorMessage(err); s.Message != "" && msg != s.Message {
			res.Problems = append(res.Problems, fmt.Sprintf("error message %q, want %q", msg, s.Message))
		}
	default:
		if !v.IsInt() || v.Int != *s.Value {
			res.Problems = append(res.Problems, fmt.Sprintf("value %s, want %d", v, *s.Value))
		}
	}

	res.Passed = len(res.Problems) == 0
	return res
}

// RunAll runs scenarios with at most limit running at once (no limit when
// limit <= 0). Results keep the order of scenarios.
func RunAll(ctx context.Context, scenarios []Scenario, limit int) ([]Result, error) {
	results := make([]Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, s := range scenarios {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = Run(s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
