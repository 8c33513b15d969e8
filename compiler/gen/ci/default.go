package ci

import (
	"maps"
	"slices"
)

// Options parameterizes the default workflow.
type Options struct {
	ElixirVersion string
	OTPVersion    string
	PostgresImage string
}

const cacheKey = "${{ runner.os }}-mix-${{ env.MIX_ENV }}-${{ env.cache-name }}"

func setupElixirSteps(o Options) []Step {
	return []Step{
		{
			Name: "Cache deps",
			ID:   "cache-deps",
			Uses: "actions/cache@v3",
			Env:  map[string]string{"cache-name": "cache-elixir-deps"},
			With: map[string]string{
				"path":         "deps",
				"key":          cacheKey + "-${{ hashFiles('mix.lock') }}",
				"restore-keys": cacheKey + "-\n",
			},
		},
		{
			Name: "Cache compiled build",
			ID:   "cache-build",
			Uses: "actions/cache@v3",
			Env:  map[string]string{"cache-name": "cache-compiled-build"},
			With: map[string]string{
				"path": "_build",
				"key":  cacheKey + "-${{ hashFiles('mix.lock') }}",
				"restore-keys": cacheKey + "-\n" +
					"${{ runner.os }}-mix-${{ env.MIX_ENV }}-\n" +
					"${{ runner.os }}-mix\n",
			},
		},
		{
			Name: "Set up Elixir",
			Uses: "erlef/setup-beam@v1",
			With: map[string]string{
				"elixir-version": o.ElixirVersion,
				"otp-version":    o.OTPVersion,
			},
		},
		{Name: "Install dependencies", Run: "mix deps.get"},
		{Name: "Setup .env file", Run: "bin/ci-setup.sh"},
	}
}

var checkoutSteps = []Step{{Uses: "actions/checkout@v3"}}

// testEnv is shared by both jobs so the caches match.
func testEnv() map[string]any {
	return map[string]any{
		"MIX_ENV":           "test",
		"ELIXIR_ENV":        "test",
		"DATABASE_HOST":     "localhost",
		"DATABASE_USER":     "postgres",
		"DATABASE_PORT":     5432,
		"DATABASE_PASSWORD": "postgres",
	}
}

func postgresService(o Options) *Service {
	return &Service{
		Image:   o.PostgresImage,
		Env:     map[string]string{"POSTGRES_PASSWORD": "postgres"},
		Ports:   []string{"5432:5432"},
		Options: "--health-cmd pg_isready --health-interval 10s --health-timeout 5s --health-retries 5",
	}
}

// DefaultWorkflow returns the mix-format / mix-test pipeline. The format job
// checks formatting before the expensive compile step and warms the build
// cache; the test job waits for it so the caches can be reused.
func DefaultWorkflow(o Options) *Workflow {
	steps := func(groups ...[]Step) []Step {
		return slices.Concat(groups...)
	}
	return &Workflow{
		Name: "CI",
		On: Triggers{
			Push:        &Trigger{},
			PullRequest: &Trigger{},
		},
		Jobs: map[string]*Job{
			"mix-format": {
				Name:   "Mix Format",
				RunsOn: "ubuntu-latest",
				Env:    testEnv(),
				Steps: steps(
					checkoutSteps,
					setupElixirSteps(o),
					[]Step{{Name: "Run format check", Run: "mix format --check-formatted"}},
					[]Step{{Name: "Compile Elixir code", Run: "mix compile"}},
				),
			},
			"mix-test": {
				Name:     "Mix Test",
				RunsOn:   "ubuntu-latest",
				Needs:    "mix-format",
				Env:      testEnv(),
				Services: map[string]*Service{"postgres": postgresService(o)},
				Steps: steps(
					checkoutSteps,
					setupElixirSteps(o),
					[]Step{{Name: "Start SurrealDB docker image", Run: "bin/ci-docker-surreal-restart.sh"}},
					[]Step{{Name: "Run Elixir tests", Run: "mix test"}},
					[]Step{{Name: "Stop SurrealDB docker image", Run: "bin/ci-docker-surreal-stop.sh"}},
				),
			},
		},
	}
}

// JobIDs returns the job ids in sorted order.
func (w *Workflow) JobIDs() []string {
	return slices.Sorted(maps.Keys(w.Jobs))
}
