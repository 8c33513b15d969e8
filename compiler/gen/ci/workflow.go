// Package ci generates the GitHub Actions pipeline of the Elixir project.
package ci

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Workflow is a GitHub Actions workflow document.
type Workflow struct {
	Name string          `yaml:"name" json:"name"`
	On   Triggers        `yaml:"on" json:"on"`
	Jobs map[string]*Job `yaml:"jobs" json:"jobs"`
}

// Triggers lists the events that start the workflow.
type Triggers struct {
	Push        *Trigger `yaml:"push,omitempty" json:"push,omitempty"`
	PullRequest *Trigger `yaml:"pull_request,omitempty" json:"pull_request,omitempty"`
}

// Trigger filters one event. An empty trigger matches every branch.
type Trigger struct {
	Branches []string `yaml:"branches,omitempty" json:"branches,omitempty"`
}

// Job is one workflow job.
type Job struct {
	Name     string              `yaml:"name" json:"name"`
	RunsOn   string              `yaml:"runs-on" json:"runs-on"`
	Needs    string              `yaml:"needs,omitempty" json:"needs,omitempty"`
	Env      map[string]any      `yaml:"env,omitempty" json:"env,omitempty"`
	Services map[string]*Service `yaml:"services,omitempty" json:"services,omitempty"`
	Steps    []Step              `yaml:"steps" json:"steps"`
}

// Step is one job step. Exactly one of Uses and Run is set.
type Step struct {
	Name string            `yaml:"name,omitempty" json:"name,omitempty"`
	ID   string            `yaml:"id,omitempty" json:"id,omitempty"`
	Uses string            `yaml:"uses,omitempty" json:"uses,omitempty"`
	Env  map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	With map[string]string `yaml:"with,omitempty" json:"with,omitempty"`
	Run  string            `yaml:"run,omitempty" json:"run,omitempty"`
}

// Service is a job service container.
type Service struct {
	Image   string            `yaml:"image" json:"image"`
	Env     map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Ports   []string          `yaml:"ports,omitempty" json:"ports,omitempty"`
	Options string            `yaml:"options,omitempty" json:"options,omitempty"`
}

// Validate checks job dependencies and steps.
func (w *Workflow) Validate() error {
	if w.Name == "" {
		return errors.New("ci: workflow name cannot be empty")
	}
	if len(w.Jobs) == 0 {
		return fmt.Errorf("ci: workflow %q has no jobs", w.Name)
	}
	for _, id := range w.JobIDs() {
		job := w.Jobs[id]
		if job.Needs != "" {
			if _, ok := w.Jobs[job.Needs]; !ok {
				return fmt.Errorf("ci: job %q needs unknown job %q", id, job.Needs)
			}
			if job.Needs == id {
				return fmt.Errorf("ci: job %q needs itself", id)
			}
		}
		if len(job.Steps) == 0 {
			return fmt.Errorf("ci: job %q has no steps", id)
		}
		for i, s := range job.Steps {
			if (s.Uses == "") == (s.Run == "") {
				return fmt.Errorf("ci: job %q step %d must set exactly one of uses and run", id, i)
			}
		}
	}
	return nil
}

// Load reads a workflow document, skipping the generated banner comment.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ci: read workflow: %w", err)
	}
	w := &Workflow{}
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("ci: parse workflow %s: %w", path, err)
	}
	return w, nil
}

// JSON returns the workflow as indented JSON.
func (w *Workflow) JSON() ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}
