package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// GetterStyle selects what accessors return.
type GetterStyle string

const (
	// GetterStyleValue accessors return a copy of the field.
	GetterStyleValue GetterStyle = "value"
	// GetterStylePointer accessors return a pointer to the field.
	GetterStylePointer GetterStyle = "pointer"
)

// OptionalStyle selects the container used by the optional transform.
type OptionalStyle string

const (
	// OptionalStylePointer wraps T as *T.
	OptionalStylePointer OptionalStyle = "pointer"
	// OptionalStyleOption wraps T as helpers.Option[T].
	OptionalStyleOption OptionalStyle = "option"
)

// Options are the knobs shared by all emitters.
type Options struct {
	GetterPrefix  string
	GetterStyle   GetterStyle
	SetterPrefix  string
	OptionalStyle OptionalStyle
}

// Job is one invocation of the generator: a package directory, the structs
// to select by name and how to generate for them. The command line builds a
// single Job; a config file may list several.
type Job struct {
	Dir           string   `yaml:"dir" default:"."`
	Output        string   `yaml:"output"`
	Package       string   `yaml:"package"`
	Structs       []string `yaml:"structs"`
	Transforms    []string `yaml:"transforms"`
	GetterPrefix  string   `yaml:"getter_prefix"`
	GetterStyle   string   `yaml:"getter_style" default:"value"`
	SetterPrefix  string   `yaml:"setter_prefix" default:"Set"`
	OptionalStyle string   `yaml:"optional_style" default:"pointer"`
}

// FileConfig is the layout of a --config file.
type FileConfig struct {
	Jobs []Job `yaml:"jobs"`
}

// NewJob returns a Job with every default applied.
func NewJob() Job {
	var job Job
	defaults.MustSet(&job)
	return job
}

// Validate checks the option values and transform names of the job.
func (j Job) Validate() error {
	if j.Dir == "" {
		return fmt.Errorf("%w: a package directory is required", ErrInvalidOption)
	}
	if _, err := j.Options(); err != nil {
		return err
	}
	transforms, err := j.ParsedTransforms()
	if err != nil {
		return err
	}
	if len(j.Structs) > 0 && len(transforms) == 0 {
		return fmt.Errorf("%w: structs %v are listed without any transform", ErrInvalidOption, j.Structs)
	}
	return nil
}

// Options converts the job's emitter settings.
func (j Job) Options() (Options, error) {
	opts := Options{
		GetterPrefix:  j.GetterPrefix,
		GetterStyle:   GetterStyle(j.GetterStyle),
		SetterPrefix:  j.SetterPrefix,
		OptionalStyle: OptionalStyle(j.OptionalStyle),
	}
	switch opts.GetterStyle {
	case GetterStyleValue, GetterStylePointer:
	default:
		return opts, fmt.Errorf("%w: getter style %q (want %q or %q)",
			ErrInvalidOption, j.GetterStyle, GetterStyleValue, GetterStylePointer)
	}
	switch opts.OptionalStyle {
	case OptionalStylePointer, OptionalStyleOption:
	default:
		return opts, fmt.Errorf("%w: optional style %q (want %q or %q)",
			ErrInvalidOption, j.OptionalStyle, OptionalStylePointer, OptionalStyleOption)
	}
	return opts, nil
}

// ParsedTransforms validates the transform names listed in the job.
func (j Job) ParsedTransforms() ([]Transform, error) {
	transforms := make([]Transform, 0, len(j.Transforms))
	for _, name := range j.Transforms {
		t, err := ParseTransform(name)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// LoadFileConfig reads a YAML job file. Defaults are applied to every job,
// and relative paths are resolved against the directory of the file.
func LoadFileConfig(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	if len(cfg.Jobs) == 0 {
		return nil, fmt.Errorf("%w: config %s has no jobs", ErrInvalidOption, path)
	}

	base := filepath.Dir(path)
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if err := defaults.Set(job); err != nil {
			return nil, err
		}
		if !filepath.IsAbs(job.Dir) {
			job.Dir = filepath.Join(base, job.Dir)
		}
		if job.Output != "" && !filepath.IsAbs(job.Output) {
			job.Output = filepath.Join(base, job.Output)
		}
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("config %s, job %d: %w", path, i+1, err)
		}
	}
	return &cfg, nil
}
