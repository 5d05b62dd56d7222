package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/w65harness/internal/bus"
	"github.com/roach88/w65harness/internal/ir"
)

// ConfigError reports a job that cannot be run. Field names the offending
// job key (dotted, with list indices) when one is known.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Field == "" {
		return "config: " + msg
	}
	return fmt.Sprintf("config: %s: %s", e.Field, msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// JobFile is a job loaded from disk together with its normalised JSON text.
type JobFile struct {
	Name string // base name without extension
	Path string
	JSON []byte
	Job  *ir.Job
}

// LoadJob reads and validates a job file. The extension picks the decoder:
// .yaml and .yml are YAML, anything else is JSON.
func LoadJob(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	job, jobJSON, err := ParseJob(filepath.Base(path), data, ext)
	if err != nil {
		return nil, err
	}
	return &JobFile{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
		JSON: jobJSON,
		Job:  job,
	}, nil
}

// ParseJob decodes job text, validates it against the schema and the
// semantic rules, and returns the job together with its JSON form. YAML
// input is converted to JSON first so both formats share one decoder.
func ParseJob(name string, data []byte, ext string) (*ir.Job, []byte, error) {
	jobJSON := data
	if ext == ".yaml" || ext == ".yml" {
		var err error
		if jobJSON, err = yamlToJSON(data); err != nil {
			return nil, nil, &ConfigError{Message: "failed to parse YAML", Err: err}
		}
	}

	problems, err := ValidateSchema(name, jobJSON)
	if err != nil {
		return nil, nil, err
	}
	if len(problems) > 0 {
		return nil, nil, problems[0]
	}

	var job ir.Job
	if err := json.NewDecoder(bytes.NewReader(jobJSON)).Decode(&job); err != nil {
		return nil, nil, &ConfigError{Message: "failed to parse JSON", Err: err}
	}
	if err := Validate(&job); err != nil {
		return nil, nil, err
	}
	return &job, jobJSON, nil
}

// CheckJobFile validates a job file without running it. Unlike LoadJob it
// returns every schema violation, not just the first; semantic checks run
// only once the schema passes. A non-nil error means the file could not be
// read.
func CheckJobFile(path string) ([]*ConfigError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	jobJSON := data
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		if jobJSON, err = yamlToJSON(data); err != nil {
			return []*ConfigError{{Message: "failed to parse YAML", Err: err}}, nil
		}
	}
	problems, err := ValidateSchema(filepath.Base(path), jobJSON)
	if err != nil || len(problems) > 0 {
		return problems, err
	}
	if _, _, err := ParseJob(filepath.Base(path), jobJSON, ".json"); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			return []*ConfigError{ce}, nil
		}
		return nil, err
	}
	return nil, nil
}

// yamlToJSON re-encodes a YAML document as JSON. yaml.v3 decodes mappings
// with string keys into map[string]any, which encoding/json accepts.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, fmt.Errorf("top level must be a mapping")
	}
	return json.Marshal(doc)
}

// Validate checks the rules the schema cannot express. It returns the first
// violation as a *ConfigError.
func Validate(job *ir.Job) error {
	if job.Init == nil {
		return &ConfigError{Field: "init", Message: "no init records"}
	}
	for i, rec := range job.Init {
		field := fmt.Sprintf("init.%d.data", i)
		data, err := ir.DecodeData(rec.Data)
		if err != nil {
			return &ConfigError{Field: field, Message: "cannot decode", Err: err}
		}
		if len(data) == 0 {
			return &ConfigError{Field: field, Message: "empty init record"}
		}
	}
	if job.SerialInData != nil {
		if _, err := ir.DecodeData(*job.SerialInData); err != nil {
			return &ConfigError{Field: "serial_in_data", Message: "cannot decode", Err: err}
		}
	}
	if job.SerialOutFmt != nil {
		if _, err := ir.ParseOutFormat(*job.SerialOutFmt); err != nil {
			return &ConfigError{Field: "serial_out_fmt", Message: "unsupported format", Err: err}
		}
	}
	if len(job.RDY) > 0 {
		return &ConfigError{Field: "rdy", Message: "RDY signal is not supported"}
	}
	if len(job.RES) > 0 {
		return &ConfigError{Field: "res", Message: "reset signal is not supported"}
	}
	if _, err := bus.NewSchedule(job.SO, job.NMI, job.IRQ); err != nil {
		return &ConfigError{Field: "so/nmi/irq", Message: "bad flip schedule", Err: err}
	}
	if e := job.Expect; e != nil {
		if e.TerminationCause != nil {
			if _, ok := ir.ParseCause(*e.TerminationCause); !ok {
				return &ConfigError{
					Field:   "expect.termination_cause",
					Message: fmt.Sprintf("unknown cause %q", *e.TerminationCause),
				}
			}
		}
		for i, s := range e.CyclesContain {
			if _, err := ir.ParseCycleEvent(s); err != nil {
				return &ConfigError{Field: fmt.Sprintf("expect.cycles_contain.%d", i), Message: "bad cycle event", Err: err}
			}
		}
	}
	return nil
}
