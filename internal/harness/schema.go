package harness

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed job.cue
var jobSchemaSource string

// jobSchema holds the compiled #Job definition. A cue.Context is not safe
// for concurrent use, so every evaluation takes mu.
var jobSchema struct {
	once sync.Once
	mu   sync.Mutex
	ctx  *cue.Context
	def  cue.Value
	err  error
}

func loadJobSchema() error {
	jobSchema.once.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(jobSchemaSource, cue.Filename("job.cue"))
		if err := v.Err(); err != nil {
			jobSchema.err = fmt.Errorf("compile job schema: %w", err)
			return
		}
		def := v.LookupPath(cue.ParsePath("#Job"))
		if err := def.Err(); err != nil {
			jobSchema.err = fmt.Errorf("lookup #Job: %w", err)
			return
		}
		jobSchema.ctx, jobSchema.def = ctx, def
	})
	return jobSchema.err
}

// ValidateSchema checks job JSON against the embedded schema and returns
// one *ConfigError per violation. name labels positions in messages.
func ValidateSchema(name string, jobJSON []byte) ([]*ConfigError, error) {
	if err := loadJobSchema(); err != nil {
		return nil, err
	}
	jobSchema.mu.Lock()
	defer jobSchema.mu.Unlock()

	data := jobSchema.ctx.CompileBytes(jobJSON, cue.Filename(name))
	if err := data.Err(); err != nil {
		return []*ConfigError{{Field: "", Message: "not valid JSON", Err: err}}, nil
	}
	err := jobSchema.def.Unify(data).Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}
	var out []*ConfigError
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, &ConfigError{
			Field:   strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out, nil
}
