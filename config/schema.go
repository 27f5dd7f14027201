package config

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// schemaSource is the CUE schema the raw YAML configuration must satisfy
// before it is decoded. Catching shape errors here keeps misconfigurations
// out of the tracker instantiation path.
const schemaSource = `
#Config: {
	logging?: {
		level?:  string
		format?: string
		loki?: {
			enabled?: bool
			url?:     string
			labels?: {[string]: string}
		}
	}
	telemetry?: {
		enabled?: bool
	}
	format?: string
	yaml?:   string
	trackers?: [...#Tracker]
}

#Tracker: {
	type:       string
	value?:     string
	title?:     string
	category?:  string
	if?:        string
	unless?:    string
	line_type?: string
	options?: {...}
}
`

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

func compiledSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		root := ctx.CompileString(schemaSource)
		if err := root.Err(); err != nil {
			schemaErr = fmt.Errorf("compile config schema: %w", err)
			return
		}
		schemaValue = root.LookupPath(cue.ParsePath("#Config"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("resolve config schema: %w", err)
		}
	})
	return schemaValue, schemaErr
}

func validateSchema(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := cueyaml.Validate(raw, schema); err != nil {
		return err
	}
	return nil
}
