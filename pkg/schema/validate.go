package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError is a single validation finding with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // semantic, domain
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// Validate runs the two-phase pipeline over a loaded configuration:
// JSON Schema validation of the document shape, then domain rules the
// schema cannot express.
func Validate(cfg *Config) []*ValidationError {
	var all []*ValidationError
	all = append(all, validateSemantic(cfg)...)
	all = append(all, validateDomain(cfg)...)
	return all
}

func semanticError(format string, args ...any) []*ValidationError {
	return []*ValidationError{{
		Phase:    "semantic",
		Message:  fmt.Sprintf(format, args...),
		Severity: "error",
	}}
}

// validateSemantic checks the configuration against the generated JSON
// Schema.
func validateSemantic(cfg *Config) []*ValidationError {
	data, err := json.Marshal(cfg)
	if err != nil {
		return semanticError("marshal for schema validation: %v", err)
	}

	schemaJSON, err := GenerateConfigJSONSchema()
	if err != nil {
		return semanticError("generate schema: %v", err)
	}
	schemaDoc, err := sjsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return semanticError("unmarshal schema: %v", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("mmbridge-config.json", schemaDoc); err != nil {
		return semanticError("add schema resource: %v", err)
	}
	compiled, err := c.Compile("mmbridge-config.json")
	if err != nil {
		return semanticError("compile schema: %v", err)
	}

	instance, err := sjsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return semanticError("unmarshal instance: %v", err)
	}
	if err := compiled.Validate(instance); err != nil {
		return semanticError("%v", err)
	}
	return nil
}

// validateDomain applies the rules the schema can't express.
func validateDomain(cfg *Config) []*ValidationError {
	var errs []*ValidationError

	if cfg.ScriptTimeout != "" {
		if d, err := time.ParseDuration(cfg.ScriptTimeout); err != nil {
			errs = append(errs, &ValidationError{
				Phase: "domain", Path: "script_timeout",
				Message:  fmt.Sprintf("not a duration: %q", cfg.ScriptTimeout),
				Severity: "error",
			})
		} else if d <= 0 {
			errs = append(errs, &ValidationError{
				Phase: "domain", Path: "script_timeout",
				Message:  "must be positive",
				Severity: "error",
			})
		}
	}

	switch cfg.DefaultPersist {
	case "", "none", "flush", "apply":
	default:
		errs = append(errs, &ValidationError{
			Phase: "domain", Path: "default_persist",
			Message:  fmt.Sprintf("unknown persist mode %q (want none, flush, or apply)", cfg.DefaultPersist),
			Severity: "error",
		})
	}

	switch cfg.MenuMatch {
	case "", "exact", "startswith", "contains":
	default:
		errs = append(errs, &ValidationError{
			Phase: "domain", Path: "menu_match",
			Message:  fmt.Sprintf("unknown match strategy %q (want exact, startswith, or contains)", cfg.MenuMatch),
			Severity: "error",
		})
	}

	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(errs []*ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}
