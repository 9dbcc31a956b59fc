package functions

import "fmt"

// Validation is the outcome of a structural pre-check on a call.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks a call against its declaration: the function must exist,
// required parameters must be present and provided parameters must have the
// declared primitive type. It does not execute anything.
func Validate(call Call) Validation {
	var decl *Declaration
	for _, d := range Declarations() {
		if d.Name == call.Name {
			decl = &d
			break
		}
	}
	if decl == nil {
		return Validation{Errors: []string{fmt.Sprintf("Unknown function: %s", call.Name)}}
	}

	var errs []string
	if decl.Parameters != nil {
		for _, required := range decl.Parameters.Required {
			if _, ok := call.Args[required]; !ok {
				errs = append(errs, fmt.Sprintf("Missing required parameter: %s", required))
			}
		}

		for name, value := range call.Args {
			prop, ok := decl.Parameters.Properties[name]
			if !ok {
				continue
			}
			if msg := checkType(name, prop.Type, value); msg != "" {
				errs = append(errs, msg)
			}
		}
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func checkType(name, expected string, value any) string {
	switch expected {
	case "number":
		if _, ok := floatArg(map[string]any{name: value}, name); !ok {
			return fmt.Sprintf("Parameter %s should be a number, got %T", name, value)
		}
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("Parameter %s should be a string, got %T", name, value)
		}
	case "array":
		switch value.(type) {
		case []any, []string:
		default:
			return fmt.Sprintf("Parameter %s should be an array, got %T", name, value)
		}
	}
	return ""
}
