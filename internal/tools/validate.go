package tools

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// validateArgs checks args against the descriptor's JSON schema. Missing required
// parameters are reported first, by name; a blank required string counts as
// missing. Unknown arguments are ignored.
func validateArgs(d Descriptor, schema *gojsonschema.Schema, args Args) error {
	var missing []string
	for _, p := range d.Params {
		if p.Required && !present(p, args) {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) == 1 {
		return Validationf("missing required argument: %s", missing[0])
	}
	if len(missing) > 1 {
		return Validationf("missing required arguments: %s", strings.Join(missing, ", "))
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(args)))
	if err != nil {
		return Wrap(KindValidation, err, "invalid arguments: %v", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, describe(desc))
	}
	return Validationf("invalid arguments: %s", strings.Join(errs, "; "))
}

func present(p Param, args Args) bool {
	if !args.Has(p.Name) {
		return false
	}
	if s, ok := args[p.Name].(string); ok && p.Type == "string" {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func describe(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == "" || field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
		return desc.Description()
	}
	return fmt.Sprintf("%s: %s", field, desc.Description())
}
