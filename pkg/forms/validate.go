package forms

import "fmt"

// Validate checks values against schema and returns the full validation
// result. It is a pure function: no I/O, no stored state, identical output
// for identical input. The result is recomputed in full on every call.
func Validate(values Values, schema *Schema) Errors {
	errs := make(Errors)
	for _, f := range schema.fields {
		val := values[f.Name]

		if f.Rule.Required && isEmpty(val) {
			errs[f.Name] = requiredMessage(f)
			continue
		}

		// Optional fields that are empty are always valid.
		if isEmpty(val) {
			if msg := runCustomRules(f, val, values); msg != "" {
				errs[f.Name] = msg
			}
			continue
		}

		if str, ok := val.(string); ok {
			if f.Rule.MinLen > 0 && len(str) < f.Rule.MinLen {
				errs[f.Name] = minLenMessage(f)
				continue
			}
			if f.Rule.Pattern != nil && !f.Rule.Pattern.MatchString(str) {
				errs[f.Name] = patternMessage(f)
				continue
			}
		}

		if msg := runCustomRules(f, val, values); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// runCustomRules evaluates a field's custom rules in order and returns the
// first failure message. Custom rules run even for empty values so that
// conditional requirement rules (subscriber fields, for example) can fire.
func runCustomRules(f Field, val any, values Values) string {
	for _, r := range f.Rule.Custom {
		if r.Check != nil && !r.Check(val, values) {
			return r.Message
		}
	}
	return ""
}

func requiredMessage(f Field) string {
	if f.Rule.RequiredMessage != "" {
		return f.Rule.RequiredMessage
	}
	return fmt.Sprintf("%s is required", label(f))
}

func minLenMessage(f Field) string {
	if f.Rule.MinLenMessage != "" {
		return f.Rule.MinLenMessage
	}
	return fmt.Sprintf("%s must be at least %d characters", label(f), f.Rule.MinLen)
}

func patternMessage(f Field) string {
	if f.Rule.PatternMessage != "" {
		return f.Rule.PatternMessage
	}
	return fmt.Sprintf("%s has an invalid format", label(f))
}

func label(f Field) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
