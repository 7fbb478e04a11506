package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kbukum/storefront/errors"
)

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

// Rules checks a configuration section and reports every violation at
// once. The zero value is ready to use; checks chain.
//
//	var r validation.Rules
//	return r.OneOf("store", c.Store, "memory", "redis").
//		AtLeast("ttl", c.TTL, time.Minute).
//		Err()
type Rules struct {
	errs []FieldError
}

func (r *Rules) fail(field, tag, message string) *Rules {
	r.errs = append(r.errs, FieldError{Field: field, Tag: tag, Message: message})
	return r
}

// Check records message against field unless ok holds.
func (r *Rules) Check(ok bool, field, message string) *Rules {
	if ok {
		return r
	}
	return r.fail(field, "check", message)
}

// Path requires an absolute URL path.
func (r *Rules) Path(field, value string) *Rules {
	if strings.HasPrefix(value, "/") {
		return r
	}
	return r.fail(field, "path", fmt.Sprintf("must start with /, got %q", value))
}

// OneOf requires value to be one of allowed.
func (r *Rules) OneOf(field, value string, allowed ...string) *Rules {
	if slices.Contains(allowed, value) {
		return r
	}
	return r.fail(field, "oneof", fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), value))
}

// AtLeast requires a duration of at least floor.
func (r *Rules) AtLeast(field string, value, floor time.Duration) *Rules {
	if value >= floor {
		return r
	}
	return r.fail(field, "min", fmt.Sprintf("must be at least %s, got %s", floor, value))
}

// MinLength requires an optional string, when set, to be at least n bytes.
func (r *Rules) MinLength(field, value string, n int) *Rules {
	if value == "" || len(value) >= n {
		return r
	}
	return r.fail(field, "min", fmt.Sprintf("must be at least %d characters", n))
}

// Include merges the result of a nested section's Validate under prefix.
func (r *Rules) Include(prefix string, err error) *Rules {
	if err == nil {
		return r
	}
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return r.fail(prefix, "", err.Error())
	}
	for _, f := range fields {
		f.Field = prefix + "." + f.Field
		r.errs = append(r.errs, f)
	}
	return r
}

// Errors returns the recorded violations.
func (r *Rules) Errors() []FieldError { return r.errs }

// Err returns nil, or an INVALID_INPUT AppError listing every violation
// with the field errors in its details.
func (r *Rules) Err() error {
	if len(r.errs) == 0 {
		return nil
	}
	messages := make([]string, len(r.errs))
	for i, e := range r.errs {
		messages[i] = e.Field + " " + e.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": r.errs}
	return appErr
}
