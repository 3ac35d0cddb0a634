// Package form tracks the editing and submission state of one form.
package form

import (
	"context"
	"maps"

	"greenpath/internal/query"
	"greenpath/internal/validate"
)

// Phase is where a form is in its edit/submit cycle.
type Phase int

const (
	Pristine Phase = iota
	Editing
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "pristine"
	}
}

// Controller binds a schema to the current field values. Field errors are
// recomputed on every change but only surface after the first submit
// attempt. A Controller is owned by a single UI model and is not safe for
// concurrent use.
type Controller[T any] struct {
	schema    *validate.Schema[T]
	defaults  map[string]string
	values    map[string]string
	errs      validate.Errors
	phase     Phase
	attempted bool
	submitErr error
}

// New creates a pristine controller populated with defaults.
func New[T any](schema *validate.Schema[T], defaults map[string]string) *Controller[T] {
	c := &Controller[T]{schema: schema, defaults: maps.Clone(defaults)}
	if c.defaults == nil {
		c.defaults = map[string]string{}
	}
	c.Reset()
	return c
}

// Reset restores defaults and forgets any submit attempt.
func (c *Controller[T]) Reset() {
	c.values = maps.Clone(c.defaults)
	c.phase = Pristine
	c.attempted = false
	c.submitErr = nil
	c.revalidate()
}

func (c *Controller[T]) revalidate() {
	_, c.errs = c.schema.Validate(c.values)
}

// Set changes one field. Edits are ignored while a submit is in flight.
func (c *Controller[T]) Set(field, value string) {
	if c.phase == Submitting {
		return
	}
	if cur, ok := c.values[field]; ok && cur == value {
		return
	}
	c.values[field] = value
	c.phase = Editing
	c.revalidate()
}

// Value returns the current text of field.
func (c *Controller[T]) Value(field string) string {
	return c.values[field]
}

// Values returns a copy of all current field values.
func (c *Controller[T]) Values() map[string]string {
	return maps.Clone(c.values)
}

// Phase reports the current phase.
func (c *Controller[T]) Phase() Phase { return c.phase }

// Attempted reports whether submit has been tried since the last reset.
func (c *Controller[T]) Attempted() bool { return c.attempted }

// Valid reports whether the current values pass the schema.
func (c *Controller[T]) Valid() bool { return len(c.errs) == 0 }

// Errors returns every current validation error, shown or not.
func (c *Controller[T]) Errors() validate.Errors {
	return maps.Clone(c.errs)
}

// VisibleErrors returns the errors the user should see: none before the
// first submit attempt.
func (c *Controller[T]) VisibleErrors() validate.Errors {
	if !c.attempted || len(c.errs) == 0 {
		return nil
	}
	return maps.Clone(c.errs)
}

// FieldError returns the visible error for field, if any.
func (c *Controller[T]) FieldError(field string) string {
	if !c.attempted {
		return ""
	}
	return c.errs[field]
}

// SubmitError is the failure of the last submission, cleared on success.
func (c *Controller[T]) SubmitError() error { return c.submitErr }

// Begin starts a submission. It reveals field errors and returns ok=false if
// the values are invalid or a submission is already running; otherwise it
// enters Submitting and returns the validated value.
func (c *Controller[T]) Begin() (T, bool) {
	var zero T
	if c.phase == Submitting {
		return zero, false
	}
	c.attempted = true
	v, errs := c.schema.Validate(c.values)
	c.errs = errs
	if len(errs) > 0 {
		if c.phase == Pristine {
			c.phase = Editing
		}
		return zero, false
	}
	c.phase = Submitting
	c.submitErr = nil
	return v, true
}

// Finish ends a submission. Success resets the form to its defaults; a
// failure keeps every value and records err.
func (c *Controller[T]) Finish(err error) {
	if c.phase != Submitting {
		return
	}
	if err == nil {
		c.Reset()
		return
	}
	c.phase = Editing
	c.submitErr = err
}

// Submit runs Begin, the mutation and Finish in one call. ok is false when
// validation stopped the submission before the mutation ran.
func Submit[T, Out any](ctx context.Context, c *Controller[T], m *query.Mutation[T, Out]) (res query.Result[Out], ok bool) {
	v, ok := c.Begin()
	if !ok {
		return res, false
	}
	res = m.Execute(ctx, v)
	c.Finish(res.Err)
	return res, true
}
