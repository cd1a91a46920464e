package logger

import "errors"

// TaggedError names the component an error came from so the top-level
// handler can log it under that component's tag.
type TaggedError struct {
	tag string
	err error
}

func (e *TaggedError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *TaggedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Tag returns the associated logger tag.
func (e *TaggedError) Tag() string {
	if e == nil {
		return ""
	}
	return e.tag
}

// WithTag wraps err with a logger tag. If err is nil, nil is returned. An
// error that already carries a tag keeps it: the innermost component wins.
func WithTag(tag string, err error) error {
	if err == nil {
		return nil
	}
	if ErrorTag(err) != "" {
		return err
	}
	return &TaggedError{tag: tag, err: err}
}

// ErrorTag extracts the logger tag from an error chain, or "".
func ErrorTag(err error) string {
	var tagged *TaggedError
	if errors.As(err, &tagged) {
		return tagged.Tag()
	}
	return ""
}
