package app

// ValidationError rejects malformed input before any persistence call.
type ValidationError struct{ msg string }

func (e ValidationError) Error() string { return e.msg }

func errValidation(msg string) error { return ValidationError{msg: msg} }
