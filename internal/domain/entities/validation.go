package entities

// ValidationError marks field-level validation failures so the HTTP layer can
// answer 422 instead of a generic server error.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}
