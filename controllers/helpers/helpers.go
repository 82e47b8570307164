package helpers

import "github.com/gookit/validate"

// Errors is the error-list response body. A request may surface several
// validation failures at once; domain failures arrive one at a time.
type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func (e *Errors) Add(message string) {
	e.Errors = append(e.Errors, message)
}

// Validate runs the gookit rules of payload and appends every failure message
// to errs.
func Validate(payload interface{}, errs *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, fieldErrors := range v.Errors.All() {
			for _, message := range fieldErrors {
				errs.Add(message)
			}
		}
	}
}
