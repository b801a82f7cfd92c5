package account

// Class tags a failed account operation so the HTTP layer can map each
// failure family to its own status code instead of collapsing everything
// into one.
type Class int

const (
	ClassValidation   Class = iota // malformed or missing request fields
	ClassNotFound                  // unknown email
	ClassUnauthorized              // bad credentials, unconfirmed email
	ClassLockedOut                 // too many failed attempts
	ClassTwoFactor                 // second factor required
	ClassDependency                // template or queue failure
	ClassInternal                  // anything unexpected
)

// Failure is the tagged result of a failed account operation. Clients see
// Message (and Errors for registration); internal detail stays in the logs.
type Failure struct {
	Class   Class
	Message string
	Errors  []string
}

func failValidation(msg string) *Failure {
	return &Failure{Class: ClassValidation, Message: msg}
}

func failValidationList(errs []string) *Failure {
	return &Failure{Class: ClassValidation, Errors: errs}
}

// genericFailureMessage is what dependency and internal failures show the
// client; the underlying error is logged, never returned.
const genericFailureMessage = "Something went wrong, please try again."

func failDependency() *Failure {
	return &Failure{Class: ClassDependency, Message: genericFailureMessage}
}

func failInternal() *Failure {
	return &Failure{Class: ClassInternal, Message: genericFailureMessage}
}
