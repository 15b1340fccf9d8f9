package domain

import "fmt"

// StrategyCredentials is the strategy tag for email+password sign-in.
const StrategyCredentials = "credentials"

// AuthError kinds.
const (
	// AuthKindCredentialsSignin marks a sign-in rejected for bad credentials.
	AuthKindCredentialsSignin = "CredentialsSignin"
	// AuthKindUnsupportedStrategy marks a sign-in request for an unknown strategy.
	AuthKindUnsupportedStrategy = "UnsupportedStrategy"
)

// AuthError tags a sign-in failure with its kind. Callers translate known
// kinds into user-facing messages and let every other error type through.
type AuthError struct {
	Kind string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error %s: %v", e.Kind, e.Err)
	}

	return "auth error " + e.Kind
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
