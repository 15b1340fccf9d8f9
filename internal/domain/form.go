package domain

// EffectKind distinguishes presentation side effects requested by a mutation.
type EffectKind string

const (
	// EffectInvalidate instructs the caller to discard the cached rendering of a path.
	EffectInvalidate EffectKind = "invalidate"
	// EffectNavigate instructs the caller to navigate to a path.
	EffectNavigate EffectKind = "navigate"
)

// Effect is an explicit side-effect signal returned to the presentation layer.
type Effect struct {
	Kind EffectKind `json:"kind"`
	Path string     `json:"path"`
}

// Invalidate returns a cache invalidation signal for the given path.
func Invalidate(path string) Effect {
	return Effect{Kind: EffectInvalidate, Path: path}
}

// Navigate returns a navigation signal to the given path.
func Navigate(path string) Effect {
	return Effect{Kind: EffectNavigate, Path: path}
}

// InvoiceFormValues holds the raw string fields of a submitted invoice form.
type InvoiceFormValues struct {
	CustomerID string `json:"customerId" form:"customerId"`
	Amount     string `json:"amount" form:"amount"`
	Status     string `json:"status" form:"status"`
}

// InvoiceFormState is returned to the submitting view after a mutation attempt.
// Either Errors/Message describe a failure for redisplay, or Effects carry
// the invalidation and navigation signals of a successful write.
type InvoiceFormState struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
	Effects []Effect            `json:"-"`
}

// LoginFormValues holds the raw fields of a submitted login form.
type LoginFormValues struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}
