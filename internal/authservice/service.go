// Package authservice manages the credential sign-in flow.
package authservice

import (
	"context"
	"errors"

	"github.com/go-petr/invoice-dash/internal/domain"
	"github.com/go-petr/invoice-dash/internal/userservice"
	"github.com/go-petr/invoice-dash/pkg/passpkg"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// User-facing authentication outcomes.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

// SignInner is the sign-in collaborator Authenticate delegates to.
//
//go:generate mockgen -source service.go -destination service_mock.go -package authservice
type SignInner interface {
	SignIn(ctx context.Context, strategy string, form domain.LoginFormValues) (domain.UserWithoutPassword, error)
}

// Service translates sign-in outcomes for the login form.
type Service struct {
	signIn SignInner
}

// New returns auth service struct to manage the login flow.
func New(si SignInner) *Service {
	return &Service{
		signIn: si,
	}
}

// Login attempts a credentials sign-in and returns the authenticated
// identity, or a user-facing message for tagged authentication failures.
// Any error that is not an AuthError propagates unmodified.
func (s *Service) Login(ctx context.Context, form domain.LoginFormValues) (domain.UserWithoutPassword, string, error) {
	user, err := s.signIn.SignIn(ctx, domain.StrategyCredentials, form)
	if err == nil {
		return user, "", nil
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		if authErr.Kind == domain.AuthKindCredentialsSignin {
			return user, MsgInvalidCredentials, nil
		}

		return user, MsgSomethingWentWrong, nil
	}

	return user, "", err
}

// Authenticate reports the outcome of a credentials sign-in attempt for the
// given login form. An empty message with a nil error means success.
func (s *Service) Authenticate(ctx context.Context, prev string, form domain.LoginFormValues) (string, error) {
	_, message, err := s.Login(ctx, form)
	return message, err
}

// UserGetter provides the credential store lookup needed by the credentials
// strategy.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// CredentialsSignIn is the email+password strategy of the sign-in
// collaborator.
type CredentialsSignIn struct {
	users    UserGetter
	validate *validator.Validate
}

// NewCredentialsSignIn returns the credentials strategy backed by the given
// user store.
func NewCredentialsSignIn(users UserGetter) *CredentialsSignIn {
	return &CredentialsSignIn{
		users:    users,
		validate: validator.New(),
	}
}

// SignIn authorizes the submitted credentials. A rejected sign-in is tagged
// AuthKindCredentialsSignin without revealing which check failed; store
// failures pass through untagged.
func (c *CredentialsSignIn) SignIn(ctx context.Context, strategy string, form domain.LoginFormValues) (domain.UserWithoutPassword, error) {
	var identity domain.UserWithoutPassword

	if strategy != domain.StrategyCredentials {
		return identity, &domain.AuthError{Kind: domain.AuthKindUnsupportedStrategy}
	}

	user, ok, err := c.authorize(ctx, form)
	if err != nil {
		return identity, err
	}

	if !ok {
		return identity, &domain.AuthError{Kind: domain.AuthKindCredentialsSignin}
	}

	return user, nil
}

// authorize returns the identity for valid credentials and ok=false when the
// credentials do not authorize. The reason is logged, never returned.
func (c *CredentialsSignIn) authorize(ctx context.Context, form domain.LoginFormValues) (domain.UserWithoutPassword, bool, error) {
	l := zerolog.Ctx(ctx)

	var identity domain.UserWithoutPassword

	if err := c.validate.Struct(form); err != nil {
		l.Info().Err(err).Msg("invalid credentials")
		return identity, false, nil
	}

	user, err := c.users.GetByEmail(ctx, form.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			l.Info().Msg("invalid credentials")
			return identity, false, nil
		}

		return identity, false, err
	}

	if err := passpkg.Check(form.Password, user.HashedPassword); err != nil {
		l.Info().Msg("invalid credentials")
		return identity, false, nil
	}

	return userservice.NewUserWithoutPassword(user), true, nil
}
