package commands

import (
	"errors"

	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

var (
	ErrSetCredentialCommandIsNotConstructed = errors.New(
		"SetCredentialCommand must be created via NewSetCredentialCommand constructor",
	)
	ErrServiceNameIsRequired = errs.NewValueIsRequiredError("service name")
	ErrCredentialIsEmpty     = errs.NewValueIsRequiredError(
		"at least one of login, secret or token")
)

// SetCredentialCommand registers or replaces a carrier's API credentials.
// OAuth-style carriers store a login and secret and let the token column be
// managed by the token exchange; appkey-style carriers store the static key
// in the token field directly.
//
// Example:
//
//	cmd, err := NewSetCredentialCommand("cdek", "account", "password", "")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to store credentials: %w", err)
//	}
type SetCredentialCommand struct { //nolint:recvcheck //using for validation
	serviceName string
	login       string
	secret      string
	token       string

	guard guard.ConstructorGuard
}

// NewSetCredentialCommand creates the command. The service name is
// mandatory and at least one credential part must be present.
func NewSetCredentialCommand(serviceName, login, secret, token string) (SetCredentialCommand, error) {
	command := SetCredentialCommand{
		guard: guard.NewConstructorGuard(),
	}

	if serviceName == "" {
		return SetCredentialCommand{}, ErrServiceNameIsRequired
	}
	if login == "" && secret == "" && token == "" {
		return SetCredentialCommand{}, ErrCredentialIsEmpty
	}

	command.serviceName = serviceName
	command.login = login
	command.secret = secret
	command.token = token
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCredentialCommand) Validate() error {
	return c.guard.Validate(ErrSetCredentialCommandIsNotConstructed)
}

// ServiceName returns the carrier the credentials belong to.
func (c SetCredentialCommand) ServiceName() string {
	return c.serviceName
}

// Login returns the account login, empty for appkey-style carriers.
func (c SetCredentialCommand) Login() string {
	return c.login
}

// Secret returns the account secret, empty for appkey-style carriers.
func (c SetCredentialCommand) Secret() string {
	return c.secret
}

// Token returns the static key, empty for OAuth-style carriers.
func (c SetCredentialCommand) Token() string {
	return c.token
}
