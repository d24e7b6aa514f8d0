package commands

import (
	"context"

	"logistic/internal/core/ports"
)

// SetCredentialCommandHandler persists carrier credentials. Replacing the
// login or secret clears any cached token so the next request performs a
// fresh exchange with the new identity.
type SetCredentialCommandHandler struct {
	store ports.CredentialStore
}

// NewSetCredentialCommandHandler creates a handler backed by the given
// credential store.
func NewSetCredentialCommandHandler(store ports.CredentialStore) SetCredentialCommandHandler {
	return SetCredentialCommandHandler{store: store}
}

// Handle upserts the carrier's credential record in one atomic write.
func (h SetCredentialCommandHandler) Handle(ctx context.Context, cmd SetCredentialCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.store.Save(ctx, ports.Credential{
		ServiceName: cmd.ServiceName(),
		Login:       cmd.Login(),
		Secret:      cmd.Secret(),
		Token:       cmd.Token(),
	})
}
