// internal/errors/errors.go
package appErrors

import "fmt"

// ErrTrialExists is a sentinel error for duplicate trial creation
type ErrTrialExists struct {
	InvitationID string
}

func (e *ErrTrialExists) Error() string {
	return fmt.Sprintf("trial for invitation %s already exists", e.InvitationID)
}

// Helper constructor
func NewTrialExists(invitationID string) error {
	return &ErrTrialExists{InvitationID: invitationID}
}

// ErrTrialNotFound is a sentinel error for lookups of unknown invitations
type ErrTrialNotFound struct {
	InvitationID string
}

func (e *ErrTrialNotFound) Error() string {
	return fmt.Sprintf("trial for invitation %s not found", e.InvitationID)
}

func NewTrialNotFound(invitationID string) error {
	return &ErrTrialNotFound{InvitationID: invitationID}
}
