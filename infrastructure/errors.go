package infrastructure

import "errors"

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrCreatorNotFound    = errors.New("creator not found")
	ErrNoParticipants     = errors.New("no participants")
	ErrChatNotFound       = errors.New("chat not found")
	ErrPersistenceFailed  = errors.New("persistence failed")
)
