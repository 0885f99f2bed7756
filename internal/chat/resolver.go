package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/kly-netizen/infonow-chat/infrastructure"
	"github.com/kly-netizen/infonow-chat/internal/user"
)

type resolvedParticipants struct {
	creator *user.User
	others  []*user.User
}

func (r *resolvedParticipants) userIDs() []int64 {
	ids := []int64{r.creator.ID}
	for _, u := range r.others {
		ids = append(ids, u.ID)
	}
	return ids
}

// resolveParticipants turns the creator plus the proposed external ids into
// existing user records. The creator is always part of the request set, so
// a single fetch answers both existence and partition. Pure read, no side
// effects.
func (s *Service) resolveParticipants(ctx context.Context, creatorExternalID string, proposed []string) (*resolvedParticipants, error) {
	creatorID, err := uuid.Parse(creatorExternalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrInvalidParticipant, err)
	}

	requested := lo.Uniq(append([]string{creatorExternalID}, proposed...))

	users, err := s.users.UsersByExternalIDs(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}
	if len(users) < len(requested) {
		return nil, fmt.Errorf("%w: %d of %d ids resolved",
			infrastructure.ErrInvalidParticipant, len(users), len(requested))
	}

	creator, found := lo.Find(users, func(u *user.User) bool {
		return u.ExternalID == creatorID
	})
	if !found {
		// Unreachable when the store honors the id filter; checked anyway.
		return nil, infrastructure.ErrCreatorNotFound
	}

	others := lo.Filter(users, func(u *user.User, _ int) bool {
		return u.ExternalID != creatorID
	})
	if len(others) == 0 {
		return nil, infrastructure.ErrNoParticipants
	}

	return &resolvedParticipants{creator: creator, others: others}, nil
}
