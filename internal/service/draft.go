package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// draftTTL bounds how long a generated list waits for the user to save it.
const draftTTL = 24 * time.Hour

// ListDraftService stashes a freshly generated consolidated list in Redis
// between the generate and save steps, so the save endpoint can fall back to
// it when the client submits no edits. One draft per user, last write wins.
type ListDraftService struct {
	redis *redis.Client
}

func NewListDraftService(redisClient *redis.Client) *ListDraftService {
	return &ListDraftService{redis: redisClient}
}

func draftKey(userID uuid.UUID) string {
	return fmt.Sprintf("shopping:draft:%s", userID)
}

// PutDraft stores the list under the user's draft key, replacing any prior
// draft.
func (s *ListDraftService) PutDraft(ctx context.Context, userID uuid.UUID, list ConsolidatedList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(userID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetDraft returns the user's stashed list, or ErrNotFound when no draft
// exists or it has expired.
func (s *ListDraftService) GetDraft(ctx context.Context, userID uuid.UUID) (ConsolidatedList, error) {
	data, err := s.redis.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var list ConsolidatedList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return list, nil
}

// DeleteDraft drops the user's draft, if any.
func (s *ListDraftService) DeleteDraft(ctx context.Context, userID uuid.UUID) error {
	if err := s.redis.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
