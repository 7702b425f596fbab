package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/logger"
	"github.com/yungbote/genomelens-backend/internal/sse"
)

func TestTraitMergeIsIdempotentAndNonDestructive(t *testing.T) {
	traits := &fakeTraitRepo{values: map[uuid.UUID]map[string]interface{}{}}
	profileID := uuid.New()
	traits.values[profileID] = map[string]interface{}{
		"mood":      "sunny",
		"shoe_size": 43,
	}

	svc := NewTraitService(nil, logger.NewNop(), traits, nil)

	for i := 0; i < 2; i++ {
		if err := svc.Merge(context.Background(), uuid.New(), profileID, map[string]interface{}{"gene_a": 42}); err != nil {
			t.Fatalf("Merge #%d: %v", i+1, err)
		}
	}

	vals := traits.values[profileID]
	if vals["gene_a"] != 42 {
		t.Fatalf("gene_a=%v, want 42", vals["gene_a"])
	}
	if vals["mood"] != "sunny" || vals["shoe_size"] != 43 {
		t.Fatalf("pre-existing keys disturbed: %v", vals)
	}
}

func TestTraitMergeRejectsEmptyPatch(t *testing.T) {
	traits := &fakeTraitRepo{values: map[uuid.UUID]map[string]interface{}{}}
	svc := NewTraitService(nil, logger.NewNop(), traits, nil)

	err := svc.Merge(context.Background(), uuid.New(), uuid.New(), map[string]interface{}{})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
}

func TestTraitMergeNotifiesUserChannelWithoutRereading(t *testing.T) {
	traits := &fakeTraitRepo{values: map[uuid.UUID]map[string]interface{}{}}
	userID := uuid.New()
	profileID := uuid.New()
	traits.values[profileID] = map[string]interface{}{}

	hub := sse.NewSSEHub(logger.NewNop())
	client := hub.NewSSEClient(userID)
	hub.AddChannel(client, sse.UserChannel(userID))
	notifier := NewEventNotifier(logger.NewNop(), hub, nil)

	svc := NewTraitService(nil, logger.NewNop(), traits, notifier)
	if err := svc.Merge(context.Background(), userID, profileID, map[string]interface{}{"gene_a": 5}); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	select {
	case msg := <-client.Outbound:
		if msg.Channel != sse.UserChannel(userID) || msg.Event != sse.SSEEventTraitsMerged {
			t.Fatalf("unexpected message: %+v", msg)
		}
	default:
		t.Fatal("no SSE message delivered to the user channel")
	}

	if traits.getCalls != 0 {
		t.Fatalf("Merge read the trait doc %d times; the caller supplies the user id", traits.getCalls)
	}
}

func TestTraitReplaceIsDestructive(t *testing.T) {
	traits := &fakeTraitRepo{values: map[uuid.UUID]map[string]interface{}{}}
	profileID := uuid.New()
	traits.values[profileID] = map[string]interface{}{"mood": "sunny"}

	svc := NewTraitService(nil, logger.NewNop(), traits, nil)
	if err := svc.Replace(context.Background(), profileID, map[string]interface{}{"gene_a": 7}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	vals := traits.values[profileID]
	if _, ok := vals["mood"]; ok {
		t.Fatal("Replace kept a key it should have dropped")
	}
	if vals["gene_a"] != 7 {
		t.Fatalf("gene_a=%v, want 7", vals["gene_a"])
	}
}
