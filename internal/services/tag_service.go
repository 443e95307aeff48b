package services

import (
	"context"

	"boxtribute/internal/caching"
	"boxtribute/internal/gateway"
	"boxtribute/internal/models"
	"boxtribute/internal/reconcile"
	"boxtribute/internal/repositories"
)

// TagService coordinates tag assignment and unassignment on boxes, plus tag
// deletion. Tags may be assigned regardless of box state; only deleted boxes
// are filtered out.
type TagService interface {
	AssignTags(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*OperationResult, error)
	UnassignTags(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*OperationResult, error)
	DeleteTags(ctx context.Context, tagIDs []string) (*OperationResult, error)
}

type tagService struct {
	coordinatorBase
	gw       gateway.Client
	resolver *SnapshotResolver
}

func NewTagService(gw gateway.Client, cache caching.CacheService, auditRepo repositories.BatchAuditRepository) TagService {
	return &tagService{
		coordinatorBase: coordinatorBase{cache: cache, auditRepo: auditRepo},
		gw:              gw,
		resolver:        NewSnapshotResolver(gw, cache),
	}
}

var assignTagsFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:     "No Boxes are eligible for tagging.",
	reconcile.OutcomeNotAuthorized:    "You don't have the permission to assign tags.",
	reconcile.OutcomeResourceNotFound: "At least one tag does not exist.",
	reconcile.OutcomeDeletedTarget:    "At least one tag was deleted.",
	reconcile.OutcomeNetworkFail:      "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:             "The tags could not be assigned to the Boxes.",
}

var unassignTagsFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:     "No Boxes are eligible for tag removal.",
	reconcile.OutcomeNotAuthorized:    "You don't have the permission to unassign tags.",
	reconcile.OutcomeResourceNotFound: "At least one tag does not exist.",
	reconcile.OutcomeNetworkFail:      "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:             "The tags could not be unassigned from the Boxes.",
}

var deleteTagsFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:  "No Tags are eligible for deletion.",
	reconcile.OutcomeNotAuthorized: "You don't have the permission to delete tags.",
	reconcile.OutcomeNetworkFail:   "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:          "The Tags could not be deleted.",
}

func (s *tagService) AssignTags(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*OperationResult, error) {
	boxes, unresolved, err := s.resolver.ResolveBoxes(ctx, labelIdentifiers)
	if err != nil {
		return nil, err
	}

	var updated []models.Box
	res := reconcile.Run(ctx, boxes, reconcile.Op[models.Box]{
		Key:      boxKeyFn,
		Eligible: func(b models.Box) bool { return !b.IsDeleted() },
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.AssignTagsToBoxes(ctx, keys, tagIDs)
			if err != nil {
				return nil, err
			}
			updated = payload.UpdatedBoxes
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, b := range payload.UpdatedBoxes {
				if hasAllTags(&b, tagIDs) {
					call.SucceededKeys = append(call.SucceededKeys, b.LabelIdentifier)
				}
			}
			return call, nil
		},
	})

	s.mergeBoxCache(ctx, res.Outcome, updated)
	out := operationResult(res, boxKeyFn, len(labelIdentifiers), unresolved)
	s.dropBoxes(ctx, out.Invalid)
	s.recordAudit(ctx, "assign_tags_to_boxes", nil, labelIdentifiers, out)
	if ctx.Err() == nil {
		out.buildNotification("Box", "tagged", assignTagsFailureMessages)
	}
	return out, nil
}

// UnassignTags carries a second axis of partial failure: the server reports
// per-tag errors separately from per-box invalidity, because one failing tag
// can block the operation for boxes that are otherwise eligible. Both are
// surfaced.
func (s *tagService) UnassignTags(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*OperationResult, error) {
	boxes, unresolved, err := s.resolver.ResolveBoxes(ctx, labelIdentifiers)
	if err != nil {
		return nil, err
	}

	var updated []models.Box
	var tagErrors []gateway.TagError
	res := reconcile.Run(ctx, boxes, reconcile.Op[models.Box]{
		Key:      boxKeyFn,
		Eligible: func(b models.Box) bool { return !b.IsDeleted() },
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.UnassignTagsFromBoxes(ctx, keys, tagIDs)
			if err != nil {
				return nil, err
			}
			updated = payload.UpdatedBoxes
			tagErrors = payload.TagErrors
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, b := range payload.UpdatedBoxes {
				if hasNoTags(&b, tagIDs) {
					call.SucceededKeys = append(call.SucceededKeys, b.LabelIdentifier)
				}
			}
			return call, nil
		},
	})

	s.mergeBoxCache(ctx, res.Outcome, updated)
	out := operationResult(res, boxKeyFn, len(labelIdentifiers), unresolved)
	out.TagErrors = tagErrors
	s.dropBoxes(ctx, out.Invalid)
	s.recordAudit(ctx, "unassign_tags_from_boxes", nil, labelIdentifiers, out)
	if ctx.Err() == nil {
		out.buildNotification("Box", "untagged", unassignTagsFailureMessages)
	}
	return out, nil
}

func (s *tagService) DeleteTags(ctx context.Context, tagIDs []string) (*OperationResult, error) {
	tags, err := s.gw.TagsByID(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	unresolved := missingTagIDs(tagIDs, tags)

	res := reconcile.Run(ctx, tags, reconcile.Op[models.Tag]{
		Key:      tagKeyFn,
		Eligible: func(t models.Tag) bool { return !t.IsDeleted() },
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.DeleteTags(ctx, keys)
			if err != nil {
				return nil, err
			}
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, t := range payload.UpdatedTags {
				if t.IsDeleted() {
					call.SucceededKeys = append(call.SucceededKeys, t.ID)
				}
			}
			return call, nil
		},
	})

	out := operationResult(res, tagKeyFn, len(tagIDs), unresolved)
	s.recordAudit(ctx, "delete_tags", nil, tagIDs, out)
	if ctx.Err() == nil {
		out.buildNotification("Tag", "deleted", deleteTagsFailureMessages)
	}
	return out, nil
}

func tagKeyFn(t models.Tag) string { return t.ID }

func hasAllTags(b *models.Box, tagIDs []string) bool {
	for _, id := range tagIDs {
		if !b.HasTag(id) {
			return false
		}
	}
	return true
}

func hasNoTags(b *models.Box, tagIDs []string) bool {
	for _, id := range tagIDs {
		if b.HasTag(id) {
			return false
		}
	}
	return true
}

func missingTagIDs(requested []string, tags []models.Tag) []string {
	found := make(map[string]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	var missing []string
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
