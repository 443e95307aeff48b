package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"boxtribute/internal/gateway"
	"boxtribute/internal/models"
	"boxtribute/internal/reconcile"
)

type TagServiceTestSuite struct {
	suite.Suite
	gw      *MockGateway
	cache   *MockCacheService
	audit   *MockAuditRepo
	service TagService
	ctx     context.Context
}

func (suite *TagServiceTestSuite) SetupTest() {
	suite.gw = new(MockGateway)
	suite.cache = new(MockCacheService)
	suite.audit = new(MockAuditRepo)
	suite.service = NewTagService(suite.gw, suite.cache, suite.audit)
	suite.ctx = context.Background()

	suite.cache.On("GetBox", mock.Anything, mock.Anything).Return(nil, nil)
	suite.cache.On("SetBox", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.cache.On("DeleteBox", mock.Anything, mock.Anything).Return(nil)
	suite.audit.On("Create", mock.Anything, mock.Anything).Return(nil)
}

func TestTagServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TagServiceTestSuite))
}

func taggedBox(label string, tagIDs ...string) models.Box {
	box := models.Box{LabelIdentifier: label, State: models.BoxStateInStock}
	for _, id := range tagIDs {
		box.Tags = append(box.Tags, models.Tag{ID: id})
	}
	return box
}

func (suite *TagServiceTestSuite) TestAssignTags_Success() {
	labels := []string{"123456", "123457"}
	tagIDs := []string{"1", "2"}
	snapshots := []models.Box{taggedBox("123456"), taggedBox("123457", "1")}
	updated := []models.Box{taggedBox("123456", "1", "2"), taggedBox("123457", "1", "2")}

	suite.gw.On("BoxesByLabel", mock.Anything, labels).Return(snapshots, nil)
	suite.gw.On("AssignTagsToBoxes", mock.Anything, labels, tagIDs).
		Return(&gateway.BatchResult{UpdatedBoxes: updated}, nil)
	suite.cache.On("MergeBoxes", mock.Anything, updated, mock.Anything).Return(nil)

	out, err := suite.service.AssignTags(suite.ctx, labels, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeSuccess, out.Outcome)
	assert.Equal(suite.T(), labels, out.Succeeded)
	assert.Equal(suite.T(), "2 Boxes were successfully tagged.", out.Notification.Message)
}

func (suite *TagServiceTestSuite) TestAssignTags_TagStillMissingCountsAsFailed() {
	labels := []string{"123456"}
	tagIDs := []string{"1", "2"}
	snapshots := []models.Box{taggedBox("123456")}
	// The server returned the box but it did not pick up tag 2.
	updated := []models.Box{taggedBox("123456", "1")}

	suite.gw.On("BoxesByLabel", mock.Anything, labels).Return(snapshots, nil)
	suite.gw.On("AssignTagsToBoxes", mock.Anything, labels, tagIDs).
		Return(&gateway.BatchResult{UpdatedBoxes: updated}, nil)

	out, err := suite.service.AssignTags(suite.ctx, labels, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeFail, out.Outcome)
	assert.Equal(suite.T(), []string{"123456"}, out.Failed)
	suite.cache.AssertNotCalled(suite.T(), "MergeBoxes", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TagServiceTestSuite) TestAssignTags_SkipsDeletedBoxes() {
	now := time.Now()
	labels := []string{"123456", "123457"}
	tagIDs := []string{"1"}
	snapshots := []models.Box{
		taggedBox("123456"),
		{LabelIdentifier: "123457", State: models.BoxStateInStock, DeletedOn: &now},
	}
	updated := []models.Box{taggedBox("123456", "1")}

	suite.gw.On("BoxesByLabel", mock.Anything, labels).Return(snapshots, nil)
	suite.gw.On("AssignTagsToBoxes", mock.Anything, []string{"123456"}, tagIDs).
		Return(&gateway.BatchResult{UpdatedBoxes: updated}, nil)
	suite.cache.On("MergeBoxes", mock.Anything, updated, mock.Anything).Return(nil)

	out, err := suite.service.AssignTags(suite.ctx, labels, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeSuccess, out.Outcome)
	assert.Equal(suite.T(), []string{"123457"}, out.Ineligible)
}

func (suite *TagServiceTestSuite) TestUnassignTags_SurfacesTagErrors() {
	labels := []string{"123456"}
	tagIDs := []string{"1", "2"}
	snapshots := []models.Box{taggedBox("123456", "1", "2")}
	updated := []models.Box{taggedBox("123456")}
	tagErrors := []gateway.TagError{{TagID: "2", Message: "tag is in use by a filter"}}

	suite.gw.On("BoxesByLabel", mock.Anything, labels).Return(snapshots, nil)
	suite.gw.On("UnassignTagsFromBoxes", mock.Anything, labels, tagIDs).
		Return(&gateway.BatchResult{UpdatedBoxes: updated, TagErrors: tagErrors}, nil)
	suite.cache.On("MergeBoxes", mock.Anything, updated, mock.Anything).Return(nil)

	out, err := suite.service.UnassignTags(suite.ctx, labels, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeSuccess, out.Outcome)
	assert.Equal(suite.T(), tagErrors, out.TagErrors)
	assert.Equal(suite.T(), "1 Box was successfully untagged.", out.Notification.Message)
}

func (suite *TagServiceTestSuite) TestDeleteTags_Success() {
	tagIDs := []string{"1", "2"}
	now := time.Now()
	tags := []models.Tag{{ID: "1", Name: "winter"}, {ID: "2", Name: "kids"}}
	deleted := []models.Tag{
		{ID: "1", Name: "winter", DeletedOn: &now},
		{ID: "2", Name: "kids", DeletedOn: &now},
	}

	suite.gw.On("TagsByID", mock.Anything, tagIDs).Return(tags, nil)
	suite.gw.On("DeleteTags", mock.Anything, tagIDs).
		Return(&gateway.TagBatchResult{UpdatedTags: deleted}, nil)

	out, err := suite.service.DeleteTags(suite.ctx, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeSuccess, out.Outcome)
	assert.Equal(suite.T(), tagIDs, out.Succeeded)
	assert.Equal(suite.T(), "2 Tags were successfully deleted.", out.Notification.Message)
}

func (suite *TagServiceTestSuite) TestDeleteTags_AlreadyDeletedIsIneligible() {
	tagIDs := []string{"1", "2"}
	now := time.Now()
	tags := []models.Tag{
		{ID: "1", Name: "winter"},
		{ID: "2", Name: "kids", DeletedOn: &now},
	}
	deleted := []models.Tag{{ID: "1", Name: "winter", DeletedOn: &now}}

	suite.gw.On("TagsByID", mock.Anything, tagIDs).Return(tags, nil)
	suite.gw.On("DeleteTags", mock.Anything, []string{"1"}).
		Return(&gateway.TagBatchResult{UpdatedTags: deleted}, nil)

	out, err := suite.service.DeleteTags(suite.ctx, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeSuccess, out.Outcome)
	assert.Equal(suite.T(), []string{"1"}, out.Succeeded)
	assert.Equal(suite.T(), []string{"2"}, out.Ineligible)
	assert.Equal(suite.T(), "1 Tag was successfully deleted.", out.Notification.Message)
}

func (suite *TagServiceTestSuite) TestDeleteTags_UnknownTagIsIneligible() {
	tagIDs := []string{"1", "404"}
	now := time.Now()
	tags := []models.Tag{{ID: "1", Name: "winter"}}
	deleted := []models.Tag{{ID: "1", Name: "winter", DeletedOn: &now}}

	suite.gw.On("TagsByID", mock.Anything, tagIDs).Return(tags, nil)
	suite.gw.On("DeleteTags", mock.Anything, []string{"1"}).
		Return(&gateway.TagBatchResult{UpdatedTags: deleted}, nil)

	out, err := suite.service.DeleteTags(suite.ctx, tagIDs)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), reconcile.OutcomeSuccess, out.Outcome)
	assert.Contains(suite.T(), out.Ineligible, "404")
}
