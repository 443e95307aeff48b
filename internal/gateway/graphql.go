package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/machinebox/graphql"

	"boxtribute/internal/models"
)

// boxFields is the selection set shared by every box-returning operation.
// Postcondition checks need location, shipment detail and tags on the
// returned object, so they are always requested.
const boxFields = `
	labelIdentifier
	state
	deletedOn
	numberOfItems
	location { id name defaultBoxState deletedOn base { id name } }
	shipmentDetail { id removedOn shipment { id state } }
	tags { id name color }
`

const shipmentFields = `
	id
	state
	sourceBase { id name }
	targetBase { id name }
	details {
		id
		removedOn
		sourceQuantity
		box { labelIdentifier }
		sourceLocation { id name defaultBoxState }
	}
`

// errorTypenames maps the remote union discriminator onto error codes.
var errorTypenames = map[string]ErrorCode{
	"InsufficientPermissionError": CodeInsufficientPermission,
	"UnauthorizedForBaseError":    CodeUnauthorizedForBase,
	"ResourceDoesNotExistError":   CodeResourceDoesNotExist,
	"DeletedLocationError":        CodeDeletedLocation,
	"DeletedTagError":             CodeDeletedTag,
	"DeletedBoxError":             CodeDeletedBox,
	"InvalidShipmentStateError":   CodeInvalidShipmentState,
}

// GraphQLClient implements Client against the remote GraphQL service.
type GraphQLClient struct {
	client *graphql.Client
	token  string
}

func NewGraphQLClient(endpoint, token string) *GraphQLClient {
	return &GraphQLClient{
		client: graphql.NewClient(endpoint),
		token:  token,
	}
}

func (c *GraphQLClient) run(ctx context.Context, req *graphql.Request, resp interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if err := c.client.Run(ctx, req, resp); err != nil {
		msg := strings.TrimPrefix(err.Error(), "graphql: ")
		if code, ok := classifyMessage(msg); ok {
			return NewError(code, msg)
		}
		return fmt.Errorf("remote call failed: %w", err)
	}
	return nil
}

// boxesPayload is the flattened decoding of the BoxesResult union. Error
// members only carry __typename and name.
type boxesPayload struct {
	Typename                   string       `json:"__typename"`
	Name                       string       `json:"name"`
	UpdatedBoxes               []models.Box `json:"updatedBoxes"`
	InvalidBoxLabelIdentifiers []string     `json:"invalidBoxLabelIdentifiers"`
	TagErrorInfo               []TagError   `json:"tagErrorInfo"`
}

func (p *boxesPayload) toResult() (*BatchResult, error) {
	if code, ok := errorTypenames[p.Typename]; ok {
		return nil, NewError(code, p.Name)
	}
	return &BatchResult{
		UpdatedBoxes:       p.UpdatedBoxes,
		InvalidIdentifiers: p.InvalidBoxLabelIdentifiers,
		TagErrors:          p.TagErrorInfo,
	}, nil
}

const boxesResultFragment = `
		__typename
		... on BoxesResult {
			updatedBoxes { %s }
			invalidBoxLabelIdentifiers
			tagErrorInfo { id error }
		}
		... on InsufficientPermissionError { name }
		... on UnauthorizedForBaseError { name }
		... on ResourceDoesNotExistError { name }
		... on DeletedLocationError { name }
		... on DeletedTagError { name }
		... on DeletedBoxError { name }
		... on InvalidShipmentStateError { name }
`

func boxesMutation(field, args string) string {
	return fmt.Sprintf("mutation ($labelIdentifiers: [String!]!%s) {\n\tresult: %s {%s}\n}",
		args, field, fmt.Sprintf(boxesResultFragment, boxFields))
}

func (c *GraphQLClient) runBoxesMutation(ctx context.Context, req *graphql.Request) (*BatchResult, error) {
	var resp struct {
		Result boxesPayload `json:"result"`
	}
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Result.toResult()
}

func (c *GraphQLClient) BoxesByLabel(ctx context.Context, labelIdentifiers []string) ([]models.Box, error) {
	req := graphql.NewRequest(fmt.Sprintf(`
		query ($labelIdentifiers: [String!]!) {
			boxes(labelIdentifiers: $labelIdentifiers) { %s }
		}`, boxFields))
	req.Var("labelIdentifiers", labelIdentifiers)

	var resp struct {
		Boxes []models.Box `json:"boxes"`
	}
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Boxes, nil
}

func (c *GraphQLClient) ShipmentByID(ctx context.Context, id string) (*models.Shipment, error) {
	req := graphql.NewRequest(fmt.Sprintf(`
		query ($id: ID!) {
			shipment(id: $id) { %s }
		}`, shipmentFields))
	req.Var("id", id)

	var resp struct {
		Shipment *models.Shipment `json:"shipment"`
	}
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Shipment == nil {
		return nil, NewError(CodeResourceDoesNotExist, fmt.Sprintf("shipment %s does not exist", id))
	}
	return resp.Shipment, nil
}

func (c *GraphQLClient) OpenShipments(ctx context.Context) ([]models.Shipment, error) {
	req := graphql.NewRequest(fmt.Sprintf(`
		query {
			shipments(states: [Preparing]) { %s }
		}`, shipmentFields))

	var resp struct {
		Shipments []models.Shipment `json:"shipments"`
	}
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Shipments, nil
}

func (c *GraphQLClient) TagsByID(ctx context.Context, ids []string) ([]models.Tag, error) {
	req := graphql.NewRequest(`
		query ($ids: [ID!]!) {
			tags(ids: $ids) { id name color deletedOn }
		}`)
	req.Var("ids", ids)

	var resp struct {
		Tags []models.Tag `json:"tags"`
	}
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

func (c *GraphQLClient) AssignBoxesToShipment(ctx context.Context, shipmentID string, labelIdentifiers []string) (*BatchResult, error) {
	req := graphql.NewRequest(boxesMutation(
		"assignBoxesToShipment(shipmentId: $shipmentId, labelIdentifiers: $labelIdentifiers)",
		", $shipmentId: ID!"))
	req.Var("shipmentId", shipmentID)
	req.Var("labelIdentifiers", labelIdentifiers)
	return c.runBoxesMutation(ctx, req)
}

func (c *GraphQLClient) UnassignBoxesFromShipment(ctx context.Context, shipmentID string, labelIdentifiers []string) (*BatchResult, error) {
	req := graphql.NewRequest(boxesMutation(
		"unassignBoxesFromShipment(shipmentId: $shipmentId, labelIdentifiers: $labelIdentifiers)",
		", $shipmentId: ID!"))
	req.Var("shipmentId", shipmentID)
	req.Var("labelIdentifiers", labelIdentifiers)
	return c.runBoxesMutation(ctx, req)
}

func (c *GraphQLClient) MoveBoxesToLocation(ctx context.Context, labelIdentifiers []string, locationID string) (*BatchResult, error) {
	req := graphql.NewRequest(boxesMutation(
		"moveBoxesToLocation(labelIdentifiers: $labelIdentifiers, locationId: $locationId)",
		", $locationId: ID!"))
	req.Var("labelIdentifiers", labelIdentifiers)
	req.Var("locationId", locationID)
	return c.runBoxesMutation(ctx, req)
}

func (c *GraphQLClient) DeleteBoxes(ctx context.Context, labelIdentifiers []string) (*BatchResult, error) {
	req := graphql.NewRequest(boxesMutation(
		"deleteBoxes(labelIdentifiers: $labelIdentifiers)", ""))
	req.Var("labelIdentifiers", labelIdentifiers)
	return c.runBoxesMutation(ctx, req)
}

func (c *GraphQLClient) AssignTagsToBoxes(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*BatchResult, error) {
	req := graphql.NewRequest(boxesMutation(
		"assignTagsToBoxes(labelIdentifiers: $labelIdentifiers, tagIds: $tagIds)",
		", $tagIds: [ID!]!"))
	req.Var("labelIdentifiers", labelIdentifiers)
	req.Var("tagIds", tagIDs)
	return c.runBoxesMutation(ctx, req)
}

func (c *GraphQLClient) UnassignTagsFromBoxes(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*BatchResult, error) {
	req := graphql.NewRequest(boxesMutation(
		"unassignTagsFromBoxes(labelIdentifiers: $labelIdentifiers, tagIds: $tagIds)",
		", $tagIds: [ID!]!"))
	req.Var("labelIdentifiers", labelIdentifiers)
	req.Var("tagIds", tagIDs)
	return c.runBoxesMutation(ctx, req)
}

func (c *GraphQLClient) DeleteTags(ctx context.Context, tagIDs []string) (*TagBatchResult, error) {
	req := graphql.NewRequest(`
		mutation ($tagIds: [ID!]!) {
			result: deleteTags(tagIds: $tagIds) {
				__typename
				... on TagsResult {
					updatedTags { id name color deletedOn }
					invalidTagIds
				}
				... on InsufficientPermissionError { name }
				... on UnauthorizedForBaseError { name }
				... on ResourceDoesNotExistError { name }
			}
		}`)
	req.Var("tagIds", tagIDs)

	var resp struct {
		Result struct {
			Typename      string       `json:"__typename"`
			Name          string       `json:"name"`
			UpdatedTags   []models.Tag `json:"updatedTags"`
			InvalidTagIds []string     `json:"invalidTagIds"`
		} `json:"result"`
	}
	if err := c.run(ctx, req, &resp); err != nil {
		return nil, err
	}
	if code, ok := errorTypenames[resp.Result.Typename]; ok {
		return nil, NewError(code, resp.Result.Name)
	}
	return &TagBatchResult{
		UpdatedTags:        resp.Result.UpdatedTags,
		InvalidIdentifiers: resp.Result.InvalidTagIds,
	}, nil
}
