package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopglass/wholesale-gate/slices"
	"github.com/shopglass/wholesale-gate/wholesale"
)

var _ wholesale.RecordStore = &DB{}

type submissionDynamo struct {
	PK     string
	SK     string
	GSI1PK string
	GSI1SK string

	CustomerID     string
	Version        int
	IdempotencyKey string
	Status         string
	GroupID        *int64
	Email          string
	CompanyName    string
	SubmittedAt    time.Time
}

const (
	submissionEntityName = "SUBMISSION"
	customerEntityName   = "CUSTOMER"
)

func submissionPK(customerID string) string {
	return fmt.Sprintf("%s#%s", customerEntityName, customerID)
}

func submissionSK() string {
	return submissionEntityName
}

func submissionToDynamo(record wholesale.SubmissionRecord) submissionDynamo {
	return submissionDynamo{
		PK:             submissionPK(record.CustomerID),
		SK:             submissionSK(),
		GSI1PK:         submissionEntityName,
		GSI1SK:         fmt.Sprintf("%s#%s", record.SubmittedAt.UTC().Format(time.RFC3339Nano), record.CustomerID),
		CustomerID:     record.CustomerID,
		Version:        record.Version,
		IdempotencyKey: record.IdempotencyKey,
		Status:         record.Status,
		GroupID:        record.GroupID,
		Email:          record.Email,
		CompanyName:    record.CompanyName,
		SubmittedAt:    record.SubmittedAt,
	}
}

func dynamoToSubmission(item submissionDynamo) wholesale.SubmissionRecord {
	return wholesale.SubmissionRecord{
		CustomerID:     item.CustomerID,
		Version:        item.Version,
		IdempotencyKey: item.IdempotencyKey,
		Status:         item.Status,
		GroupID:        item.GroupID,
		Email:          item.Email,
		CompanyName:    item.CompanyName,
		SubmittedAt:    item.SubmittedAt,
	}
}

func (d *DB) CreateSubmission(ctx context.Context, record wholesale.SubmissionRecord) error {
	dynamoRecord := submissionToDynamo(record)

	item, err := attributevalue.MarshalMap(dynamoRecord)
	if err != nil {
		return wholesale.NewFailedToTranslateToDBModelError("Failed to translate submission record to dynamo model", err)
	}

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(newEntityVersionConditional(dynamoRecord.Version)))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailedErr) {
			return wholesale.NewRecordAlreadyExistsError(fmt.Sprintf("Submission record for customer %q already exists", record.CustomerID), err)
		}
		return wholesale.NewFailedToWriteError("Failed PutItem call", err)
	}

	return nil
}

func (d *DB) GetSubmission(ctx context.Context, customerID string) (wholesale.SubmissionRecord, error) {
	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: submissionPK(customerID)},
			"SK": &types.AttributeValueMemberS{Value: submissionSK()},
		},
	})
	if err != nil {
		return wholesale.SubmissionRecord{}, wholesale.NewFailedToFetchError(fmt.Sprintf("Failed to fetch submission record for customer %q", customerID), err)
	}

	if len(resp.Item) == 0 {
		return wholesale.SubmissionRecord{}, wholesale.NewRecordDoesNotExistError(fmt.Sprintf("No submission record for customer %q", customerID), nil)
	}

	var item submissionDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &item)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal submission record from dynamo: %s", err))
	}

	return dynamoToSubmission(item), nil
}

func (d *DB) GetAllSubmissions(ctx context.Context, limit int32, cursor *string) (wholesale.GetAllSubmissionsResponse, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(submissionEntityName))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build dynamo key expression: %s", err))
	}

	var startKey map[string]types.AttributeValue
	if cursor != nil {
		startKey, err = cursorToLastEval(*cursor)
		if err != nil {
			return wholesale.GetAllSubmissionsResponse{}, wholesale.NewInvalidCursorError("Invalid cursor", err)
		}
	}

	result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(d.tableName),
		IndexName:                 aws.String(gsi1),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		// Fetch 1 more than limit to check if there is another page or not
		Limit:             aws.Int32(limit + 1),
		ExclusiveStartKey: startKey,
	})
	if err != nil {
		return wholesale.GetAllSubmissionsResponse{}, wholesale.NewFailedToFetchError("Failed to fetch submission records from dynamo", err)
	}

	var dynamoItems []submissionDynamo
	err = attributevalue.UnmarshalListOfMaps(result.Items, &dynamoItems)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal dynamo submission records: %s", err))
	}

	hasNextPage := len(dynamoItems) > int(limit)

	var newCursor *string
	if hasNextPage && len(result.LastEvaluatedKey) > 0 {
		// Can't use LastEvalKey directly because we grabbed an extra item to check for next page
		lastItemGivenToUser := result.Items[len(result.Items)-2]
		lastItemKey := getKeyFromItem(result.LastEvaluatedKey, lastItemGivenToUser)
		c, err := lastEvalKeyToCursor(lastItemKey)
		if err != nil {
			panic(fmt.Sprintf("failed to make cursor from lastEvalKey: %s", err))
		}
		newCursor = &c
	}

	return wholesale.GetAllSubmissionsResponse{
		Data: slices.Map(dynamoItems, func(v submissionDynamo) wholesale.SubmissionRecord {
			return dynamoToSubmission(v)
		})[:min(int(limit), len(dynamoItems))],
		Cursor:      newCursor,
		HasNextPage: hasNextPage,
	}, nil
}
