// Package dynamodb implements the user registry on DynamoDB.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsagg-backend/application/ports"
	"newsagg-backend/domain/user"
	apperrors "newsagg-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements the UserRepository port using DynamoDB
type UserRepository struct {
	client    *awsdynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *awsdynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK               string `dynamodbav:"PK"`
	SK               string `dynamodbav:"SK"`
	EntityType       string `dynamodbav:"EntityType"`
	UserID           string `dynamodbav:"UserID"`
	Email            string `dynamodbav:"Email"`
	SubscriptionTier string `dynamodbav:"SubscriptionTier"`
	Preferences      string `dynamodbav:"Preferences"`
	CreatedAt        string `dynamodbav:"CreatedAt"`
	LastDigestAt     string `dynamodbav:"LastDigestAt,omitempty"`
}

func userKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", id)},
		"SK": &types.AttributeValueMemberS{Value: "METADATA"},
	}
}

func toItem(u *user.User) userItem {
	item := userItem{
		PK:               fmt.Sprintf("USER#%s", u.ID),
		SK:               "METADATA",
		EntityType:       "USER",
		UserID:           u.ID,
		Email:            u.Email,
		SubscriptionTier: string(u.SubscriptionTier),
		Preferences:      u.Preferences,
		CreatedAt:        u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastDigestAt != nil {
		item.LastDigestAt = u.LastDigestAt.Format(time.RFC3339)
	}
	return item
}

func fromItem(item userItem) (*user.User, error) {
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return nil, apperrors.NewMalformedError("user record", err)
	}

	u := &user.User{
		ID:               item.UserID,
		Email:            item.Email,
		SubscriptionTier: user.SubscriptionTier(item.SubscriptionTier),
		Preferences:      item.Preferences,
		CreatedAt:        createdAt,
	}

	if item.LastDigestAt != "" {
		lastDigestAt, err := time.Parse(time.RFC3339, item.LastDigestAt)
		if err != nil {
			return nil, apperrors.NewMalformedError("user record", err)
		}
		u.LastDigestAt = &lastDigestAt
	}

	return u, nil
}

// Save persists a user (create or update)
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	av, err := attributevalue.MarshalMap(toItem(u))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save user",
			zap.String("userID", u.ID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       userKey(id),
	})
	if err != nil {
		r.logger.Error("Failed to get user",
			zap.String("userID", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewMalformedError("user record", err)
	}

	return fromItem(item)
}

// TouchLastDigest records the completion time of a user's latest digest
func (r *UserRepository) TouchLastDigest(ctx context.Context, id string, at time.Time) error {
	update := expression.Set(
		expression.Name("LastDigestAt"),
		expression.Value(at.UTC().Format(time.RFC3339)),
	)
	cond := expression.AttributeExists(expression.Name("PK"))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	if _, err := r.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       userKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return apperrors.NewNotFoundError("user")
		}
		r.logger.Error("Failed to touch last digest time",
			zap.String("userID", id),
			zap.Error(err),
		)
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete removes a user; deleting a missing user succeeds
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       userKey(id),
	}); err != nil {
		r.logger.Error("Failed to delete user",
			zap.String("userID", id),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
