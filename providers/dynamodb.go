package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func (c *Clients) PutDynamoDBItem(ctx context.Context, tableName string, item map[string]types.AttributeValue) (*dynamodb.PutItemOutput, error) {
	return c.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	})
}

func (c *Clients) QueryDynamoDB(ctx context.Context, tableName, keyConditionExpression string, values map[string]types.AttributeValue) (*dynamodb.QueryOutput, error) {
	return c.DynamoDB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    aws.String(keyConditionExpression),
		ExpressionAttributeValues: values,
	})
}
