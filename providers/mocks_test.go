package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/mock"
)

// result extracts a typed output, tolerating nil returns in error cases.
func result[T any](args mock.Arguments) (*T, error) {
	out, _ := args.Get(0).(*T)
	return out, args.Error(1)
}

type mockLambda struct{ mock.Mock }

func (m *mockLambda) DeleteFunction(ctx context.Context, in *lambda.DeleteFunctionInput, _ ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	return result[lambda.DeleteFunctionOutput](m.Called(ctx, in))
}

func (m *mockLambda) ListFunctions(ctx context.Context, in *lambda.ListFunctionsInput, _ ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	return result[lambda.ListFunctionsOutput](m.Called(ctx, in))
}

type mockSQS struct{ mock.Mock }

func (m *mockSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return result[sqs.ReceiveMessageOutput](m.Called(ctx, in))
}

func (m *mockSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	return result[sqs.SendMessageOutput](m.Called(ctx, in))
}

func (m *mockSQS) DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	return result[sqs.DeleteMessageOutput](m.Called(ctx, in))
}

type mockECR struct{ mock.Mock }

func (m *mockECR) GetAuthorizationToken(ctx context.Context, in *ecr.GetAuthorizationTokenInput, _ ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error) {
	return result[ecr.GetAuthorizationTokenOutput](m.Called(ctx, in))
}

func (m *mockECR) DescribeRepositories(ctx context.Context, in *ecr.DescribeRepositoriesInput, _ ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	return result[ecr.DescribeRepositoriesOutput](m.Called(ctx, in))
}

type mockECS struct{ mock.Mock }

func (m *mockECS) ListClusters(ctx context.Context, in *ecs.ListClustersInput, _ ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	return result[ecs.ListClustersOutput](m.Called(ctx, in))
}

func (m *mockECS) RunTask(ctx context.Context, in *ecs.RunTaskInput, _ ...func(*ecs.Options)) (*ecs.RunTaskOutput, error) {
	return result[ecs.RunTaskOutput](m.Called(ctx, in))
}

type mockDynamoDB struct{ mock.Mock }

func (m *mockDynamoDB) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return result[dynamodb.PutItemOutput](m.Called(ctx, in))
}

func (m *mockDynamoDB) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return result[dynamodb.QueryOutput](m.Called(ctx, in))
}

type mockCloudWatch struct{ mock.Mock }

func (m *mockCloudWatch) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	return result[cloudwatch.PutMetricDataOutput](m.Called(ctx, in))
}

func (m *mockCloudWatch) GetMetricStatistics(ctx context.Context, in *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	return result[cloudwatch.GetMetricStatisticsOutput](m.Called(ctx, in))
}

type mockSNS struct{ mock.Mock }

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return result[sns.PublishOutput](m.Called(ctx, in))
}

func (m *mockSNS) ListTopics(ctx context.Context, in *sns.ListTopicsInput, _ ...func(*sns.Options)) (*sns.ListTopicsOutput, error) {
	return result[sns.ListTopicsOutput](m.Called(ctx, in))
}

type mockS3 struct{ mock.Mock }

func (m *mockS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return result[s3.ListObjectsV2Output](m.Called(ctx, in))
}

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	return result[manager.UploadOutput](m.Called(ctx, in))
}

type mockGlue struct{ mock.Mock }

func (m *mockGlue) StartJobRun(ctx context.Context, in *glue.StartJobRunInput, _ ...func(*glue.Options)) (*glue.StartJobRunOutput, error) {
	return result[glue.StartJobRunOutput](m.Called(ctx, in))
}

func (m *mockGlue) GetJobRun(ctx context.Context, in *glue.GetJobRunInput, _ ...func(*glue.Options)) (*glue.GetJobRunOutput, error) {
	return result[glue.GetJobRunOutput](m.Called(ctx, in))
}
