package lambdaops

import (
	"context"
	"maps"
	"slices"
	"time"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/imunhatep/lambdaops/events"
	"github.com/imunhatep/lambdaops/providers"
	"github.com/rs/zerolog/log"
)

// InvalidEventResponse is returned instead of an error for unknown or missing event names.
const InvalidEventResponse = "Invalid or no event received"

const (
	EventDeleteLambdaFunction          = "delete_lambda_function"
	EventListLambdaFunctions           = "list_lambda_functions"
	EventRedriveSQSDLQ                 = "redrive_sqs_dlq"
	EventSendSQSMessage                = "send_sqs_message"
	EventGetECRLoginAndRepoURI         = "get_ecr_login_and_repo_uri"
	EventListECRRepositories           = "list_ecr_repositories"
	EventListECSClusters               = "list_ecs_clusters"
	EventRunECSTask                    = "run_ecs_task"
	EventPutDynamoDBItem               = "put_dynamodb_item"
	EventQueryDynamoDB                 = "query_dynamodb"
	EventPutCloudWatchMetric           = "put_cloudwatch_metric"
	EventGetCloudWatchMetricStatistics = "get_cloudwatch_metric_statistics"
	EventPublishSNSMessage             = "publish_sns_message"
	EventListSNSTopics                 = "list_sns_topics"
	EventUploadFileToS3                = "upload_file_to_s3"
	EventListS3Objects                 = "list_s3_objects"
	EventStartGlueJob                  = "start_glue_job"
	EventGetGlueJobRun                 = "get_glue_job_run"
)

const defaultStatisticsWindow = time.Hour

// Provider is the wrapper set the handler dispatches to. *providers.Clients implements it.
type Provider interface {
	DeleteLambdaFunction(ctx context.Context, functionName string) (*lambda.DeleteFunctionOutput, error)
	ListLambdaFunctions(ctx context.Context) (*lambda.ListFunctionsOutput, error)
	RedriveSQSDLQ(ctx context.Context, sourceQueueURL, dlqURL string, maxMessages int32) (providers.RedriveResult, error)
	SendSQSMessage(ctx context.Context, queueURL, messageBody string) (*sqs.SendMessageOutput, error)
	GetECRLoginAndRepoURI(ctx context.Context, repositoryName string) (providers.ECRLogin, error)
	ListECRRepositories(ctx context.Context) (*ecr.DescribeRepositoriesOutput, error)
	ListECSClusters(ctx context.Context) (*ecs.ListClustersOutput, error)
	RunECSTask(ctx context.Context, cluster, taskDefinition string) (*ecs.RunTaskOutput, error)
	PutDynamoDBItem(ctx context.Context, tableName string, item map[string]ddbtypes.AttributeValue) (*dynamodb.PutItemOutput, error)
	QueryDynamoDB(ctx context.Context, tableName, keyConditionExpression string, values map[string]ddbtypes.AttributeValue) (*dynamodb.QueryOutput, error)
	PutCloudWatchMetric(ctx context.Context, namespace string, data []cwtypes.MetricDatum) (*cloudwatch.PutMetricDataOutput, error)
	GetCloudWatchMetricStatistics(ctx context.Context, q providers.MetricQuery) (*cloudwatch.GetMetricStatisticsOutput, error)
	PublishSNSMessage(ctx context.Context, topicArn, message string) (*sns.PublishOutput, error)
	ListSNSTopics(ctx context.Context) (*sns.ListTopicsOutput, error)
	UploadFileToS3(ctx context.Context, fileName, bucket, objectName string) (*manager.UploadOutput, error)
	ListS3Objects(ctx context.Context, bucket, prefix string) (*s3.ListObjectsV2Output, error)
	StartGlueJob(ctx context.Context, jobName string, arguments map[string]string) (*glue.StartJobRunOutput, error)
	GetGlueJobRun(ctx context.Context, jobName, runID string) (*glue.GetJobRunOutput, error)
}

type route func(ctx context.Context, req Request) (any, error)

// Handler is the function entry point. It decodes the event name from the
// payload body and calls exactly one provider wrapper. It holds no per-invocation state.
type Handler struct {
	provider  Provider
	defaults  Defaults
	publisher events.Publisher
	metrics   *Metrics
	now       func() time.Time
	routes    map[string]route
}

func NewHandler(provider Provider, defaults Defaults) *Handler {
	h := &Handler{
		provider:  provider,
		defaults:  defaults,
		publisher: events.NopPublisher{},
		now:       time.Now,
	}
	h.routes = h.buildRoutes()

	return h
}

func (h *Handler) WithPublisher(publisher events.Publisher) *Handler {
	h.publisher = publisher

	return h
}

func (h *Handler) WithMetrics(metrics *Metrics) *Handler {
	h.metrics = metrics

	return h
}

// Events lists the recognized event names in sorted order.
func (h *Handler) Events() []string {
	return slices.Sorted(maps.Keys(h.routes))
}

// Handle returns the provider response unchanged, or InvalidEventResponse when
// the body names no known event. Provider errors are returned as is.
func (h *Handler) Handle(ctx context.Context, payload awsevents.APIGatewayProxyRequest) (any, error) {
	start := h.now()

	req, err := DecodeRequest(payload.Body)
	if err != nil {
		log.Error().Err(err).Msg("[Handler.Handle] failed to decode request body")
		h.observe(ctx, "", events.StatusFailed, start, err)
		return nil, err
	}

	fn, ok := h.routes[req.Event]
	if !ok {
		log.Warn().Str("event", req.Event).Msg("[Handler.Handle] invalid or no event received")
		h.observe(ctx, req.Event, events.StatusInvalid, start, nil)
		return InvalidEventResponse, nil
	}

	log.Debug().Str("event", req.Event).Msg("[Handler.Handle] dispatching")

	result, err := fn(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("event", req.Event).Msg("[Handler.Handle] provider call failed")
		h.observe(ctx, req.Event, events.StatusFailed, start, err)
		return result, err
	}

	h.observe(ctx, req.Event, events.StatusOK, start, nil)

	return result, nil
}

func (h *Handler) observe(ctx context.Context, event string, status events.Status, start time.Time, cause error) {
	inv := events.Invocation{
		Event:     event,
		Status:    status,
		Duration:  h.now().Sub(start),
		Timestamp: start,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		inv.RequestID = lc.AwsRequestID
	}
	if cause != nil {
		inv.Error = cause.Error()
	}

	if h.metrics != nil {
		h.metrics.Observe(event, status, inv.Duration)
		if err := h.metrics.Push(ctx); err != nil {
			log.Warn().Err(err).Msg("[Handler.observe] failed to push metrics")
		}
	}

	if err := h.publisher.Publish(ctx, inv); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("[Handler.observe] failed to publish invocation")
	}
}

func (h *Handler) buildRoutes() map[string]route {
	return map[string]route{
		EventDeleteLambdaFunction: func(ctx context.Context, req Request) (any, error) {
			return h.provider.DeleteLambdaFunction(ctx, orDefault(req.FunctionName, h.defaults.FunctionName))
		},
		EventListLambdaFunctions: func(ctx context.Context, _ Request) (any, error) {
			return h.provider.ListLambdaFunctions(ctx)
		},
		EventRedriveSQSDLQ: h.redrive,
		EventSendSQSMessage: func(ctx context.Context, req Request) (any, error) {
			return h.provider.SendSQSMessage(ctx,
				orDefault(req.QueueURL, h.defaults.QueueURL),
				orDefault(req.MessageBody, h.defaults.MessageBody),
			)
		},
		EventGetECRLoginAndRepoURI: func(ctx context.Context, req Request) (any, error) {
			return h.provider.GetECRLoginAndRepoURI(ctx, orDefault(req.RepositoryName, h.defaults.RepositoryName))
		},
		EventListECRRepositories: func(ctx context.Context, _ Request) (any, error) {
			return h.provider.ListECRRepositories(ctx)
		},
		EventListECSClusters: func(ctx context.Context, _ Request) (any, error) {
			return h.provider.ListECSClusters(ctx)
		},
		EventRunECSTask: func(ctx context.Context, req Request) (any, error) {
			return h.provider.RunECSTask(ctx,
				orDefault(req.Cluster, h.defaults.Cluster),
				orDefault(req.TaskDefinition, h.defaults.TaskDefinition),
			)
		},
		EventPutDynamoDBItem: func(ctx context.Context, req Request) (any, error) {
			item, err := toAttributeValues(req.Item)
			if err != nil {
				return nil, err
			}

			return h.provider.PutDynamoDBItem(ctx, orDefault(req.TableName, h.defaults.TableName), item)
		},
		EventQueryDynamoDB: func(ctx context.Context, req Request) (any, error) {
			values, err := toAttributeValues(req.ExpressionAttributeValues)
			if err != nil {
				return nil, err
			}

			return h.provider.QueryDynamoDB(ctx,
				orDefault(req.TableName, h.defaults.TableName),
				orDefault(req.KeyConditionExpression, h.defaults.KeyConditionExpression),
				values,
			)
		},
		EventPutCloudWatchMetric: func(ctx context.Context, req Request) (any, error) {
			return h.provider.PutCloudWatchMetric(ctx, orDefault(req.Namespace, h.defaults.Namespace), toMetricData(req.MetricData))
		},
		EventGetCloudWatchMetricStatistics: h.metricStatistics,
		EventPublishSNSMessage: func(ctx context.Context, req Request) (any, error) {
			return h.provider.PublishSNSMessage(ctx,
				orDefault(req.TopicArn, h.defaults.TopicArn),
				orDefault(req.Message, h.defaults.Message),
			)
		},
		EventListSNSTopics: func(ctx context.Context, _ Request) (any, error) {
			return h.provider.ListSNSTopics(ctx)
		},
		EventUploadFileToS3: func(ctx context.Context, req Request) (any, error) {
			return h.provider.UploadFileToS3(ctx,
				orDefault(req.FileName, h.defaults.FileName),
				orDefault(req.Bucket, h.defaults.Bucket),
				req.ObjectName,
			)
		},
		EventListS3Objects: func(ctx context.Context, req Request) (any, error) {
			return h.provider.ListS3Objects(ctx,
				orDefault(req.Bucket, h.defaults.Bucket),
				orDefault(req.Prefix, h.defaults.Prefix),
			)
		},
		EventStartGlueJob: func(ctx context.Context, req Request) (any, error) {
			return h.provider.StartGlueJob(ctx, orDefault(req.JobName, h.defaults.JobName), req.Arguments)
		},
		EventGetGlueJobRun: func(ctx context.Context, req Request) (any, error) {
			return h.provider.GetGlueJobRun(ctx, orDefault(req.JobName, h.defaults.JobName), req.RunID)
		},
	}
}

func (h *Handler) redrive(ctx context.Context, req Request) (any, error) {
	maxMessages := req.MaxMessages
	if maxMessages == 0 {
		maxMessages = h.defaults.MaxMessages
	}

	result, err := h.provider.RedriveSQSDLQ(ctx,
		orDefault(req.SourceQueueURL, h.defaults.SourceQueueURL),
		orDefault(req.DLQURL, h.defaults.DLQURL),
		maxMessages,
	)

	if h.metrics != nil {
		h.metrics.Redriven.Add(float64(result.Redriven))
	}

	return result, err
}

func (h *Handler) metricStatistics(ctx context.Context, req Request) (any, error) {
	end := h.now()
	if req.EndTime != nil {
		end = *req.EndTime
	}

	start := end.Add(-defaultStatisticsWindow)
	if req.StartTime != nil {
		start = *req.StartTime
	}

	period := req.Period
	if period == 0 {
		period = h.defaults.Period
	}

	stats := toStatistics(req.Statistics)
	if len(stats) == 0 {
		stats = []cwtypes.Statistic{cwtypes.StatisticAverage}
	}

	return h.provider.GetCloudWatchMetricStatistics(ctx, providers.MetricQuery{
		Namespace:  orDefault(req.Namespace, h.defaults.Namespace),
		MetricName: orDefault(req.MetricName, h.defaults.MetricName),
		Dimensions: toDimensions(req.Dimensions),
		StartTime:  start,
		EndTime:    end,
		Period:     period,
		Statistics: stats,
	})
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
