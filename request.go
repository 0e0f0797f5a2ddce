package lambdaops

import (
	"strings"
	"time"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bytedance/sonic"
	"github.com/go-errors/errors"
	"github.com/imunhatep/gocollection/slice"
)

// Request is the decoded body envelope: the event name plus the optional
// arguments of the selected operation.
type Request struct {
	Event string `json:"event"`

	FunctionName string `json:"function_name"`

	SourceQueueURL string `json:"source_queue_url"`
	DLQURL         string `json:"dlq_url"`
	MaxMessages    int32  `json:"max_messages"`
	QueueURL       string `json:"queue_url"`
	MessageBody    string `json:"message_body"`

	RepositoryName string `json:"repository_name"`

	Cluster        string `json:"cluster"`
	TaskDefinition string `json:"task_definition"`

	TableName                 string                                     `json:"table_name"`
	Item                      map[string]awsevents.DynamoDBAttributeValue `json:"item"`
	KeyConditionExpression    string                                     `json:"key_condition_expression"`
	ExpressionAttributeValues map[string]awsevents.DynamoDBAttributeValue `json:"expression_attribute_values"`

	Namespace  string        `json:"namespace"`
	MetricData []MetricDatum `json:"metric_data"`
	MetricName string        `json:"metric_name"`
	Dimensions []Dimension   `json:"dimensions"`
	StartTime  *time.Time    `json:"start_time"`
	EndTime    *time.Time    `json:"end_time"`
	Period     int32         `json:"period"`
	Statistics []string      `json:"statistics"`

	TopicArn string `json:"topic_arn"`
	Message  string `json:"message"`

	FileName   string `json:"file_name"`
	Bucket     string `json:"bucket"`
	ObjectName string `json:"object_name"`
	Prefix     string `json:"prefix"`

	JobName   string            `json:"job_name"`
	Arguments map[string]string `json:"arguments"`
	RunID     string            `json:"run_id"`
}

// MetricDatum and Dimension follow the CloudWatch API field names.
type MetricDatum struct {
	MetricName string      `json:"MetricName"`
	Value      float64     `json:"Value"`
	Unit       string      `json:"Unit,omitempty"`
	Dimensions []Dimension `json:"Dimensions,omitempty"`
	Timestamp  *time.Time  `json:"Timestamp,omitempty"`
}

type Dimension struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// DecodeRequest accepts either a JSON string holding only the event name or a
// JSON object. An empty body is an empty request.
func DecodeRequest(body string) (Request, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Request{}, nil
	}

	if strings.HasPrefix(body, `"`) {
		var event string
		if err := sonic.UnmarshalString(body, &event); err != nil {
			return Request{}, errors.WrapPrefix(err, "decode event name", 0)
		}

		return Request{Event: event}, nil
	}

	var req Request
	if err := sonic.UnmarshalString(body, &req); err != nil {
		return Request{}, errors.WrapPrefix(err, "decode request body", 0)
	}

	return req, nil
}

func toMetricData(data []MetricDatum) []cwtypes.MetricDatum {
	return slice.Map(data, func(d MetricDatum) cwtypes.MetricDatum {
		return cwtypes.MetricDatum{
			MetricName: aws.String(d.MetricName),
			Value:      aws.Float64(d.Value),
			Unit:       cwtypes.StandardUnit(d.Unit),
			Dimensions: toDimensions(d.Dimensions),
			Timestamp:  d.Timestamp,
		}
	})
}

func toDimensions(dims []Dimension) []cwtypes.Dimension {
	if len(dims) == 0 {
		return nil
	}

	return slice.Map(dims, func(d Dimension) cwtypes.Dimension {
		return cwtypes.Dimension{Name: aws.String(d.Name), Value: aws.String(d.Value)}
	})
}

func toStatistics(stats []string) []cwtypes.Statistic {
	return slice.Map(stats, func(s string) cwtypes.Statistic {
		return cwtypes.Statistic(s)
	})
}

// toAttributeValues converts wire-shaped attribute values ({"S": "123"}) into SDK values.
func toAttributeValues(in map[string]awsevents.DynamoDBAttributeValue) (map[string]ddbtypes.AttributeValue, error) {
	if in == nil {
		return nil, nil
	}

	out := make(map[string]ddbtypes.AttributeValue, len(in))
	for name, value := range in {
		av, err := toAttributeValue(value)
		if err != nil {
			return nil, errors.WrapPrefix(err, "attribute "+name, 0)
		}
		out[name] = av
	}

	return out, nil
}

func toAttributeValue(v awsevents.DynamoDBAttributeValue) (ddbtypes.AttributeValue, error) {
	switch v.DataType() {
	case awsevents.DataTypeString:
		return &ddbtypes.AttributeValueMemberS{Value: v.String()}, nil
	case awsevents.DataTypeNumber:
		return &ddbtypes.AttributeValueMemberN{Value: v.Number()}, nil
	case awsevents.DataTypeBinary:
		return &ddbtypes.AttributeValueMemberB{Value: v.Binary()}, nil
	case awsevents.DataTypeBoolean:
		return &ddbtypes.AttributeValueMemberBOOL{Value: v.Boolean()}, nil
	case awsevents.DataTypeNull:
		return &ddbtypes.AttributeValueMemberNULL{Value: true}, nil
	case awsevents.DataTypeStringSet:
		return &ddbtypes.AttributeValueMemberSS{Value: v.StringSet()}, nil
	case awsevents.DataTypeNumberSet:
		return &ddbtypes.AttributeValueMemberNS{Value: v.NumberSet()}, nil
	case awsevents.DataTypeBinarySet:
		return &ddbtypes.AttributeValueMemberBS{Value: v.BinarySet()}, nil
	case awsevents.DataTypeList:
		list := make([]ddbtypes.AttributeValue, 0, len(v.List()))
		for _, item := range v.List() {
			av, err := toAttributeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, av)
		}
		return &ddbtypes.AttributeValueMemberL{Value: list}, nil
	case awsevents.DataTypeMap:
		m, err := toAttributeValues(v.Map())
		if err != nil {
			return nil, err
		}
		return &ddbtypes.AttributeValueMemberM{Value: m}, nil
	default:
		return nil, errors.Errorf("unsupported attribute data type %d", v.DataType())
	}
}
