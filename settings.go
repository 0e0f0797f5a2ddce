package lambdaops

import (
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "LAMBDAOPS"

type EventsConfig struct {
	NatsURL       string `mapstructure:"nats_url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
	JetStream     bool   `mapstructure:"jetstream"`
}

type MetricsConfig struct {
	PushURL string `mapstructure:"push_url"`
	Job     string `mapstructure:"job"`
}

// Defaults are the operation arguments used when a request omits them.
type Defaults struct {
	FunctionName           string `mapstructure:"function_name"`
	SourceQueueURL         string `mapstructure:"source_queue_url"`
	DLQURL                 string `mapstructure:"dlq_url"`
	MaxMessages            int32  `mapstructure:"max_messages"`
	QueueURL               string `mapstructure:"queue_url"`
	MessageBody            string `mapstructure:"message_body"`
	RepositoryName         string `mapstructure:"repository_name"`
	Cluster                string `mapstructure:"cluster"`
	TaskDefinition         string `mapstructure:"task_definition"`
	TableName              string `mapstructure:"table_name"`
	KeyConditionExpression string `mapstructure:"key_condition_expression"`
	Namespace              string `mapstructure:"namespace"`
	MetricName             string `mapstructure:"metric_name"`
	Period                 int32  `mapstructure:"period"`
	TopicArn               string `mapstructure:"topic_arn"`
	Message                string `mapstructure:"message"`
	FileName               string `mapstructure:"file_name"`
	Bucket                 string `mapstructure:"bucket"`
	Prefix                 string `mapstructure:"prefix"`
	JobName                string `mapstructure:"job_name"`
}

type Settings struct {
	Log      LogConfig     `mapstructure:"log"`
	AWS      ClientConfig  `mapstructure:"aws"`
	Events   EventsConfig  `mapstructure:"events"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
	Defaults Defaults      `mapstructure:"defaults"`
}

func (s Settings) Validate() error {
	if err := s.AWS.Validate(); err != nil {
		return err
	}

	if s.Events.JetStream && s.Events.NatsURL == "" {
		return errors.New("events.jetstream requires events.nats_url")
	}

	if s.Defaults.MaxMessages < 0 {
		return errors.Errorf("defaults.max_messages must not be negative, got %d", s.Defaults.MaxMessages)
	}

	return nil
}

// LoadSettings reads the optional config file at path, then overlays
// LAMBDAOPS_* environment variables (LAMBDAOPS_AWS_MAX_ATTEMPTS -> aws.max_attempts).
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, errors.WrapPrefix(err, "read config "+path, 0)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.WrapPrefix(err, "unmarshal settings", 0)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	client := DefaultClientConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatJSON)
	v.SetDefault("log.time_format", "")

	v.SetDefault("aws.region", "")
	v.SetDefault("aws.connect_timeout", client.ConnectTimeout)
	v.SetDefault("aws.read_timeout", client.ReadTimeout)
	v.SetDefault("aws.max_attempts", client.MaxAttempts)
	v.SetDefault("aws.max_backoff", client.MaxBackoff)
	v.SetDefault("aws.retry_mode", client.RetryMode)

	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject_prefix", "lambdaops")
	v.SetDefault("events.jetstream", false)

	v.SetDefault("metrics.push_url", "")
	v.SetDefault("metrics.job", "lambdaops")

	for _, key := range []string{
		"function_name", "source_queue_url", "dlq_url", "queue_url", "message_body",
		"repository_name", "cluster", "task_definition", "table_name",
		"key_condition_expression", "namespace", "metric_name", "topic_arn",
		"message", "file_name", "bucket", "prefix", "job_name",
	} {
		v.SetDefault("defaults."+key, "")
	}
	v.SetDefault("defaults.max_messages", 0)
	v.SetDefault("defaults.period", 300)
}
