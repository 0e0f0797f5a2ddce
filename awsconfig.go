package lambdaops

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-errors/errors"
	"github.com/rs/zerolog/log"
)

const (
	RetryModeStandard = "standard"
	RetryModeAdaptive = "adaptive"
)

// ClientConfig is the timeout and retry bundle shared by every service client.
// Sleep before attempt i is min(base * 2^i, MaxBackoff).
type ClientConfig struct {
	Region         string        `mapstructure:"region"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	MaxBackoff     time.Duration `mapstructure:"max_backoff"`
	RetryMode      string        `mapstructure:"retry_mode"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    10 * time.Second,
		MaxAttempts:    4,
		MaxBackoff:     20 * time.Second,
		RetryMode:      RetryModeStandard,
	}
}

func (c ClientConfig) Validate() error {
	if c.ConnectTimeout <= 0 || c.ReadTimeout <= 0 {
		return errors.Errorf("timeouts must be positive, got connect=%s read=%s", c.ConnectTimeout, c.ReadTimeout)
	}

	if c.MaxAttempts < 1 {
		return errors.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}

	if c.MaxBackoff <= 0 {
		return errors.Errorf("max backoff must be positive, got %s", c.MaxBackoff)
	}

	switch c.RetryMode {
	case RetryModeStandard, RetryModeAdaptive:
		return nil
	default:
		return errors.Errorf("unknown retry mode %q", c.RetryMode)
	}
}

// Retryer returns the retryer constructor passed to the SDK loader.
func (c ClientConfig) Retryer() (func() aws.Retryer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	standard := func(o *retry.StandardOptions) {
		o.MaxAttempts = c.MaxAttempts
		o.MaxBackoff = c.MaxBackoff
	}

	if c.RetryMode == RetryModeAdaptive {
		return func() aws.Retryer {
			return retry.NewAdaptiveMode(func(o *retry.AdaptiveModeOptions) {
				o.StandardOptions = append(o.StandardOptions, standard)
			})
		}, nil
	}

	return func() aws.Retryer {
		return retry.NewStandard(standard)
	}, nil
}

// HTTPClient maps the connect timeout onto the dialer and the read timeout onto
// the response header wait.
func (c ClientConfig) HTTPClient() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = c.ConnectTimeout
		}).
		WithTransportOptions(func(t *http.Transport) {
			t.TLSHandshakeTimeout = c.ConnectTimeout
			t.ResponseHeaderTimeout = c.ReadTimeout
		})
}

// LoadAWSConfig resolves credentials and region through the SDK default chain and
// binds them to the retry and timeout policy. The result is built once per process.
func LoadAWSConfig(ctx context.Context, c ClientConfig) (aws.Config, error) {
	retryer, err := c.Retryer()
	if err != nil {
		return aws.Config{}, err
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRetryer(retryer),
		config.WithHTTPClient(c.HTTPClient()),
	}

	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("[LoadAWSConfig] failed to load aws config")
		return aws.Config{}, errors.Wrap(err, 0)
	}

	log.Debug().
		Str("region", cfg.Region).
		Str("retry_mode", c.RetryMode).
		Int("max_attempts", c.MaxAttempts).
		Msg("[LoadAWSConfig] aws config loaded")

	return cfg, nil
}
