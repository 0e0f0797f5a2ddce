package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
)

func (c *Clients) StartGlueJob(ctx context.Context, jobName string, arguments map[string]string) (*glue.StartJobRunOutput, error) {
	return c.Glue.StartJobRun(ctx, &glue.StartJobRunInput{
		JobName:   aws.String(jobName),
		Arguments: arguments,
	})
}

func (c *Clients) GetGlueJobRun(ctx context.Context, jobName, runID string) (*glue.GetJobRunOutput, error) {
	return c.Glue.GetJobRun(ctx, &glue.GetJobRunInput{
		JobName: aws.String(jobName),
		RunId:   aws.String(runID),
	})
}
