package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRedriveBatch int32 = 10
	redriveWaitSeconds  int32 = 2
)

type RedriveResult struct {
	Redriven int `json:"redriven"`
}

// RedriveSQSDLQ moves up to maxMessages messages from dlqURL back to sourceQueueURL.
// A message is deleted from the DLQ only after it was forwarded; a failure between
// the two calls leaves a duplicate. The first error stops the batch and is returned
// with the count redriven so far.
func (c *Clients) RedriveSQSDLQ(ctx context.Context, sourceQueueURL, dlqURL string, maxMessages int32) (RedriveResult, error) {
	if maxMessages <= 0 {
		maxMessages = DefaultRedriveBatch
	}

	received, err := c.SQS.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(dlqURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     redriveWaitSeconds,
	})
	if err != nil {
		return RedriveResult{}, err
	}

	result := RedriveResult{}
	for _, msg := range received.Messages {
		if _, err := c.SQS.SendMessage(ctx, &sqs.SendMessageInput{
			QueueUrl:    aws.String(sourceQueueURL),
			MessageBody: msg.Body,
		}); err != nil {
			log.Error().Err(err).Str("message_id", aws.ToString(msg.MessageId)).Msg("[Clients.RedriveSQSDLQ] failed to forward message")
			return result, err
		}

		if _, err := c.SQS.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(dlqURL),
			ReceiptHandle: msg.ReceiptHandle,
		}); err != nil {
			log.Error().Err(err).Str("message_id", aws.ToString(msg.MessageId)).Msg("[Clients.RedriveSQSDLQ] forwarded message was not deleted")
			return result, err
		}

		result.Redriven++
	}

	log.Debug().Int("redriven", result.Redriven).Str("dlq", dlqURL).Msg("[Clients.RedriveSQSDLQ] batch done")

	return result, nil
}

func (c *Clients) SendSQSMessage(ctx context.Context, queueURL, messageBody string) (*sqs.SendMessageOutput, error) {
	return c.SQS.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(messageBody),
	})
}
