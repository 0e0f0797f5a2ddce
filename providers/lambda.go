package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"
)

func (c *Clients) DeleteLambdaFunction(ctx context.Context, functionName string) (*lambda.DeleteFunctionOutput, error) {
	log.Debug().Str("function", functionName).Msg("[Clients.DeleteLambdaFunction] deleting function")

	return c.Lambda.DeleteFunction(ctx, &lambda.DeleteFunctionInput{
		FunctionName: aws.String(functionName),
	})
}

// ListLambdaFunctions returns the first page only.
func (c *Clients) ListLambdaFunctions(ctx context.Context) (*lambda.ListFunctionsOutput, error) {
	return c.Lambda.ListFunctions(ctx, &lambda.ListFunctionsInput{})
}
