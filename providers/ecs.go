package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/rs/zerolog/log"
)

func (c *Clients) ListECSClusters(ctx context.Context) (*ecs.ListClustersOutput, error) {
	return c.ECS.ListClusters(ctx, &ecs.ListClustersInput{})
}

// RunECSTask launches a single copy of taskDefinition on cluster.
func (c *Clients) RunECSTask(ctx context.Context, cluster, taskDefinition string) (*ecs.RunTaskOutput, error) {
	log.Debug().Str("cluster", cluster).Str("task_definition", taskDefinition).Msg("[Clients.RunECSTask] launching task")

	return c.ECS.RunTask(ctx, &ecs.RunTaskInput{
		Cluster:        aws.String(cluster),
		TaskDefinition: aws.String(taskDefinition),
		Count:          aws.Int32(1),
	})
}
