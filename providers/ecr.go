package providers

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

// ECRLogin carries what a docker client needs to push to a repository.
// AuthToken is the base64 "user:password" pair returned by ECR.
type ECRLogin struct {
	RepositoryURI string `json:"repository_uri"`
	AuthToken     string `json:"auth_token"`
	ProxyEndpoint string `json:"proxy_endpoint"`
}

func (c *Clients) GetECRLoginAndRepoURI(ctx context.Context, repositoryName string) (ECRLogin, error) {
	token, err := c.ECR.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return ECRLogin{}, err
	}

	repos, err := c.ECR.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{repositoryName},
	})
	if err != nil {
		return ECRLogin{}, err
	}

	login := ECRLogin{}
	if len(repos.Repositories) > 0 {
		login.RepositoryURI = aws.ToString(repos.Repositories[0].RepositoryUri)
	}
	if len(token.AuthorizationData) > 0 {
		login.AuthToken = aws.ToString(token.AuthorizationData[0].AuthorizationToken)
		login.ProxyEndpoint = aws.ToString(token.AuthorizationData[0].ProxyEndpoint)
	}

	return login, nil
}

func (c *Clients) ListECRRepositories(ctx context.Context) (*ecr.DescribeRepositoriesOutput, error) {
	return c.ECR.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{})
}
