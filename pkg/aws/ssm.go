package aws

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type SSMClient struct {
	Client ssmiface.SSMAPI
}

func NewSSMClient(session client.ConfigProvider, region string, creds *credentials.Credentials) SSMClient {
	return SSMClient{
		Client: ssm.New(session, config(region, creds)),
	}
}

// GetParametersByPath reads every parameter below path.
// /forkconfig/pageon/slack_webhook under /forkconfig becomes pageon.slack_webhook.
func (s SSMClient) GetParametersByPath(path string) (map[string]interface{}, error) {
	prefix := "/" + strings.Trim(path, "/")
	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	params := map[string]interface{}{}
	err := s.Client.GetParametersByPathPages(input, func(page *ssm.GetParametersByPathOutput, _ bool) bool {
		for _, p := range page.Parameters {
			name := ParameterName(prefix, aws.StringValue(p.Name))
			if len(name) == 0 {
				continue
			}
			logrus.Debugf("parameter is loaded from ssm: %s", name)
			params[name] = aws.StringValue(p.Value)
		}
		return true
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get parameters from ssm path %s", prefix)
	}

	return params, nil
}

// ParameterName converts an ssm parameter name into a dotted parameter name
func ParameterName(prefix, name string) string {
	name = strings.TrimPrefix(name, strings.TrimSuffix(prefix, "/"))
	name = strings.Trim(name, "/")

	return strings.ReplaceAll(name, "/", ".")
}
