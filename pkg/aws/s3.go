package aws

import (
	"io/ioutil"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"

	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
)

type S3Client struct {
	Client s3iface.S3API
}

func NewS3Client(session client.ConfigProvider, region string, creds *credentials.Credentials) S3Client {
	return S3Client{
		Client: s3.New(session, config(region, creds)),
	}
}

// GetParametersFile downloads the parameters file
func (s S3Client) GetParametersFile(bucket, key string) ([]byte, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	result, err := s.Client.GetObject(input)
	if err != nil {
		return nil, errors.Wrapf(err, "get s3://%s/%s", bucket, key)
	}
	defer result.Body.Close()

	body, err := ioutil.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}

// FilterS3Path splits s3://bucket/key into bucket and key
func FilterS3Path(path string) (string, string) {
	path = strings.TrimPrefix(path, constants.S3Prefix)
	split := strings.Split(path, "/")

	return split[0], strings.Join(split[1:], "/")
}
