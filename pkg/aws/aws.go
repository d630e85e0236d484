package aws

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/defaults"
	"github.com/aws/aws-sdk-go/aws/session"
)

type Client struct {
	Region     string
	S3Service  S3Client
	SSMService SSMClient
}

// GetAwsSession generates new aws session
func GetAwsSession(profile string) (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Credentials: credentials.NewCredentials(&credentials.SharedCredentialsProvider{
			Filename: defaults.SharedCredentialsFilename(),
			Profile:  profile,
		}),
	})
}

// BootstrapServices creates the clients used to read parameters
func BootstrapServices(region, assumeRole, profile string) (Client, error) {
	awsSession, err := GetAwsSession(profile)
	if err != nil {
		return Client{}, err
	}

	var creds *credentials.Credentials
	if len(assumeRole) != 0 {
		creds = stscreds.NewCredentials(awsSession, assumeRole)
	}

	return Client{
		Region:     region,
		S3Service:  NewS3Client(awsSession, region, creds),
		SSMService: NewSSMClient(awsSession, region, creds),
	}, nil
}

func config(region string, creds *credentials.Credentials) *aws.Config {
	if creds == nil {
		return &aws.Config{Region: aws.String(region)}
	}
	return &aws.Config{Region: aws.String(region), Credentials: creds}
}
