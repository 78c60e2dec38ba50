// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"
)

// loadAWSOptions resolves the Arc API token and the GitHub token,
// preferring AWS Secrets Manager when a secret id is configured and
// falling back to the plain environment variables otherwise.
func loadAWSOptions(ctx context.Context, awsConfig aws.Config, logger *zap.SugaredLogger) (string, string) {
	var manager *secretsmanager.Client
	lazyManager := func() *secretsmanager.Client {
		if manager == nil {
			manager = secretsmanager.NewFromConfig(awsConfig)
		}
		return manager
	}

	arcToken := os.Getenv("ARC_TOKEN")
	if arcTokenSMSecretId, ok := os.LookupEnv("ARC_SECRETS_MANAGER_TOKEN_ID"); ok {
		result, err := loadSecret(ctx, lazyManager(), arcTokenSMSecretId)
		if err != nil {
			logger.Warnf("Could not load Arc API token from AWS Secrets Manager. Writing batches will likely fail. Is 'ARC_SECRETS_MANAGER_TOKEN_ID=%s' correct? Error message: %v", arcTokenSMSecretId, err)
			arcToken = ""
		} else {
			logger.Infof("Using the Arc API token retrieved from AWS Secrets Manager.")
			arcToken = result
		}
	}

	githubToken := os.Getenv("GITHUB_TOKEN")
	if githubTokenSMSecretId, ok := os.LookupEnv("GITHUB_SECRETS_MANAGER_TOKEN_ID"); ok {
		result, err := loadSecret(ctx, lazyManager(), githubTokenSMSecretId)
		if err != nil {
			logger.Warnf("Could not load GitHub token from AWS Secrets Manager. Fetching repository stats may be rate limited. Is 'GITHUB_SECRETS_MANAGER_TOKEN_ID=%s' correct? Error message: %v", githubTokenSMSecretId, err)
			githubToken = ""
		} else {
			logger.Infof("Using the GitHub token retrieved from AWS Secrets Manager.")
			githubToken = result
		}
	}

	return arcToken, githubToken
}

func loadSecret(ctx context.Context, manager *secretsmanager.Client, secretID string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     ptrFromString(secretID),
		VersionStage: ptrFromString("AWSCURRENT"),
	}

	result, err := manager.GetSecretValue(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve secret value: %w", err)
	}

	if result.SecretString != nil {
		return *result.SecretString, nil
	}

	decodedBinarySecretBytes := make([]byte, base64.StdEncoding.DecodedLen(len(result.SecretBinary)))
	if _, err := base64.StdEncoding.Decode(decodedBinarySecretBytes, result.SecretBinary); err != nil {
		return "", fmt.Errorf("failed to decode base64 encoded secret: %w", err)
	}

	return string(decodedBinarySecretBytes), nil
}

func loadAcmCertificate(ctx context.Context, arn string, awsConfig aws.Config) (*string, error) {
	acmClient := acm.NewFromConfig(awsConfig)
	getCertificateInput := acm.GetCertificateInput{
		CertificateArn: &arn,
	}
	response, err := acmClient.GetCertificate(ctx, &getCertificateInput)
	if err != nil {
		return nil, err
	}

	return response.Certificate, nil
}

func ptrFromString(v string) *string {
	return &v
}
