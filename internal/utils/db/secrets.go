package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func initSecretsConfig(ctx context.Context) (*secretsmanager.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando definidas; senão busca o segredo secretID.
func retrieveCredentials(ctx context.Context, secretID string) (string, string, error) {
	secretUsername := os.Getenv("DB_USERNAME")
	secretPassword := os.Getenv("DB_PASSWORD")
	if secretUsername != "" && secretPassword != "" {
		return secretUsername, secretPassword, nil
	}
	if secretID == "" {
		return "", "", errors.New("defina DB_USERNAME e DB_PASSWORD ou DB_SECRET_ID")
	}

	secrets, err := initSecretsConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("configurar secrets manager: %w", err)
	}
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"), // VersionStage defaults to AWSCURRENT if unspecified
	}

	result, err := secrets.GetSecretValue(ctx, input)
	if err != nil {
		return "", "", fmt.Errorf("buscar segredo %s: %w", secretID, err)
	}
	return parseCredentials(aws.ToString(result.SecretString))
}

func parseCredentials(secretString string) (string, string, error) {
	var secret Credentials
	if err := json.Unmarshal([]byte(secretString), &secret); err != nil {
		return "", "", fmt.Errorf("segredo mal formado: %w", err)
	}
	return secret.Username, secret.Password, nil
}
