package appconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type fakeFetcher struct {
	secret string
	err    error
	gotID  string
}

func (f *fakeFetcher) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.gotID = aws.ToString(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.secret)}, nil
}

func useFetcher(t *testing.T, f SecretFetcher) {
	t.Helper()
	orig := newSecretFetcher
	newSecretFetcher = func(context.Context, string) (SecretFetcher, error) { return f, nil }
	t.Cleanup(func() { newSecretFetcher = orig })
}

func TestLoadEnvFromSecret(t *testing.T) {
	t.Setenv("AWS_SECRETS_MANAGER_SECRET_ID", "travvy/prod")
	t.Setenv("AWS_SECRETS_MANAGER_OVERWRITE", "")
	t.Setenv("RAPIDAPI_KEY", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "already-set")
	t.Setenv("ENV_FILE_PATH", filepath.Join(t.TempDir(), "missing.env"))

	f := &fakeFetcher{secret: `{"RAPIDAPI_KEY":"from-secret","GOOGLE_MAPS_API_KEY":"ignored"}`}
	useFetcher(t, f)

	LoadEnv(context.Background(), "")

	if f.gotID != "travvy/prod" {
		t.Fatalf("unexpected secret id %q", f.gotID)
	}
	if got := os.Getenv("RAPIDAPI_KEY"); got != "from-secret" {
		t.Fatalf("expected key from secret, got %q", got)
	}
	if got := os.Getenv("GOOGLE_MAPS_API_KEY"); got != "already-set" {
		t.Fatalf("existing env must win without overwrite, got %q", got)
	}
}

func TestLoadEnvSecretFailureIsNotFatal(t *testing.T) {
	t.Setenv("AWS_SECRETS_MANAGER_SECRET_ID", "travvy/prod")
	t.Setenv("ENV_FILE_PATH", filepath.Join(t.TempDir(), "missing.env"))
	useFetcher(t, &fakeFetcher{err: errors.New("access denied")})

	LoadEnv(context.Background(), "")
}

func TestLoadEnvDotEnvFile(t *testing.T) {
	t.Setenv("AWS_SECRETS_MANAGER_SECRET_ID", "")
	t.Setenv("AWS_SECRET_ID", "")
	t.Setenv("FLIGHTS_API_KEY", "")
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("FLIGHTS_API_KEY=dotenv-key\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("ENV_FILE_PATH", path)
	// godotenv does not overwrite variables that exist, even empty ones.
	os.Unsetenv("FLIGHTS_API_KEY")

	LoadEnv(context.Background(), "")

	if got := os.Getenv("FLIGHTS_API_KEY"); got != "dotenv-key" {
		t.Fatalf("expected key from .env, got %q", got)
	}
}

func TestApplySecretPayloadRejectsNonJSON(t *testing.T) {
	if _, err := applySecretPayload("KEY=value", false); err == nil {
		t.Fatal("expected error for non-JSON secret")
	}
}
