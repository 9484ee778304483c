package utils

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"github.com/sirupsen/logrus"
	secretmanagerpb "google.golang.org/genproto/googleapis/cloud/secretmanager/v1"
)

// secretPrefix marks a config value as a secret manager version name,
// e.g. projects/my-project/secrets/signing-key/versions/latest
const secretPrefix = "projects/"

// SecretAccessor returns the payload of a secret version
type SecretAccessor interface {
	AccessSecret(ctx context.Context, name string) (string, error)
}

type googleSecretAccessor struct{}

// AccessSecret reads the secret version from google secret manager
func (googleSecretAccessor) AccessSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %v: %w", name, err)
	}
	return string(result.Payload.Data), nil
}

// ProcessSecrets replaces every string field of cfg that holds a secret
// version name with the secret's payload
func ProcessSecrets(ctx context.Context, cfg interface{}, accessor SecretAccessor) error {
	s := reflect.ValueOf(cfg)
	if s.Kind() != reflect.Ptr || s.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("secrets target must be a struct pointer, got %T", cfg)
	}
	return processSecretFields(ctx, s.Elem(), "", accessor)
}

func processSecretFields(ctx context.Context, s reflect.Value, prefix string, accessor SecretAccessor) error {
	typ := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.CanSet() {
			continue
		}
		name := prefix + typ.Field(i).Name

		switch f.Kind() {
		case reflect.Struct:
			if err := processSecretFields(ctx, f, name+".", accessor); err != nil {
				return err
			}
		case reflect.String:
			if !strings.HasPrefix(f.String(), secretPrefix) {
				continue
			}
			payload, err := accessor.AccessSecret(ctx, f.String())
			if err != nil {
				return fmt.Errorf("error resolving secret for %v: %w", name, err)
			}
			logrus.WithField("field", name).Info("config value loaded from secret manager")
			f.SetString(strings.TrimSpace(payload))
		}
	}
	return nil
}

func readConfigSecrets(cfg interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*45)
	defer cancel()
	return ProcessSecrets(ctx, cfg, googleSecretAccessor{})
}
