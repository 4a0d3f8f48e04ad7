// Package firestore implements the repository interfaces against the
// Firestore document store. Each repository is a set of stateless CRUD
// calls on one collection; there are no cross-collection transactions.
package firestore

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unimarket/config"
)

// Collection names in the document store. These match the documents written
// by earlier versions of the system and must not be renamed.
const (
	productsCollection      = "Products"
	transactionsCollection  = "Transactions"
	notificationsCollection = "Notifications"
	usersCollection         = "Users"
	questionsCollection     = "Questions"
)

// ClientParams holds dependencies for the Firestore client, injected by Fx.
type ClientParams struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds the shared Firestore client and registers its shutdown hook.
func NewClient(params ClientParams) (*firestore.Client, error) {
	cfg := params.Config.Firestore
	if cfg == nil {
		return nil, errors.New("firestore configuration is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firestore client")
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

// isNotFound reports whether the error is the store's absent-document signal.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// --- document decode helpers ---
// Firestore hands back untyped maps; numbers arrive as int64 or float64
// depending on how the document was written, so every accessor normalizes.

func docString(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}

	return ""
}

func docFloat(data map[string]any, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func docInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func docBool(data map[string]any, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}

	return false
}

func docTime(data map[string]any, key string) time.Time {
	if v, ok := data[key].(time.Time); ok {
		return v
	}

	return time.Time{}
}

func docStringSlice(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

func docMap(data map[string]any, key string) map[string]any {
	if v, ok := data[key].(map[string]any); ok {
		return v
	}

	return nil
}
