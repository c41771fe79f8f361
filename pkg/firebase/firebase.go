package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/JameNori/jamenori-dev-journal-sub000/internal/identity"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// InitFirebase initializes the Firebase application and authentication client
func InitFirebase(ctx context.Context, credentialsPath, projectID string, logger *zap.Logger) (*App, error) {
	if credentialsPath == "" {
		return nil, errors.New("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file not found at %s: %w", credentialsPath, err)
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	firebaseApp, err := firebase.NewApp(ctx, cfg, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	logger.Info("firebase auth client initialized", zap.String("project_id", projectID))
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}

// tokenVerifier is the part of *auth.Client the Verifier needs.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Verifier checks Firebase ID tokens.
type Verifier struct {
	client tokenVerifier
}

// NewVerifier creates a Verifier backed by the app's auth client.
func (a *App) NewVerifier() *Verifier {
	return &Verifier{client: a.AuthClient}
}

// Verify returns the identity of a valid ID token. Every rejection wraps
// identity.ErrInvalidToken.
func (v *Verifier) Verify(ctx context.Context, idToken string) (identity.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("%w: %v", identity.ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	return identity.Identity{UserID: token.UID, Email: email}, nil
}
