package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"canteen/pkg/auth"
	"canteen/pkg/client"
)

const DefaultHealthCheckTimeout = 30 * time.Second

// TestEnv points at a running progress and reports deployment. Tests are
// skipped unless TEST_JWT_SECRET is set.
type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ProgressURL  string
	ReportsURL   string
	JWTSecret    string
}

func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	env := &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ProgressURL:  getEnv("TEST_PROGRESS_URL", "http://localhost:8081"),
		ReportsURL:   getEnv("TEST_REPORTS_URL", "http://localhost:8082"),
		JWTSecret:    os.Getenv("TEST_JWT_SECRET"),
	}
	if env.JWTSecret == "" {
		t.Skip("TEST_JWT_SECRET not set")
	}
	return env
}

// Token signs a bearer token for the given caller.
func (e *TestEnv) Token(t *testing.T, subject string, role auth.Role) string {
	t.Helper()
	token, err := auth.NewVerifier(e.JWTSecret).Issue(auth.Principal{Subject: subject, Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func (e *TestEnv) Setup(t *testing.T) *MongoHelper {
	t.Helper()

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	t.Cleanup(func() { mongo.Close(t) })

	ctx, cancel := context.WithTimeout(context.Background(), DefaultHealthCheckTimeout)
	defer cancel()
	for _, url := range []string{e.ProgressURL, e.ReportsURL} {
		if err := client.NewHttpClient(url, "").WaitForHealthy(ctx, DefaultHealthCheckTimeout); err != nil {
			t.Fatalf("service at %s not healthy: %v", url, err)
		}
	}
	return mongo
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
