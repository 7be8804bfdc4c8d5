package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestSnapshotUnsupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"illegal operation", mongo.CommandError{Code: 20, Message: "not supported on standalone"}, true},
		{"invalid options", mongo.CommandError{Code: 72}, true},
		{"not implemented", mongo.CommandError{Code: 238}, true},
		{"snapshot unavailable", mongo.CommandError{Code: 246}, true},
		{"wrapped", fmt.Errorf("find: %w", mongo.CommandError{Code: 238}), true},
		{"unrelated code mentioning snapshot", mongo.CommandError{Code: 11000, Message: "snapshot duplicate key"}, false},
		{"no code", mongo.CommandError{Message: "snapshot read concern"}, false},
		{"plain error", errors.New("snapshot"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snapshotUnsupported(tt.err); got != tt.want {
				t.Errorf("snapshotUnsupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPassthroughReader(t *testing.T) {
	called := false
	err := PassthroughReader{}.ReadSnapshot(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("ReadSnapshot() = %v, called = %v", err, called)
	}
}
