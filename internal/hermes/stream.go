package hermes

import (
	"context"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName   = "SPECHUNTER_EVENTS"
	StreamMaxAge = 30 * 24 * time.Hour
)

var StreamSubjects = []string{"spechunter.catalog.>", "spechunter.session.>"}

func streamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: StreamSubjects,
		MaxAge:   StreamMaxAge,
		Storage:  jetstream.FileStorage,
	}
}

// EnsureStream creates the event stream or updates it to the current config.
func EnsureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.CreateOrUpdateStream(ctx, streamConfig())
	return err
}

// inStream reports whether every subject matched by subject is retained by
// the stream.
func inStream(subject string) bool {
	for _, s := range StreamSubjects {
		if strings.HasPrefix(subject, strings.TrimSuffix(s, ">")) {
			return true
		}
	}
	return false
}
