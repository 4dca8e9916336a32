package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketcore/marketplace-api/internal/core/ports"
)

type changeEvent[T any] struct {
	OperationType string `bson:"operationType"`
	FullDocument  *T     `bson:"fullDocument"`
}

// watchByID opens a change stream filtered to one document and streams full
// snapshots. The current document, when present, is emitted first so a new
// subscriber does not wait for the next write. The returned Subscription
// closes the stream; cancelling the caller's context does too.
func watchByID[T any](ctx context.Context, col *mongo.Collection, id string) (<-chan *T, ports.Subscription, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"documentKey._id": id}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := col.Watch(streamCtx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("watch %s: %w", col.Name(), err)
	}

	out := make(chan *T, 1)

	var current T
	findCtx, findCancel := context.WithTimeout(ctx, defaultTimeout)
	if err := col.FindOne(findCtx, bson.M{"_id": id}).Decode(&current); err == nil {
		out <- &current
	}
	findCancel()

	go func() {
		defer close(out)
		for stream.Next(streamCtx) {
			var ev changeEvent[T]
			if err := stream.Decode(&ev); err != nil {
				continue
			}
			if ev.FullDocument == nil {
				// deletes carry no full document
				continue
			}
			select {
			case out <- ev.FullDocument:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	var once sync.Once
	sub := ports.SubscriptionFunc(func() {
		once.Do(func() {
			cancel()
			closeCtx, closeCancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer closeCancel()
			_ = stream.Close(closeCtx)
		})
	})
	return out, sub, nil
}
