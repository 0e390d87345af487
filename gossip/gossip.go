// Package gossip plugs record validation into go-libp2p-pubsub topics.
package gossip

import (
	"context"
	"time"

	p2ppubsub "github.com/libp2p/go-libp2p-pubsub"
	peer "github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	pv "github.com/pilinsin/record-verse"
	"github.com/pilinsin/record-verse/record"
)

type envelope struct {
	Key       string
	Value     []byte
	Author    string `json:",omitempty"`
	Timestamp time.Time
}

// EncodeRecord returns the pubsub payload of rec.
func EncodeRecord(rec *record.Record) ([]byte, error) {
	return pv.Marshal(&envelope{rec.Key, rec.Value, rec.Author, rec.Timestamp})
}

// DecodeRecord parses a payload produced by EncodeRecord.
func DecodeRecord(m []byte) (*record.Record, error) {
	env := &envelope{}
	if err := pv.Unmarshal(m, env); err != nil {
		return nil, err
	}
	return &record.Record{Key: env.Key, Value: env.Value, Author: env.Author, Timestamp: env.Timestamp}, nil
}

// TopicValidator rejects messages that do not carry a record accepted by v.
// Accepted messages get the decoded *record.Record as ValidatorData.
func TopicValidator(v record.Validator, log *zap.Logger) p2ppubsub.ValidatorEx {
	if log == nil {
		log = zap.NewNop()
	}
	return func(_ context.Context, pid peer.ID, msg *p2ppubsub.Message) p2ppubsub.ValidationResult {
		rec, err := DecodeRecord(msg.GetData())
		if err != nil {
			log.Debug("undecodable record message", zap.Stringer("from", pid), zap.Error(err))
			return p2ppubsub.ValidationReject
		}
		if err := v.Validate(rec.Key, rec.Value); err != nil {
			log.Debug("invalid record message",
				zap.Stringer("from", pid),
				zap.String("key", rec.Key),
				zap.Error(err),
			)
			return p2ppubsub.ValidationReject
		}
		msg.ValidatorData = rec
		return p2ppubsub.ValidationAccept
	}
}

// RegisterTopicValidator installs TopicValidator(v, log) on topic.
func RegisterTopicValidator(ps *p2ppubsub.PubSub, topic string, v record.Validator, log *zap.Logger) error {
	return ps.RegisterTopicValidator(topic, TopicValidator(v, log))
}

// Publish encodes rec and publishes it on topic.
func Publish(ctx context.Context, topic *p2ppubsub.Topic, rec *record.Record) error {
	m, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	return topic.Publish(ctx, m)
}

// Received returns the record a validated message carries.
func Received(msg *p2ppubsub.Message) (*record.Record, error) {
	if rec, ok := msg.ValidatorData.(*record.Record); ok {
		return rec, nil
	}
	return DecodeRecord(msg.GetData())
}
