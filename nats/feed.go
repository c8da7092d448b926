package nats

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"cardroom.com/server/game"
)

var natsLogger = log.With().Str("logger_name", "nats::feed").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Subjects published by the feed. Each table gets its own subject so
// clients can subscribe per table.
//
// table.<name>.update   : public table descriptor after every mutation
// table.<name>.showdown : showdown result with revealed hands
const (
	tableUpdateSubjectFmt   = "table.%s.update"
	tableShowdownSubjectFmt = "table.%s.showdown"
)

// TableFeed broadcasts table updates to interested clients over NATS.
// The engine never depends on it; it is wired in through the Manager's
// update callback.
type TableFeed struct {
	nc *natsgo.Conn
}

func NewTableFeed(url string) (*TableFeed, error) {
	nc, err := natsgo.Connect(url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to nats server %s", url)
	}
	natsLogger.Info().Msgf("Connected to nats server %s", url)
	return &TableFeed{nc: nc}, nil
}

func (f *TableFeed) Close() {
	f.nc.Close()
}

// TableUpdated publishes the public descriptor. Hole cards are never
// part of the public descriptor, so nothing private leaves the process.
func (f *TableFeed) TableUpdated(desc *game.TableDescriptor) {
	data, err := json.Marshal(desc)
	if err != nil {
		natsLogger.Error().Msgf("Failed to marshal table update: %v", err)
		return
	}
	subject := fmt.Sprintf(tableUpdateSubjectFmt, desc.Name)
	if err := f.nc.Publish(subject, data); err != nil {
		natsLogger.Error().Msgf("Failed to publish to %s: %v", subject, err)
	}
}

// ShowdownDone publishes the showdown result; hands are public at this
// point.
func (f *TableFeed) ShowdownDone(result *game.ShowdownResult) {
	data, err := json.Marshal(result)
	if err != nil {
		natsLogger.Error().Msgf("Failed to marshal showdown result: %v", err)
		return
	}
	subject := fmt.Sprintf(tableShowdownSubjectFmt, result.TableName)
	if err := f.nc.Publish(subject, data); err != nil {
		natsLogger.Error().Msgf("Failed to publish to %s: %v", subject, err)
	}
}
