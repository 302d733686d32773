// Package telemetry writes sensor readings to InfluxDB as time series.
//
// Writes are non-blocking and batched by the client library; failures are
// reported asynchronously and logged, never returned to the reader.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/config"
	"github.com/urmzd/homesim/pkg/sensor"
)

var (
	// ErrDisabled is returned by Connect when InfluxDB is turned off in configuration
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	// ErrConnectionFailed is returned when the server cannot be reached
	ErrConnectionFailed = errors.New("influxdb: connection failed")
)

// Measurement names
const (
	MeasurementEnvironment = "environment"
	MeasurementSecurity    = "security"
)

const (
	connectTimeout = 5 * time.Second
	batchSize      = 50
	flushInterval  = 10 * time.Second
)

// pointWriter is the subset of api.WriteAPI the recorder uses.
type pointWriter interface {
	WritePoint(point *write.Point)
	Flush()
}

// Recorder implements sensor.Recorder on top of an InfluxDB write API.
type Recorder struct {
	client influxdb2.Client
	writer pointWriter
	source string
}

// Connect pings the server and returns a Recorder writing to cfg.Bucket.
// source tags every point (typically "simulated" or the serial port).
func Connect(cfg config.InfluxDBConfig, source string) (*Recorder, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(batchSize).
			SetFlushInterval(uint(flushInterval.Milliseconds())),
	)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	writeAPI := client.WriteAPI(cfg.Org, cfg.Bucket)
	go func() {
		for err := range writeAPI.Errors() {
			log.Warn().Err(err).Str("bucket", cfg.Bucket).Msg("InfluxDB write failed")
		}
	}()

	log.Info().Str("url", cfg.URL).Str("bucket", cfg.Bucket).Msg("InfluxDB telemetry connected")

	return &Recorder{client: client, writer: writeAPI, source: source}, nil
}

func newRecorder(w pointWriter, source string) *Recorder {
	return &Recorder{writer: w, source: source}
}

// RecordReading writes one environment point.
func (r *Recorder) RecordReading(rd sensor.Reading) {
	if r == nil {
		return
	}
	r.writer.WritePoint(environmentPoint(rd, r.source))
}

// RecordDoors writes one security point.
func (r *Recorder) RecordDoors(d sensor.DoorState) {
	if r == nil {
		return
	}
	r.writer.WritePoint(securityPoint(d, r.source, time.Now()))
}

// Close flushes pending points and closes the client.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	r.writer.Flush()
	if r.client != nil {
		r.client.Close()
	}
}

func environmentPoint(rd sensor.Reading, source string) *write.Point {
	ts := rd.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return write.NewPoint(
		MeasurementEnvironment,
		map[string]string{"source": source},
		map[string]interface{}{
			"temperature": rd.Temperature,
			"humidity":    rd.Humidity,
		},
		ts,
	)
}

func securityPoint(d sensor.DoorState, source string, ts time.Time) *write.Point {
	return write.NewPoint(
		MeasurementSecurity,
		map[string]string{"source": source},
		map[string]interface{}{
			"main_door_open": d.MainDoorOpen,
			"window_open":    d.WindowOpen,
		},
		ts,
	)
}
