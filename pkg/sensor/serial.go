package sensor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// DefaultBaudRate is the line speed of the sensor board.
const DefaultBaudRate = 115200

// DefaultMaxAge is how long a serial frame is served before it counts as stale.
const DefaultMaxAge = 30 * time.Second

// frame is one newline-delimited JSON message emitted by the sensor board.
type frame struct {
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	MainDoorOpen *bool    `json:"main_door_open"`
	WindowOpen   *bool    `json:"window_open"`
}

// SerialSource serves the latest frame received from a microcontroller
// streaming readings over a serial port.
type SerialSource struct {
	port   io.ReadCloser
	maxAge time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	reading  Reading
	doors    DoorState
	received bool

	done chan struct{}
}

// OpenSerial opens the sensor board port at the given baud rate, 8N1.
// Frames older than maxAge are treated as missing; zero uses DefaultMaxAge.
func OpenSerial(portPath string, baudRate int, maxAge time.Duration) (*SerialSource, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portPath, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portPath, err)
	}

	log.Info().Str("port", portPath).Int("baud", baudRate).Msg("Sensor serial port opened")

	return newSerialSource(port, maxAge), nil
}

func newSerialSource(port io.ReadCloser, maxAge time.Duration) *SerialSource {
	s := &SerialSource{
		port:   port,
		maxAge: maxAge,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *SerialSource) readLoop() {
	defer close(s.done)

	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var f frame
		if err := json.Unmarshal(line, &f); err != nil {
			log.Debug().Err(err).Str("line", string(line)).Msg("Discarding malformed sensor frame")
			continue
		}
		s.apply(f)
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("Sensor serial read stopped")
	}
}

func (s *SerialSource) apply(f frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Temperature != nil && f.Humidity != nil {
		s.reading = Reading{
			Temperature: *f.Temperature,
			Humidity:    *f.Humidity,
			Timestamp:   s.now().UTC(),
		}
		s.received = true
	}
	if f.MainDoorOpen != nil {
		s.doors.MainDoorOpen = *f.MainDoorOpen
	}
	if f.WindowOpen != nil {
		s.doors.WindowOpen = *f.WindowOpen
	}
}

func (s *SerialSource) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.received {
		return Reading{}, ErrNoReading
	}
	if s.maxAge > 0 && s.now().Sub(s.reading.Timestamp) > s.maxAge {
		return Reading{}, fmt.Errorf("%w: last frame at %s", ErrNoReading, s.reading.Timestamp.Format(time.RFC3339))
	}
	return s.reading, nil
}

func (s *SerialSource) ReadDoors(ctx context.Context) (DoorState, error) {
	if err := ctx.Err(); err != nil {
		return DoorState{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doors, nil
}

// Close closes the port and waits for the reader to exit.
func (s *SerialSource) Close() error {
	err := s.port.Close()
	<-s.done
	return err
}
