package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
)

var (
	ErrAPIServerNotFound = errors.New("api server config not found")
	ErrInvalidAddress    = errors.New("invalid listen address")
)

// APIServer is the HTTP listen address of a profile.
type APIServer struct {
	ID        int64
	ProfileID int64
	Host      string
	Port      int
}

// Address returns host:port.
func (a *APIServer) Address() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

type APIServerStore interface {
	Get(ctx context.Context, profileID int64) (*APIServer, error)
	Update(ctx context.Context, a *APIServer) error
}

// APIServers returns an APIServerStore for this database.
func (db *DB) APIServers() APIServerStore {
	return &apiServerStore{db: db}
}

type apiServerStore struct {
	db *DB
}

func (s *apiServerStore) Get(ctx context.Context, profileID int64) (*APIServer, error) {
	a := &APIServer{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile_id, host, port FROM api_servers WHERE profile_id = ?
	`, profileID).Scan(&a.ID, &a.ProfileID, &a.Host, &a.Port)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAPIServerNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *apiServerStore) Update(ctx context.Context, a *APIServer) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE api_servers SET host = ?, port = ? WHERE profile_id = ?
	`, a.Host, a.Port, a.ProfileID)
	if err != nil {
		return fmt.Errorf("failed to update API server config: %w", err)
	}
	return requireRow(result, ErrAPIServerNotFound)
}

// ParseAddress splits a host:port listen address. The host may be empty to
// listen on every interface.
func ParseAddress(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("%w: port %q must be within 1-65535", ErrInvalidAddress, portStr)
	}
	return host, port, nil
}

// SetAPIAddress persists a new listen address for a profile.
func (db *DB) SetAPIAddress(ctx context.Context, profileID int64, addr string) (*APIServer, error) {
	host, port, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	a := &APIServer{ProfileID: profileID, Host: host, Port: port}
	if err := db.APIServers().Update(ctx, a); err != nil {
		return nil, err
	}
	return db.APIServers().Get(ctx, profileID)
}
