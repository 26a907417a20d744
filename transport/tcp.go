package transport

import (
	"net"
)

func dialTCP(cfg *Config) (Transport, error) {
	conn, err := net.DialTimeout("tcp", cfg.identifier, cfg.dialTimeout)
	if err != nil {
		return nil, err
	}

	return newLineTransport(conn, cfg, false), nil
}
