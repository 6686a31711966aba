package server

import (
	"fmt"
	"net"
	"strconv"
)

type Config struct {
	Addr        string
	UseHttp2    bool
	CorsOrigins []string
}

func NewConfig(addr string) (*Config, error) {
	if err := validateAddr(addr); err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return &Config{
		Addr:        addr,
		CorsOrigins: []string{"*"},
	}, nil
}

func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if portNum < 0 || portNum > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}
	return nil
}
