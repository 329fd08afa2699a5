// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package config holds the connection details for a remote Kodi host.
// How these details are obtained (files, flags, discovery) is up to the
// consuming application.
package config

// Default ports used by Kodi for its JSON-RPC interfaces.
const (
	DefaultHTTPPort = 8080
	DefaultTCPPort  = 9090
)

// HostConfig describes how to reach a Kodi JSON-RPC endpoint. Username
// and Password are optional; authentication is only applied when both
// are non-empty.
type HostConfig struct {
	Address  string
	HTTPPort int
	TCPPort  int
	Username string
	Password string
}

// NewHostConfig returns a HostConfig for the given address with the
// default Kodi ports and no credentials.
func NewHostConfig(address string) *HostConfig {
	return &HostConfig{
		Address:  address,
		HTTPPort: DefaultHTTPPort,
		TCPPort:  DefaultTCPPort,
	}
}

// NewHostConfigWithCredentials returns a HostConfig using the given HTTP
// port and HTTP basic authentication credentials.
func NewHostConfigWithCredentials(address string, httpPort int, username, password string) *HostConfig {
	return &HostConfig{
		Address:  address,
		HTTPPort: httpPort,
		TCPPort:  DefaultTCPPort,
		Username: username,
		Password: password,
	}
}

// HasCredentials reports whether both a username and a password are set.
func (c *HostConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
