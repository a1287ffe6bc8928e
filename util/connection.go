// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Scrip Cooperative
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/scrip-coop/scripd/fault"
)

// Connection - an IP and port for a listening socket
//
// addresses must be literal IPs: to listen on every interface use
// "0.0.0.0:port" and "[::]:port" entries
type Connection struct {
	ip   net.IP
	port uint16
}

// NewConnection - convert a host:port string to a connection
func NewConnection(hostPort string) (*Connection, error) {
	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return nil, fault.InvalidIpAddress
	}

	ip := net.ParseIP(strings.Trim(host, " "))
	if nil == ip {
		return nil, fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return nil, fault.InvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return nil, fault.InvalidPortNumber
	}

	c := &Connection{
		ip:   ip,
		port: uint16(numericPort),
	}
	return c, nil
}

// NewConnections - convert a list of host:port strings
//
// the list must not be empty
func NewConnections(hostPorts []string) ([]*Connection, error) {
	if 0 == len(hostPorts) {
		return nil, fault.MissingParameters
	}

	c := make([]*Connection, len(hostPorts))
	for i, hostPort := range hostPorts {
		err := error(nil)
		c[i], err = NewConnection(hostPort)
		if nil != err {
			return nil, err
		}
	}
	return c, nil
}

// CanonicalIPandPort - make the IP:Port canonical
//
// prefix is pre-pended to the result, e.g. "tcp://"; the second value
// is true for IPv6
//
// examples:
//
//	IPv4:  127.0.0.1:1234
//	IPv6:  [::1]:1234
func (conn *Connection) CanonicalIPandPort(prefix string) (string, bool) {

	port := int(conn.port)
	if nil != conn.ip.To4() {
		return prefix + conn.ip.String() + ":" + strconv.Itoa(port), false
	}
	return prefix + "[" + conn.ip.String() + "]:" + strconv.Itoa(port), true
}

// String - representation suitable for logging
func (conn Connection) String() string {
	s, _ := conn.CanonicalIPandPort("")
	return s
}
