//go:build darwin || linux
// +build darwin linux

package nettools

import (
	"testing"
)

func TestUsablePeerHangup(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	server.Close()

	if !eventually(func() bool { return !Usable(client) }) {
		t.Error("conn should become unusable once the peer hangs up")
	}
}

func TestUsableUnsolicitedData(t *testing.T) {
	client, server := tcpPair(t)
	defer client.Close()
	defer server.Close()

	if _, err := server.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	if !eventually(func() bool { return !Usable(client) }) {
		t.Error("conn with pending unread bytes should not be reused")
	}
}
