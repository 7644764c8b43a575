package net

import (
	"context"
	"net"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostJoin(t *testing.T) {
	host := NewHost()
	host.Publish([]byte("first"))
	srv := httptest.NewServer(host)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan []byte, 4)
	done := make(chan error, 1)
	go func() {
		done <- Join(ctx, strings.TrimPrefix(srv.URL, "http://"), func(b []byte) { got <- b })
	}()

	select {
	case b := <-got:
		assert.Equal(t, []byte("first"), b)
	case <-time.After(5 * time.Second):
		t.Fatal("initial project not received")
	}
	require.Eventually(t, func() bool { return host.Peers() == 1 }, 5*time.Second, 10*time.Millisecond)

	host.Publish([]byte("second"))
	select {
	case b := <-got:
		assert.Equal(t, []byte("second"), b)
	case <-time.After(5 * time.Second):
		t.Fatal("republished project not received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("join did not stop")
	}
	assert.Eventually(t, func() bool { return host.Peers() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestJoinNeverSeesStaleProject(t *testing.T) {
	const last = 300
	host := NewHost()
	host.Publish([]byte("0"))
	srv := httptest.NewServer(host)
	defer srv.Close()
	addr := strings.TrimPrefix(srv.URL, "http://")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const players = 5
	seen := make([]chan int, players)
	for i := range seen {
		seen[i] = make(chan int, last+2)
		go func(got chan<- int) {
			_ = Join(ctx, addr, func(b []byte) {
				n, err := strconv.Atoi(string(b))
				if err == nil {
					got <- n
				}
			})
		}(seen[i])
	}

	for n := 1; n <= last; n++ {
		host.Publish([]byte(strconv.Itoa(n)))
		time.Sleep(time.Millisecond)
	}

	for i, got := range seen {
		prev := -1
		for prev != last {
			select {
			case n := <-got:
				require.GreaterOrEqual(t, n, prev, "player %d went back from %d to %d", i, prev, n)
				prev = n
			case <-time.After(5 * time.Second):
				t.Fatalf("player %d stuck at %d", i, prev)
			}
		}
	}
}

func TestJoinUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := Join(ctx, "127.0.0.1:1", func([]byte) {})
	assert.Error(t, err)
}

func TestNewService(t *testing.T) {
	svc, err := newService("board", "_terp._tcp", 8888, []net.IP{net.IPv4(192, 168, 1, 2)})
	require.NoError(t, err)
	assert.Equal(t, "board", svc.Instance)
	assert.Equal(t, 8888, svc.Port)
	assert.True(t, strings.HasSuffix(svc.HostName, "."))

	_, err = newService("board", "_terp._tcp", 0, []net.IP{net.IPv4(192, 168, 1, 2)})
	assert.Error(t, err)
}

func TestLocalIPv4s(t *testing.T) {
	ips := LocalIPv4s()
	require.NotEmpty(t, ips)
	for _, ip := range ips {
		assert.NotNil(t, ip.To4())
	}
	assert.True(t, strings.HasSuffix(ShareAddr(8888), ":8888"))
}
