package dbgateway

import (
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

// TunnelConfig describes the SSH jump host used to reach a backend
// database that isn't directly reachable from this service.
type TunnelConfig struct {
	SSHHost        string
	SSHPort        int
	SSHUser        string
	PrivateKeyPath string
	RemoteHost     string // backend DB host as seen from the SSH host
	RemotePort     int
	LocalPort      int // local port the tunnel listens on; 0 picks any free port
}

// Tunnel forwards a local TCP listener to RemoteHost:RemotePort over
// an SSH connection, redialing automatically if the SSH session
// drops (spec §5 "Reconnect semantics").
type Tunnel struct {
	cfg      TunnelConfig
	listener net.Listener

	mu     sync.Mutex
	client *ssh.Client
	closed bool
}

// Start dials the SSH host, opens a local listener, and begins
// forwarding accepted connections. LocalAddr() is valid after Start
// returns successfully.
func Start(cfg TunnelConfig) (*Tunnel, error) {
	t := &Tunnel{cfg: cfg}

	if err := t.dial(); err != nil {
		return nil, fmt.Errorf("dbgateway: ssh tunnel dial: %w", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", cfg.LocalPort))
	if err != nil {
		return nil, fmt.Errorf("dbgateway: ssh tunnel listen: %w", err)
	}
	t.listener = listener

	go t.acceptLoop()

	log.Printf("dbgateway: ssh tunnel listening on %s, forwarding to %s:%d via %s",
		listener.Addr(), cfg.RemoteHost, cfg.RemotePort, cfg.SSHHost)
	return t, nil
}

// LocalAddr returns the tunnel's local listen address, for building
// the DSN the gateway actually connects to.
func (t *Tunnel) LocalAddr() net.Addr {
	return t.listener.Addr()
}

func (t *Tunnel) dial() error {
	key, err := os.ReadFile(t.cfg.PrivateKeyPath)
	if err != nil {
		return fmt.Errorf("reading private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return fmt.Errorf("parsing private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User:            t.cfg.SSHUser,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", t.cfg.SSHHost, t.cfg.SSHPort)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.client = client
	t.mu.Unlock()
	return nil
}

func (t *Tunnel) acceptLoop() {
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			t.mu.Lock()
			closed := t.closed
			t.mu.Unlock()
			if closed {
				return
			}
			log.Printf("dbgateway: tunnel accept error: %v", err)
			continue
		}
		go t.forward(conn)
	}
}

// forward proxies one local connection to the remote backend over
// SSH, redialing the SSH client once if the existing session has
// gone stale.
func (t *Tunnel) forward(local net.Conn) {
	defer local.Close()

	remote, err := t.remoteDial()
	if err != nil {
		log.Printf("dbgateway: tunnel forward failed, attempting reconnect: %v", err)
		if dialErr := t.dial(); dialErr != nil {
			log.Printf("dbgateway: tunnel reconnect failed: %v", dialErr)
			return
		}
		remote, err = t.remoteDial()
		if err != nil {
			log.Printf("dbgateway: tunnel forward failed after reconnect: %v", err)
			return
		}
	}
	defer remote.Close()

	done := make(chan struct{}, 2)
	go copyAndSignal(remote, local, done)
	go copyAndSignal(local, remote, done)
	<-done
}

func (t *Tunnel) remoteDial() (net.Conn, error) {
	t.mu.Lock()
	client := t.client
	t.mu.Unlock()
	if client == nil {
		return nil, fmt.Errorf("no active ssh client")
	}
	return client.Dial("tcp", fmt.Sprintf("%s:%d", t.cfg.RemoteHost, t.cfg.RemotePort))
}

func copyAndSignal(dst, src net.Conn, done chan<- struct{}) {
	buf := make([]byte, 32*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				break
			}
		}
		if err != nil {
			break
		}
	}
	done <- struct{}{}
}

// Close shuts down the listener and the underlying SSH client.
func (t *Tunnel) Close() error {
	t.mu.Lock()
	t.closed = true
	client := t.client
	t.mu.Unlock()

	if t.listener != nil {
		t.listener.Close()
	}
	if client != nil {
		return client.Close()
	}
	return nil
}
