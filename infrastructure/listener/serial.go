package listener

import (
	"net"
	"sync"
)

// serialListener hands out at most one connection at a time. Accept blocks
// until the previously accepted connection is closed.
type serialListener struct {
	net.Listener

	token     chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func newSerialListener(ln net.Listener) *serialListener {
	l := &serialListener{
		Listener: ln,
		token:    make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
	l.token <- struct{}{}
	return l
}

func (l *serialListener) Accept() (net.Conn, error) {
	select {
	case <-l.token:
	case <-l.closed:
		return nil, net.ErrClosed
	}

	c, err := l.Listener.Accept()
	if err != nil {
		l.release()
		return nil, err
	}
	return &serialConn{Conn: c, release: l.release}, nil
}

func (l *serialListener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closed)
		err = l.Listener.Close()
	})
	return err
}

func (l *serialListener) release() {
	select {
	case l.token <- struct{}{}:
	default:
	}
}

// serialConn returns its listener's token on Close.
type serialConn struct {
	net.Conn

	once    sync.Once
	release func()
}

func (c *serialConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(c.release)
	return err
}
