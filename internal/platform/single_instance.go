package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateMessage = "activate"

// InstanceLock holds the single-instance lock. Later launches connect to it
// and ask the running instance to bring its window forward.
type InstanceLock struct {
	listener    net.Listener
	address     string
	activations chan struct{}
	closeOnce   sync.Once
	done        chan struct{}
}

// AcquireInstanceLock binds a localhost port derived from appName. When the
// port is taken it notifies the holder and returns ErrAlreadyRunning.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		notifyRunning(address)
		return nil, ErrAlreadyRunning
	}

	lock := &InstanceLock{
		listener:    listener,
		address:     address,
		activations: make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	go lock.accept()
	return lock, nil
}

// Activations delivers a value each time another launch asks for focus.
func (lock *InstanceLock) Activations() <-chan struct{} {
	return lock.activations
}

// Address returns the bound address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

// Release frees the lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	var err error
	lock.closeOnce.Do(func() {
		close(lock.done)
		err = lock.listener.Close()
	})
	return err
}

func (lock *InstanceLock) accept() {
	for {
		conn, err := lock.listener.Accept()
		if err != nil {
			select {
			case <-lock.done:
				return
			default:
				continue
			}
		}
		go lock.handle(conn)
	}
}

func (lock *InstanceLock) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != activateMessage {
		return
	}
	select {
	case lock.activations <- struct{}{}:
	default:
	}
}

func notifyRunning(address string) {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return
	}
	defer conn.Close()
	_, _ = fmt.Fprintln(conn, activateMessage)
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
