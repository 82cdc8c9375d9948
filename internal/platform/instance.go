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

const raiseCommand = "raise"

// InstanceLock holds the single-instance lock: a listener on a localhost port
// derived from the app name. Later instances connect to it to ask the running
// one to bring its window forward.
type InstanceLock struct {
	listener net.Listener
	address  string
	once     sync.Once
}

// AcquireInstance binds the app's port. When the port is taken it asks the
// holder to raise its window and returns ErrAlreadyRunning.
func AcquireInstance(appName string) (*InstanceLock, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if raiseErr := RaiseInstance(appName); raiseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, raiseErr)
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceLock{listener: listener, address: address}, nil
}

// RaiseInstance sends the raise request to a running instance.
func RaiseInstance(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("contact running instance: %w", err)
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := fmt.Fprintln(conn, raiseCommand); err != nil {
		return fmt.Errorf("send raise request: %w", err)
	}
	return nil
}

// Serve calls onRaise for every raise request until Release. It blocks.
func (lock *InstanceLock) Serve(onRaise func()) {
	for {
		conn, err := lock.listener.Accept()
		if err != nil {
			return
		}
		go func(conn net.Conn) {
			defer conn.Close()
			_ = conn.SetReadDeadline(time.Now().Add(time.Second))
			line, err := bufio.NewReader(conn).ReadString('\n')
			if err != nil && line == "" {
				return
			}
			if strings.TrimSpace(line) == raiseCommand && onRaise != nil {
				onRaise()
			}
		}(conn)
	}
}

// Release frees the lock. It is safe to call more than once and on nil.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	var err error
	lock.once.Do(func() {
		err = lock.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
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
