package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	getLastInputInfo = user32.NewProc("GetLastInputInfo")
	getTickCount     = kernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type win32IdleProvider struct{}

func newIdleProvider() IdleProvider {
	return win32IdleProvider{}
}

func (win32IdleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := getLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	// Both values are 32-bit millisecond counters; unsigned subtraction survives wraparound.
	now, _, _ := getTickCount.Call()
	idleMillis := uint32(now) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
