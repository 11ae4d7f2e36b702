//go:build windows

package terminal

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// A handful of console APIs golang.org/x/sys/windows doesn't wrap, called
// directly via kernel32 the way
// phoenix-tui-phoenix/terminal/infrastructure/windows/syscalls_windows.go
// does: a lazy DLL handle plus one NewProc per entry point.
var (
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute = kernel32.NewProc("FillConsoleOutputAttribute")
	procSetConsoleTextAttribute    = kernel32.NewProc("SetConsoleTextAttribute")
	procGetConsoleCursorInfo       = kernel32.NewProc("GetConsoleCursorInfo")
	procSetConsoleCursorInfo       = kernel32.NewProc("SetConsoleCursorInfo")
)

// consoleCursorInfo mirrors the Win32 CONSOLE_CURSOR_INFO struct.
type consoleCursorInfo struct {
	size    uint32
	visible int32
}

func coordArg(c windows.Coord) uintptr {
	return uintptr(*(*uint32)(unsafe.Pointer(&c)))
}

func fillConsoleOutputCharacter(h windows.Handle, ch rune, n uint32, pos windows.Coord) (uint32, error) {
	var written uint32
	r1, _, err := procFillConsoleOutputCharacter.Call(
		uintptr(h),
		uintptr(ch),
		uintptr(n),
		coordArg(pos),
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return 0, err
	}
	return written, nil
}

func fillConsoleOutputAttribute(h windows.Handle, attr uint16, n uint32, pos windows.Coord) (uint32, error) {
	var written uint32
	r1, _, err := procFillConsoleOutputAttribute.Call(
		uintptr(h),
		uintptr(attr),
		uintptr(n),
		coordArg(pos),
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return 0, err
	}
	return written, nil
}

func setConsoleTextAttribute(h windows.Handle, attr uint16) error {
	r1, _, err := procSetConsoleTextAttribute.Call(uintptr(h), uintptr(attr))
	if r1 == 0 {
		return err
	}
	return nil
}

func getConsoleCursorInfo(h windows.Handle) (consoleCursorInfo, error) {
	var info consoleCursorInfo
	r1, _, err := procGetConsoleCursorInfo.Call(uintptr(h), uintptr(unsafe.Pointer(&info)))
	if r1 == 0 {
		return info, err
	}
	return info, nil
}

func setConsoleCursorInfo(h windows.Handle, info consoleCursorInfo) error {
	r1, _, err := procSetConsoleCursorInfo.Call(uintptr(h), uintptr(unsafe.Pointer(&info)))
	if r1 == 0 {
		return err
	}
	return nil
}
