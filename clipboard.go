//go:build !js && (windows || cgo)

package main

import (
	"unicode/utf8"

	"golang.design/x/clipboard"
)

var TheClipboardManager struct {
	Initialized bool
}

func InitClipboardManager() {
	cm := &TheClipboardManager

	InfoLogger.Print("initializing clipboard")

	err := clipboard.Init()
	cm.Initialized = err == nil

	if err != nil {
		WarnLogger.Printf("clipboard is disabled : %v", err)
	}
}

// ClipboardWriteText returns false if the clipboard is not available.
func ClipboardWriteText(str string) bool {
	cm := &TheClipboardManager
	if !cm.Initialized {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(str))
	return true
}

func ClipboardReadText() string {
	cm := &TheClipboardManager
	if cm.Initialized {
		bytes := clipboard.Read(clipboard.FmtText)
		// basic sanity check
		if utf8.Valid(bytes) {
			return string(bytes)
		}
	}

	return ""
}
